package handlers

import (
	"github.com/rogerio-castellano/ges-stock/internal/account"
	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"github.com/rogerio-castellano/ges-stock/internal/inventory"
	"github.com/rogerio-castellano/ges-stock/internal/logger"
)

var (
	inventoryService *inventory.Service
	accountService   *account.Service
	tokenIssuer      *auth.Issuer
	log              = logger.Nop()
)

func SetInventoryService(s *inventory.Service) {
	inventoryService = s
}

func SetAccountService(s *account.Service) {
	accountService = s
}

func SetTokenIssuer(i *auth.Issuer) {
	tokenIssuer = i
}

func SetLogger(l *logger.Logger) {
	log = l
}
