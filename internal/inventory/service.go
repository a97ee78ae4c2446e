// Package inventory runs the user-facing stock actions: each one validates
// its input, writes the owner's records and then appends to the owner's
// transaction log.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/ges-stock/internal/logger"
	"github.com/rogerio-castellano/ges-stock/internal/models"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
)

var ErrUnauthenticated = errors.New("no authenticated user")

// TransactionLog is the history each action appends to.
type TransactionLog interface {
	Append(ctx context.Context, ownerID string, typ models.TransactionType, details models.TransactionDetails)
	Load(ctx context.Context, ownerID string) ([]models.Transaction, error)
}

type Service struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	history    TransactionLog
	log        *logger.Logger
	now        func() time.Time
}

func NewService(products repo.ProductRepository, categories repo.CategoryRepository, history TransactionLog, log *logger.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		history:    history,
		log:        log,
		now:        time.Now,
	}
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return ErrUnauthenticated
	}
	return nil
}
