package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rogerio-castellano/ges-stock/docs"
	"github.com/rogerio-castellano/ges-stock/internal/account"
	"github.com/rogerio-castellano/ges-stock/internal/auth"
	"github.com/rogerio-castellano/ges-stock/internal/config"
	"github.com/rogerio-castellano/ges-stock/internal/http/handlers"
	rl "github.com/rogerio-castellano/ges-stock/internal/http/rate_limiter"
	"github.com/rogerio-castellano/ges-stock/internal/http/router"
	"github.com/rogerio-castellano/ges-stock/internal/ids"
	"github.com/rogerio-castellano/ges-stock/internal/inventory"
	"github.com/rogerio-castellano/ges-stock/internal/kv"
	"github.com/rogerio-castellano/ges-stock/internal/logger"
	"github.com/rogerio-castellano/ges-stock/internal/repo"
	"github.com/rogerio-castellano/ges-stock/internal/txlog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// @title GES Stock API
// @version 1.0
// @description Per-user inventory of products and categories with a transaction history.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	lg, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := ids.New(cfg.IDStrategy)
	if err != nil {
		lg.Error("invalid id strategy", zap.Error(err))
		os.Exit(1)
	}

	store, err := kv.Open(ctx, kv.Options{
		Driver:      cfg.StoreDriver,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
		RedisAddr:   cfg.RedisAddr,
	})
	if err != nil {
		lg.Error("could not open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		lg.Error("could not create token issuer", zap.Error(err))
		os.Exit(1)
	}
	revocations := auth.NewRevocations(store)
	history := txlog.New(store, gen, lg.With(zap.String("component", "txlog")))

	handlers.SetLogger(lg.With(zap.String("component", "http")))
	handlers.SetTokenIssuer(issuer)
	handlers.SetInventoryService(inventory.NewService(
		repo.NewKVProductRepository(store, gen),
		repo.NewKVCategoryRepository(store, gen),
		history,
		lg,
	))
	handlers.SetAccountService(account.NewService(repo.NewKVUserRepository(store, gen), history, revocations, lg))

	limiter := rl.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute)

	r := router.NewRouter(router.Options{
		Tokens:      issuer,
		Revocations: revocations,
		Limiter:     limiter,
		Logger:      lg,
	})

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           otelhttp.NewHandler(r, "ges-stock"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		lg.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	lg.Info("server running", zap.String("addr", cfg.AppAddr), zap.String("store", cfg.StoreDriver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("server stopped", zap.Error(err))
	}
}
