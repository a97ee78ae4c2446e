package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/ges-stock/internal/http/handlers"
	mw "github.com/rogerio-castellano/ges-stock/internal/http/middleware"
	rl "github.com/rogerio-castellano/ges-stock/internal/http/rate_limiter"
	"github.com/rogerio-castellano/ges-stock/internal/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Options struct {
	Tokens      mw.TokenParser
	Revocations mw.RevocationChecker
	Limiter     *rl.Limiter
	Logger      *logger.Logger
}

// NewRouter wires every route. Handlers read their services from the
// package-level setters in the handlers package.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(mw.RequestLogger(opts.Logger))
	if opts.Limiter != nil {
		r.Use(mw.RateLimitMiddleware(opts.Limiter))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(opts.Tokens, opts.Revocations, opts.Logger))

		r.Post("/logout", handlers.LogoutHandler)
		r.Get("/profile", handlers.GetProfileHandler)
		r.Put("/profile", handlers.UpdateProfileHandler)
		r.Put("/profile/password", handlers.ChangePasswordHandler)

		r.Get("/categories", handlers.GetCategoriesHandler)
		r.Post("/categories", handlers.CreateCategoryHandler)
		r.Delete("/categories/{id}", handlers.DeleteCategoryHandler)

		r.Get("/products", handlers.FilterProductsHandler)
		r.Post("/products", handlers.CreateProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)

		r.Get("/transactions", handlers.GetTransactionsHandler)
		r.Get("/transactions/export", handlers.ExportTransactionsHandler)

		r.Get("/report", handlers.GetReportHandler)
		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})

	return r
}
