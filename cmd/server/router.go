package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/wishlist-api/internal/api"
	apiMiddleware "github.com/phrazzld/wishlist-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace)
	r.Use(apiMiddleware.Recover)

	healthHandler := api.NewHealthHandler(app.wishStore, app.logger)
	wishHandler := api.NewWishHandler(app.wishService, app.wishStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenResolver)

	// Unauthenticated operational endpoints.
	r.Get("/health", healthHandler.Health)
	r.Get("/metrics", healthHandler.Metrics)

	r.Route("/wishes", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", wishHandler.List)
		r.Post("/", wishHandler.Create)
		r.Get("/price/less", wishHandler.PriceLess)
		r.Get("/price/greater", wishHandler.PriceGreater)
		r.Get("/category/{name}", wishHandler.ByCategory)
		r.Get("/sorted", wishHandler.Sorted)
		r.Get("/export", wishHandler.Export)
		r.Post("/import", wishHandler.Import)

		r.Get("/{wishID}", wishHandler.Get)
		r.Put("/{wishID}", wishHandler.Update)
		r.Delete("/{wishID}", wishHandler.Delete)
	})

	return r
}
