package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"popup-registration-platform/internal/handlers"
	"popup-registration-platform/internal/middleware"
	"popup-registration-platform/internal/services"
)

const requestTimeout = 30 * time.Second

// Dependencies wires the HTTP layer to its services
type Dependencies struct {
	Checkout                  services.CheckoutServiceInterface
	SessionStore              sessions.Store
	SessionTimeout            time.Duration
	AllowedOrigins            []string
	CheckoutAttemptsPerMinute int
	HealthChecks              map[string]handlers.HealthCheck
}

// NewRouter builds the checkout API router
func NewRouter(deps Dependencies) http.Handler {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Checkout, deps.SessionStore)
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	sessionMiddleware := middleware.NewSessionMiddleware(deps.SessionStore, deps.SessionTimeout)
	checkoutLimiter := middleware.NewRateLimiter(deps.CheckoutAttemptsPerMinute, time.Minute)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.ErrorHandlingMiddleware)
	r.Use(chimiddleware.StripSlashes)
	r.Use(chimiddleware.Timeout(requestTimeout))
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(deps.AllowedOrigins)))

	r.NotFound(middleware.NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", healthHandler.Health)

	r.Route("/api/popups/{popupID}", func(r chi.Router) {
		r.Get("/passes", checkoutHandler.Catalog)
		r.Post("/quote", checkoutHandler.Quote)

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware.ExpireStaleSessions)

			r.Put("/selection", checkoutHandler.SaveSelection)
			r.Get("/summary", checkoutHandler.Summary)
			r.With(middleware.RateLimit(checkoutLimiter)).Post("/checkout", checkoutHandler.Checkout)
		})
	})

	return r
}
