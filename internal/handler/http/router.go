package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopsphere/storefront/internal/gateway"
	"github.com/shopsphere/storefront/internal/service"
	"github.com/shopsphere/storefront/pkg/health"
	"github.com/shopsphere/storefront/pkg/middleware"
)

// RouterConfig carries the router's environment-dependent settings.
type RouterConfig struct {
	Environment        string
	RateLimitRPS       int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	PprofAllowedCIDRs  []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	sessions *service.SessionService,
	carts *service.CartService,
	backend *gateway.Client,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	auth := NewAuth(sessions, logger)
	sessionHandler := NewSessionHandler(sessions, backend, logger)
	cartHandler := NewCartHandler(carts, backend, logger)
	catalogHandler := NewCatalogHandler(backend, logger)
	orderHandler := NewOrderHandler(carts, backend, logger)
	adminHandler := NewAdminHandler(backend, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
		r.Use(ProfileID)
		r.Use(middleware.RequestLogger(logger))
		r.Use(ContentTypeJSON)

		// Session lifecycle. Login and register are public by nature.
		r.Route("/session", func(r chi.Router) {
			r.Post("/login", sessionHandler.Login)
			r.Post("/register", sessionHandler.Register)
			r.Get("/", sessionHandler.Current)
			r.Delete("/", sessionHandler.Logout)
		})

		// Catalog reads are public.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/{productID}", catalogHandler.Get)
		})

		// The cart belongs to the browser profile and needs no session.
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.SetQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		// Checkout and order history require a session.
		r.Route("/orders", func(r chi.Router) {
			r.Use(auth.RequireSession)

			r.Post("/", orderHandler.Checkout)
			r.Get("/", orderHandler.List)
		})

		// Admin surface requires an admin session.
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)

			r.Post("/products", adminHandler.CreateProduct)
			r.Delete("/products/{productID}", adminHandler.DeleteProduct)
			r.Get("/orders", adminHandler.ListOrders)
			r.Put("/orders/{orderID}/status", adminHandler.UpdateOrderStatus)
		})
	})

	return r
}
