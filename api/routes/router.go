package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	authsvc "github.com/angelmondragon/storefront-backend/internal/auth"
	basketsvc "github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	ordersvc "github.com/angelmondragon/storefront-backend/internal/orders"
	paymentsvc "github.com/angelmondragon/storefront-backend/internal/payments"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Auth     authsvc.Service
	Catalog  catalog.Service
	Basket   basketsvc.Service
	Orders   ordersvc.Service
	Payments paymentsvc.Service
}

// RateLimiterStore is the Redis surface the auth rate limiter counts with.
type RateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// Deps bundles the infrastructure the router and its middleware need.
type Deps struct {
	RateLimiter RateLimiterStore
	Readiness   map[string]controllers.Pinger
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).
				Post("/register", controllers.AccountRegister(svcs.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).
				Post("/login", controllers.AccountLogin(svcs.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/currentUser", controllers.AccountCurrentUser(svcs.Auth, logg))
				r.Get("/savedAddress", controllers.AccountSavedAddress(svcs.Auth, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Catalog, logg))
			r.Get("/filters", controllers.ProductFilters(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(svcs.Catalog, logg))
		})

		r.Route("/basket", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(cfg.JWT, logg))
			r.Use(middleware.BuyerKey(logg))
			r.Get("/", controllers.BasketGet(svcs.Basket, logg))
			r.Post("/", controllers.BasketAddItem(svcs.Basket, cfg.Checkout, logg))
			r.Delete("/", controllers.BasketRemoveItem(svcs.Basket, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/webhook", controllers.StripeWebhook(svcs.Payments, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).
				Post("/", controllers.PaymentIntentCreateOrUpdate(svcs.Payments, logg))
		})
	})

	return r
}
