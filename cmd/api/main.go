package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/basket"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/payments"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
	"github.com/angelmondragon/storefront-backend/pkg/stripe"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	basketRepo := basket.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:   catalogRepo,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	basketService, err := basket.NewService(basket.ServiceParams{
		Repo:     basketRepo,
		Products: catalogRepo,
		Tx:       dbClient,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create basket service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Users:          usersRepo,
		Baskets:        basketService,
		Tx:             dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     ordersRepo,
		Baskets:  basketRepo,
		Stock:    catalogRepo,
		Users:    usersRepo,
		Tx:       dbClient,
		Checkout: cfg.Checkout,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	paymentService, err := payments.NewService(payments.ServiceParams{
		Baskets:       basketRepo,
		Orders:        ordersRepo,
		Intents:       payments.NewStripeClient(stripeClient),
		Dedupe:        redisClient,
		SigningSecret: stripeClient.SigningSecret(),
		Checkout:      cfg.Checkout,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(cfg, logg, routes.Services{
		Auth:     authService,
		Catalog:  catalogService,
		Basket:   basketService,
		Orders:   orderService,
		Payments: paymentService,
	}, routes.Deps{
		RateLimiter: redisClient,
		Readiness: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		},
		HTTPMetrics: httpMetrics,
		Gatherer:    registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":        cfg.App.Env,
		"addr":       addr,
		"stripe_env": stripeClient.Environment(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		shutdownErr := server.Shutdown(shutdownCtx)
		serveErr := <-errCh
		if serveErr == http.ErrServerClosed {
			serveErr = nil
		}
		if err := multierr.Combine(shutdownErr, serveErr); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}
	logg.Info(ctx, "api server stopped")
}
