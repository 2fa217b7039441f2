package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sahilkadam/medipay-backend/api/routes"
	"github.com/sahilkadam/medipay-backend/internal/collections"
	"github.com/sahilkadam/medipay-backend/internal/lineworkers"
	"github.com/sahilkadam/medipay-backend/internal/payments"
	"github.com/sahilkadam/medipay-backend/internal/retailers"
	"github.com/sahilkadam/medipay-backend/internal/tenants"
	"github.com/sahilkadam/medipay-backend/pkg/config"
	"github.com/sahilkadam/medipay-backend/pkg/db"
	"github.com/sahilkadam/medipay-backend/pkg/env"
	"github.com/sahilkadam/medipay-backend/pkg/logger"
	"github.com/sahilkadam/medipay-backend/pkg/metrics"
	"github.com/sahilkadam/medipay-backend/pkg/migrate"
	"github.com/sahilkadam/medipay-backend/pkg/outbox"
	"github.com/sahilkadam/medipay-backend/pkg/redis"
	"github.com/sahilkadam/medipay-backend/pkg/sms"
)

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

	retailerRepo := retailers.NewRepository(dbClient.DB())
	lineWorkerRepo := lineworkers.NewRepository(dbClient.DB())
	tenantRepo := tenants.NewRepository(dbClient.DB())
	paymentRepo := payments.NewRepository(dbClient.DB())

	retailersService, err := retailers.NewService(retailerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create retailers service", err)
		os.Exit(1)
	}
	lineWorkersService, err := lineworkers.NewService(lineWorkerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create line workers service", err)
		os.Exit(1)
	}
	tenantsService, err := tenants.NewService(tenantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tenants service", err)
		os.Exit(1)
	}
	paymentsService, err := payments.NewService(paymentRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	attemptStore, err := collections.NewRedisAttemptStore(redisClient, cfg.OTP.AttemptTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create attempt store", err)
		os.Exit(1)
	}

	collectionMetrics := metrics.NewCollectionMetrics(prometheus.DefaultRegisterer)

	var primary sms.Sender
	if smsClient, err := sms.NewClient(cfg.SMS); err != nil {
		logg.Warn(context.Background(), "sms provider not configured, deliveries will be simulated")
	} else {
		primary = smsClient
	}
	messenger := sms.WithFallback(primary, logg, collectionMetrics)

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	collectionsService, err := collections.NewService(collections.ServiceParams{
		Store:        attemptStore,
		RetailerRepo: retailerRepo,
		TenantRepo:   tenantRepo,
		Ledger:       paymentRepo,
		Outbox:       outboxService,
		Tx:           dbClient,
		Messenger:    messenger,
		Metrics:      collectionMetrics,
		Logger:       logg,
		Config: collections.Config{
			ExpiryWindow:      cfg.OTP.ExpiryWindow,
			MaxVerifyAttempts: cfg.OTP.MaxVerifyAttempts,
		},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create collections service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	id := env.Get("DYNO", "local")
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			collectionsService,
			retailersService,
			lineWorkersService,
			paymentsService,
			tenantsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
