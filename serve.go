package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"parcel-delivery/cache"
	"parcel-delivery/config"
	"parcel-delivery/database"
	httpServices "parcel-delivery/httpServices/stripe"
	"parcel-delivery/logger"
	"parcel-delivery/repositories"
	"parcel-delivery/routes"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Configure(cfg.App.Env)
	logger.Info("Starting with " + cfg.String())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("Failed to connect to the document store", err)
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Disconnect(ctx); err != nil {
			logger.Error("Failed to disconnect from the document store", err)
		}
	}()

	var sink logger.LogSink
	if cfg.LogDB.Enabled() {
		db, err := database.InitLogDB(cfg.LogDB)
		if err != nil {
			return err
		}
		logStore := database.NewRequestLogStore(db)
		defer logStore.Close()
		sink = logStore
	} else {
		logger.Warning("LOG_DB_HOST not set, request audit log goes to the process log only")
	}

	// Initialize the async logger; Close drains it before the log store shuts.
	auditLog := logger.NewAsyncLogger(sink)
	go auditLog.ProcessLog()
	defer auditLog.Close()

	deps := routes.Dependencies{
		Store:    store,
		Parcels:  repositories.NewParcelRepository(store.Database),
		Payments: repositories.NewPaymentRepository(store.Database),
		Tracking: repositories.NewTrackingRepository(store.Database),
		Riders:   repositories.NewRiderRepository(store.Database),
		Users:    repositories.NewUserRepository(store.Database),
		Gateway:  httpServices.NewClient(cfg.Stripe.SecretKey),
	}

	if cfg.Redis.Enabled() {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		idempotency := cache.NewRedisIdempotencyStore(client, cfg.Redis.TTL())
		if err := idempotency.Ping(ctx); err != nil {
			logger.Error("Failed to reach Redis", err)
			return err
		}
		deps.Idempotency = idempotency
	} else {
		logger.Warning("REDIS_ADDR not set, Idempotency-Key headers are not enforced")
	}

	app := routes.NewApp(routes.Options{
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		AuditLog:    auditLog,
	})
	routes.SetupRoutes(app, deps)

	listenErr := make(chan error, 1)
	go func() {
		logger.Success("Server is running on " + cfg.Server.Addr())
		listenErr <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server shutdown did not complete", err)
		return err
	}
	logger.Success("Server stopped")
	return nil
}
