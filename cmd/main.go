package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"food-delivery/internal/config"
	"food-delivery/internal/database"
	"food-delivery/internal/logger"
	"food-delivery/internal/messaging"
	"food-delivery/internal/server"
	"food-delivery/internal/services/analytics"
	"food-delivery/internal/services/catalog"
	"food-delivery/internal/services/notification"
	"food-delivery/internal/services/order"
	"food-delivery/internal/services/tracking"
	"food-delivery/internal/web"
	"food-delivery/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		mode       = flag.String("mode", "web-service", "Service mode (web-service, notification-subscriber, migrate)")
		port       = flag.Int("port", 0, "HTTP port, overrides the config file")
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file")
		prefetch   = flag.Int("prefetch", 10, "RabbitMQ prefetch count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode, cfg.Logging.Level)
	requestID := logger.GenerateRequestID()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	switch *mode {
	case "web-service":
		err = runWebService(ctx, cfg, log)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	case "migrate":
		err = runMigrations(ctx, cfg, log)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}
	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

func runMigrations(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	db, err := database.New(ctx, cfg.DatabaseURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	return db.RunMigrations(ctx, migrations.FS)
}

// runWebService serves the HTML pages, the public API and the admin API
// from one HTTP server
func runWebService(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(ctx, cfg.DatabaseURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, migrations.FS); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	checks := map[string]tracking.Pinger{"database": db}

	var notifier order.Notifier
	if cfg.MessagingEnabled() {
		conn, err := messaging.New(ctx, cfg.RabbitMQURL(), log)
		if err != nil {
			return fmt.Errorf("failed to initialize messaging: %w", err)
		}
		defer conn.Close()

		notifier = messaging.NewPublisher(conn, log)
		checks["rabbitmq"] = conn
	} else {
		log.Warn("messaging_disabled", "No RabbitMQ host configured, status changes will not be published", requestID, nil)
	}

	catalogRepo := catalog.NewRepository(db)
	orderRepo := order.NewRepository(db)

	catalogService := catalog.NewService(catalogRepo, log)
	orderService := order.NewService(orderRepo, notifier, log)
	analyticsService := analytics.NewService(analytics.NewRepository(db), orderRepo)
	trackingService := tracking.NewService(tracking.NewRepository(db), catalogRepo, checks, log)

	pages, err := web.NewHandler(analyticsService, catalogService, orderService, log)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	pages.RegisterRoutes(mux)
	tracking.NewHandler(trackingService, log).RegisterRoutes(mux)
	catalog.NewHandler(catalogService, log).RegisterRoutes(mux)
	order.NewHandler(orderService, log).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.WithLogging(log, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server_listening", fmt.Sprintf("Web service listening on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port":      cfg.Server.Port,
			"messaging": cfg.MessagingEnabled(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("graceful_shutdown", "Shutting down web service", requestID, nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// runNotificationSubscriber prints every status change published by the
// web service
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	if !cfg.MessagingEnabled() {
		return errors.New("notification subscriber requires a RabbitMQ host")
	}

	conn, err := messaging.New(ctx, cfg.RabbitMQURL(), log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	// Start closes the consumer and with it the connection
	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	return notification.NewSubscriber(consumer, log, os.Stdout).Start(ctx)
}
