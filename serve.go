package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chrisng16/waitlist/config"
	"github.com/chrisng16/waitlist/internal/consumer"
	"github.com/chrisng16/waitlist/internal/handler"
	"github.com/chrisng16/waitlist/internal/metrics"
	"github.com/chrisng16/waitlist/internal/middleware"
	"github.com/chrisng16/waitlist/internal/realtime"
	"github.com/chrisng16/waitlist/internal/repository"
	"github.com/chrisng16/waitlist/internal/service"
	"github.com/chrisng16/waitlist/pkg/database"
	"github.com/chrisng16/waitlist/pkg/rabbitmq"
	"github.com/chrisng16/waitlist/pkg/redisbus"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the waitlist HTTP API",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}

	m := metrics.New()
	hub := realtime.NewHub(m)

	publisher, closeNotifier, err := startNotifier(ctx, cfg, hub)
	if err != nil {
		return err
	}
	defer closeNotifier()

	// Repositories
	storeRepo := repository.NewStoreRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)

	// Services
	storeSvc := service.NewStoreService(storeRepo)
	waitlistSvc := service.NewWaitlistService(waitlistRepo, storeRepo, publisher, m)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(middleware.RequestLogger())
	e.Use(echoMw.Recover())
	e.Use(m.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "waitlist"})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	handler.NewStoreHandler(storeSvc).RegisterRoutes(e)
	handler.NewWaitlistHandler(waitlistSvc).RegisterRoutes(e)
	handler.NewStreamHandler(storeSvc, hub).RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("waitlist service starting", "port", cfg.ServerPort, "db_driver", cfg.DBDriver, "notifier", cfg.Notifier)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Warn("signal received, shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("waitlist service stopped")
	return nil
}

// startNotifier wires the configured change transport. Every transport ends
// in the local hub, which feeds the websocket streams.
func startNotifier(ctx context.Context, cfg *config.Config, hub *realtime.Hub) (service.ChangePublisher, func(), error) {
	changes := consumer.NewChangeConsumer(hub)

	switch cfg.Notifier {
	case config.NotifierRabbitMQ:
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		sub, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			pub.Close()
			return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		msgs, err := sub.Consume()
		if err != nil {
			pub.Close()
			sub.Close()
			return nil, nil, fmt.Errorf("failed to start consuming: %w", err)
		}
		changes.Start(msgs)
		return pub, func() { sub.Close(); pub.Close() }, nil

	case config.NotifierRedis:
		bus, err := redisbus.NewBus(redisbus.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		go func() {
			if err := bus.Listen(ctx, changes.Deliver); err != nil {
				slog.Error("redis listener stopped", "error", err)
			}
		}()
		return bus, func() { _ = bus.Close() }, nil

	default:
		return hub, func() {}, nil
	}
}
