package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/natsnotify"
	postgresadapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/redistrack"
	"marketplace/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	logger, closer := logging.New(logging.Config{
		Level:   config.LogLevel,
		Format:  config.LogFormat,
		File:    config.LogFile,
		Service: "marketplace",
	})
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := postgresadapter.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	natsConn, err := nats.Connect(config.NatsURL, nats.Name("marketplace"))
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}
	defer natsConn.Drain()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	app, err := cmd.NewCompositionRoot(
		config,
		gormDB,
		natsnotify.NewNatsNotifier(natsConn),
		redistrack.NewRedisPositionTracker(redisClient, config.PositionTTL),
		logger,
	)
	if err != nil {
		return err
	}

	e, err := httpadapter.NewRouter(app.CreateHTTPServer(), httpadapter.RouterConfig{
		JWTSecret:      []byte(config.JWTSecret),
		RequestTimeout: config.RequestTimeout,
	}, logger)
	if err != nil {
		return err
	}
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server started", slog.String("port", config.HTTPPort))
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.Any("error", err))
	}
	jobManager.StopAll()
	app.UpdateLocationCommandHandler().Wait()

	return nil
}
