package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/redisstore"
	"marketplace/internal/adapters/out/smtpmail"
	"marketplace/internal/pkg/logger"

	"github.com/labstack/gommon/log"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zl, err := logger.New(configs.Log.Level)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err = run(configs, zl); err != nil {
		zl.Error("marketplace stopped with error", zap.Error(err))
		log.Fatal(err)
	}
}

func run(configs cmd.Config, zl *zap.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(configs.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sqlDB.Close()) }()

	if err = postgres.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	mailer, err := smtpmail.NewMailer(configs.SMTP)
	if err != nil {
		return fmt.Errorf("smtp mailer: %w", err)
	}

	var opts []cmd.Option
	if configs.Redis.Enabled {
		rdb := redisstore.NewClient(configs.Redis.Settings)
		defer func() { err = multierr.Append(err, rdb.Close()) }()
		opts = append(opts, cmd.WithSendRegistry(
			redisstore.NewSendRegistry(rdb, logger.Component(zl, "send_registry")),
		))
	}

	app := cmd.NewCompositionRoot(configs, gormDB, mailer, zl, opts...)
	if err = app.SeedCategories(ctx); err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpin.NewRouter(app.CreateHTTPServer(), app.CreateRouterConfig())
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		zl.Info("http server listening", zap.Int("port", configs.HTTP.Port))
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%d", configs.HTTP.Port))
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		zl.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.HTTP.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
