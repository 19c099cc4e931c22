// Command server runs the catalog REST API as a long-running HTTP process.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jacentio/catalog/catalog"
	"github.com/jacentio/catalog/internal/config"
	"github.com/jacentio/catalog/internal/httpapi"
	"github.com/jacentio/catalog/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := telemetry.Logger(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown", "error", err)
		}
	}()

	ddb, err := config.NewDynamoClient(ctx, cfg)
	if err != nil {
		return err
	}
	cat := catalog.New(ddb, cfg.Tables(), logger)
	api := httpapi.New(cat, httpapi.Options{
		ServiceName: cfg.ServiceName,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			"addr", srv.Addr,
			"region", cfg.AWSRegion,
			"clientsTable", cfg.ClientsTable,
			"addressesTable", cfg.AddressesTable,
			"productsTable", cfg.ProductsTable,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
