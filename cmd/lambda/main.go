// Command lambda serves the catalog REST API behind API Gateway.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/catalog/catalog"
	"github.com/jacentio/catalog/gateway"
	"github.com/jacentio/catalog/internal/config"
	"github.com/jacentio/catalog/internal/httpapi"
	"github.com/jacentio/catalog/internal/telemetry"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := telemetry.Logger(os.Stdout, level, "json")
	slog.SetDefault(logger)

	ctx := context.Background()
	// Lambda offers no shutdown hook; spans export in the background.
	if _, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint); err != nil {
		logger.Error("tracing setup", "error", err)
		os.Exit(1)
	}

	ddb, err := config.NewDynamoClient(ctx, cfg)
	if err != nil {
		logger.Error("dynamodb client", "error", err)
		os.Exit(1)
	}

	api := httpapi.New(catalog.New(ddb, cfg.Tables(), logger), httpapi.Options{
		ServiceName: cfg.ServiceName,
		Logger:      logger,
	})
	lambda.Start(gateway.New(api.Handler(), logger).Handle)
}
