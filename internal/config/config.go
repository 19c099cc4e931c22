// Package config loads process configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jacentio/catalog/store"
)

// Config holds every setting the server and Lambda entry points read.
type Config struct {
	Port        string `env:"PORT" envDefault:"3001"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"catalog-service"`

	AWSRegion        string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSProfile       string `env:"AWS_PROFILE"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`

	ClientsTable   string `env:"CLIENTS_TABLE" envDefault:"Clients"`
	AddressesTable string `env:"ADDRESSES_TABLE" envDefault:"Addresses"`
	ProductsTable  string `env:"PRODUCTS_TABLE" envDefault:"Products"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads a .env file from the working directory, if present, and then
// parses the environment. Variables already set win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.Port == "" {
		return errors.New("config: PORT must not be empty")
	}
	return nil
}

// Tables returns the store table configuration.
func (c Config) Tables() store.Config {
	return store.Config{
		ClientsTable:   c.ClientsTable,
		AddressesTable: c.AddressesTable,
		ProductsTable:  c.ProductsTable,
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// AWSOptions returns the loader options implied by c.
func (c Config) AWSOptions() []func(*awsconfig.LoadOptions) error {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}
	if c.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(c.AWSProfile))
	}
	return opts
}

// NewDynamoClient builds a DynamoDB client from the default AWS credential
// chain. DYNAMODB_ENDPOINT points it at DynamoDB Local or another emulator.
func NewDynamoClient(ctx context.Context, c Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, c.AWSOptions()...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(c.DynamoDBEndpoint)
		}
	}), nil
}
