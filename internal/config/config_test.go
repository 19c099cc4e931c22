package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != "3001" {
		t.Errorf("expected port 3001, got %q", cfg.Port)
	}
	if cfg.AWSRegion != "us-east-1" {
		t.Errorf("expected us-east-1, got %q", cfg.AWSRegion)
	}
	if cfg.ClientsTable != "Clients" || cfg.AddressesTable != "Addresses" || cfg.ProductsTable != "Products" {
		t.Errorf("unexpected table defaults %+v", cfg.Tables())
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("expected 10s read timeout, got %v", cfg.ReadTimeout)
	}
	if cfg.Addr() != ":3001" {
		t.Errorf("expected :3001, got %q", cfg.Addr())
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CLIENTS_TABLE", "dev-clients")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected 8080, got %q", cfg.Port)
	}
	if cfg.Tables().ClientsTable != "dev-clients" {
		t.Errorf("expected dev-clients, got %q", cfg.Tables().ClientsTable)
	}
	if cfg.DynamoDBEndpoint != "http://localhost:8000" {
		t.Errorf("unexpected endpoint %q", cfg.DynamoDBEndpoint)
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.WriteTimeout)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad duration", "HTTP_READ_TIMEOUT", "soon", "parse env:"},
		{"bad level", "LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"bad format", "LOG_FORMAT", "xml", "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PRODUCTS_TABLE=from-file\nPORT=9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("PORT", "7000")
	// Unset so the file applies; t.Setenv restores the old value afterwards.
	t.Setenv("PRODUCTS_TABLE", "")
	os.Unsetenv("PRODUCTS_TABLE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ProductsTable != "from-file" {
		t.Errorf("expected table from .env, got %q", cfg.ProductsTable)
	}
	if cfg.Port != "7000" {
		t.Errorf("expected environment to win over .env, got %q", cfg.Port)
	}
}

func TestLoad_NoDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load(); err != nil {
		t.Errorf("expected missing .env to be ignored, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestAWSOptions(t *testing.T) {
	if n := len(Config{AWSRegion: "us-east-1"}.AWSOptions()); n != 1 {
		t.Errorf("expected region option only, got %d", n)
	}
	if n := len(Config{AWSRegion: "us-east-1", AWSProfile: "dev"}.AWSOptions()); n != 2 {
		t.Errorf("expected region and profile options, got %d", n)
	}
}

func TestNewDynamoClient_Endpoint(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "none"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "none"))

	client, err := NewDynamoClient(context.Background(), Config{
		AWSRegion:        "us-west-2",
		DynamoDBEndpoint: "http://localhost:8000",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	opts := client.Options()
	if opts.Region != "us-west-2" {
		t.Errorf("expected us-west-2, got %q", opts.Region)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:8000" {
		t.Errorf("expected base endpoint override, got %v", opts.BaseEndpoint)
	}
}
