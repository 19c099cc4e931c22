package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger(&buf, slog.LevelInfo, "JSON")

	logger.Info("client created", "clientId", "c1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "client created" || line["clientId"] != "c1" {
		t.Errorf("unexpected record %v", line)
	}
}

func TestLogger_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Logger(&buf, slog.LevelWarn, "text")

	logger.Info("dropped")
	logger.Warn("kept", "table", "Clients")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "msg=kept") || !strings.Contains(out, "table=Clients") {
		t.Errorf("unexpected text output %q", out)
	}
}

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "catalog-service", "")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Error("expected global tracer provider to be untouched")
	}
}

func TestSetup_WithEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), "catalog-service", "http://127.0.0.1:4318")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if otel.GetTracerProvider() == before {
		t.Error("expected a tracer provider to be installed")
	}

	// No spans were recorded, so shutdown has nothing to export.
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"stdout", "*stdouttrace.Exporter"},
		{"STDOUT", "*stdouttrace.Exporter"},
		{"http://collector:4318", "*otlptrace.Exporter"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			exp, err := newExporter(context.Background(), tt.endpoint)
			if err != nil {
				t.Fatalf("new exporter: %v", err)
			}
			defer exp.Shutdown(context.Background())

			if got := fmt.Sprintf("%T", exp); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
