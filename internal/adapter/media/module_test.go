package media

import (
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/snackshop/internal/config"
)

func TestNewProberUsesConfig(t *testing.T) {
	cfg := &config.Config{MediaProbeAddress: "http://example.com"}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	prober, err := newProber(clientParams{Config: cfg, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prober == nil {
		t.Fatal("expected prober instance")
	}
}

func TestNewProberDisabledWithoutAddress(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	prober, err := newProber(clientParams{Config: &config.Config{}, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prober != nil {
		t.Fatal("expected probing to be disabled")
	}
}
