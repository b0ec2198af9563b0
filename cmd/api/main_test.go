package main

import (
	"context"
	"errors"
	"testing"

	"github.com/demandhub/consultancy-api/internal/pkg/config"
)

func TestRun_ProductionWithoutSecret(t *testing.T) {
	t.Setenv("ENV", config.EnvProduction)
	t.Setenv("JWT_SECRET_KEY", "")

	err := run(context.Background())
	if !errors.Is(err, config.ErrMissingJWTSecret) {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestRun_InvalidThrottleLimit(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("LOGIN_THROTTLE_LIMIT", "-1")

	if err := run(context.Background()); err == nil {
		t.Fatalf("expected config error for a negative throttle limit")
	}
}
