package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if cfg.Port != "8080" || !cfg.IsDevelopment() {
		t.Errorf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Session.InactivityTimeout != 30*time.Minute {
		t.Errorf("inactivity timeout = %v", cfg.Session.InactivityTimeout)
	}
	if !cfg.Session.Interactive || cfg.Session.Backend != "memory" {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.Backend.AuthScheme != "bearer" || cfg.Backend.RequestTimeout != 15*time.Second {
		t.Errorf("unexpected backend defaults: %+v", cfg.Backend)
	}
	if cfg.Session.File == "" {
		t.Error("expected a default session file path")
	}
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                "production",
		"BACKEND_URL":        "https://hr.example.com/api/",
		"AUTH_HEADER_SCHEME": "raw",
		"INACTIVITY_TIMEOUT": "5m",
		"INTERACTIVE":        "false",
		"SESSION_BACKEND":    "redis",
		"SESSION_FILE":       "/tmp/s.json",
		"REDIS_DB":           "3",
	}))
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
	if cfg.Backend.URL != "https://hr.example.com/api/" || cfg.Backend.AuthScheme != "raw" {
		t.Errorf("unexpected backend: %+v", cfg.Backend)
	}
	if cfg.Session.InactivityTimeout != 5*time.Minute || cfg.Session.Interactive {
		t.Errorf("unexpected session: %+v", cfg.Session)
	}
	if cfg.Session.Backend != "redis" || cfg.Session.File != "/tmp/s.json" || cfg.Redis.DB != 3 {
		t.Errorf("unexpected storage: %+v %+v", cfg.Session, cfg.Redis)
	}
}

func TestProcess_InvalidDuration(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"INACTIVITY_TIMEOUT": "soon",
	}))
	if err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
