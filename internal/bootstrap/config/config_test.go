package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("database:\n  driver: sqlite\n  dsn: " + filepath.Join(t.TempDir(), "w.sqlite") + "\ncallbacks:\n  purge_after: 48h\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Callbacks.PurgeAfter != 48*time.Hour {
		t.Fatalf("PurgeAfter = %v, want 48h", cfg.Callbacks.PurgeAfter)
	}
	if !cfg.Identifiers.AllowDegraded {
		t.Fatalf("AllowDegraded default = false, want true")
	}
	if cfg.Activity.RetainPerTenant != 500 {
		t.Fatalf("RetainPerTenant = %d, want 500", cfg.Activity.RetainPerTenant)
	}
	if cfg.Maintenance.Interval != time.Hour {
		t.Fatalf("Interval = %v, want 1h", cfg.Maintenance.Interval)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  name: workshop\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WS_IDENTIFIERS_ALLOW_DEGRADED", "false")
	t.Setenv("WS_ACTIVITY_RETAIN_PER_TENANT", "25")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Identifiers.AllowDegraded {
		t.Fatalf("AllowDegraded = true, want env override false")
	}
	if cfg.Activity.RetainPerTenant != 25 {
		t.Fatalf("RetainPerTenant = %d, want 25", cfg.Activity.RetainPerTenant)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Config{
		Database:    DatabaseConfig{Driver: "oracle", DSN: "x"},
		Callbacks:   CallbacksConfig{PurgeAfter: time.Hour},
		Maintenance: MaintenanceConfig{Interval: time.Hour},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() error = nil, want unsupported driver")
	}
}
