package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEnvFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadConfig(t *testing.T) {
	writeEnvFile(t, `APP_PORT=8080
APP_ENV=test
DB_HOST=localhost
DB_PORT=5432
DB_USER=postgres
DB_PASSWORD=secret
DB_NAME=terminbuchung
REDIS_HOST=localhost
REDIS_PORT=6379
REDIS_DB=0
RESERVATION_MAX_RETRIES=5
RESERVATION_RETRY_BACKOFF=100ms
RESERVATION_CACHE_TTL=1m
RESERVATION_RECONCILE_INTERVAL=5m
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("port: got %q, want 8080", cfg.App.Port)
	}
	if cfg.DB.Name != "terminbuchung" {
		t.Errorf("db name: got %q", cfg.DB.Name)
	}
	if cfg.Reservation.MaxRetries != 5 {
		t.Errorf("max retries: got %d, want 5", cfg.Reservation.MaxRetries)
	}
	if cfg.Reservation.RetryBackoff != 100*time.Millisecond {
		t.Errorf("retry backoff: got %v, want 100ms", cfg.Reservation.RetryBackoff)
	}
	if cfg.Reservation.CacheTTL != time.Minute {
		t.Errorf("cache ttl: got %v, want 1m", cfg.Reservation.CacheTTL)
	}
	if cfg.Reservation.ReconcileInterval != 5*time.Minute {
		t.Errorf("reconcile interval: got %v, want 5m", cfg.Reservation.ReconcileInterval)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	writeEnvFile(t, `APP_PORT=8080
DB_HOST=localhost
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Reservation.MaxRetries != 3 {
		t.Errorf("default max retries: got %d, want 3", cfg.Reservation.MaxRetries)
	}
	if cfg.Reservation.RetryBackoff != 50*time.Millisecond {
		t.Errorf("default retry backoff: got %v, want 50ms", cfg.Reservation.RetryBackoff)
	}
	if cfg.Reservation.CacheTTL != 30*time.Second {
		t.Errorf("default cache ttl: got %v, want 30s", cfg.Reservation.CacheTTL)
	}
	if cfg.Reservation.ReconcileInterval != 10*time.Minute {
		t.Errorf("default reconcile interval: got %v, want 10m", cfg.Reservation.ReconcileInterval)
	}
}
