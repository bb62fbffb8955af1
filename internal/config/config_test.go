package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8090" {
		t.Errorf("default addr = %q", cfg.Addr)
	}
	if cfg.BatchSize != 10 {
		t.Errorf("default batch size = %d", cfg.BatchSize)
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("default tick interval = %v", cfg.TickInterval())
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FAIRSETTLE_ADDR", ":9999")
	t.Setenv("FAIRSETTLE_BATCH_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Addr)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("batch size = %d, want 25", cfg.BatchSize)
	}
}

func TestFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "addr: \":7070\"\ndb_path: \"/tmp/history.db\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAIRSETTLE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/history.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	// File leaves batch size at its default.
	if cfg.BatchSize != 10 {
		t.Errorf("batch size = %d, want default 10", cfg.BatchSize)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAIRSETTLE_CONFIG", path)
	t.Setenv("FAIRSETTLE_ADDR", ":6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":6060" {
		t.Errorf("addr = %q, want env to win", cfg.Addr)
	}
}

func TestClampsDegenerateValues(t *testing.T) {
	t.Setenv("FAIRSETTLE_BATCH_SIZE", "0")
	t.Setenv("FAIRSETTLE_TICK_INTERVAL_MS", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BatchSize != 1 {
		t.Errorf("batch size = %d, want clamped to 1", cfg.BatchSize)
	}
	if cfg.TickIntervalMS != 1 {
		t.Errorf("tick interval = %d, want clamped to 1", cfg.TickIntervalMS)
	}
}
