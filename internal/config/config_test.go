package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CHATTERBOX_HOME_DIR", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.Host != "127.0.0.1" {
		t.Fatalf("expected default host, got %q", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != DefaultPostgresPort {
		t.Fatalf("expected default port, got %d", cfg.Postgres.Port)
	}
	if cfg.Postgres.DBName != DefaultDBName {
		t.Fatalf("expected default dbname, got %q", cfg.Postgres.DBName)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHATTERBOX_HOME_DIR", home)
	body := []byte("postgres:\n  host: db.example.com\n  port: 5433\n  app:\n    user: chat\n    password: secret\n")
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), body, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.Host != "db.example.com" || cfg.Postgres.Port != 5433 {
		t.Fatalf("file values not merged: %+v", cfg.Postgres)
	}
	if cfg.Postgres.App.User != "chat" || cfg.Postgres.App.Password != "secret" {
		t.Fatalf("app role not merged: %+v", cfg.Postgres.App)
	}
	// untouched fields keep defaults
	if cfg.Postgres.SSLMode != "disable" {
		t.Fatalf("expected default sslmode, got %q", cfg.Postgres.SSLMode)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CHATTERBOX_HOME_DIR", home)
	body := []byte("postgres:\n  host: db.example.com\n")
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), body, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHATTERBOX_PG_HOST", "env.example.com")
	t.Setenv("CHATTERBOX_PG_APP_PASSWORD", "from-env")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.Host != "env.example.com" {
		t.Fatalf("env override ignored, got %q", cfg.Postgres.Host)
	}
	if cfg.Postgres.App.Password != "from-env" {
		t.Fatalf("env password ignored, got %q", cfg.Postgres.App.Password)
	}
}
