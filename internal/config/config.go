package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/flarebyte/chatterbox/internal/paths"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPostgresPort = 5432
	DefaultDBName       = "chatterbox"
)

type PostgresRole struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type PostgresConfig struct {
	Host    string       `yaml:"host"`
	Port    int          `yaml:"port"`
	DBName  string       `yaml:"dbname"`
	SSLMode string       `yaml:"sslmode"`
	App     PostgresRole `yaml:"app"`
	Admin   PostgresRole `yaml:"admin"`
}

type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

func defaults() Config {
	return Config{
		Postgres: PostgresConfig{
			Host:    "127.0.0.1",
			Port:    DefaultPostgresPort,
			DBName:  DefaultDBName,
			SSLMode: "disable",
			App:     PostgresRole{User: "chatterbox_app"},
			Admin:   PostgresRole{User: "postgres"},
		},
	}
}

// Path returns the expected path to the config.yaml file.
func Path() string {
	return filepath.Join(paths.Home(), "config.yaml")
}

// Load reads configuration from config.yaml if it exists.
// Missing file is not an error; defaults are returned. Environment
// variables (CHATTERBOX_PG_*) override file values, so secrets can be
// kept out of the file entirely.
func Load() (Config, error) {
	cfg := defaults()
	p := Path()
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	// Merge: override defaults with provided values if non-zero
	if fileCfg.Postgres.Host != "" {
		cfg.Postgres.Host = fileCfg.Postgres.Host
	}
	if fileCfg.Postgres.Port != 0 {
		cfg.Postgres.Port = fileCfg.Postgres.Port
	}
	if fileCfg.Postgres.DBName != "" {
		cfg.Postgres.DBName = fileCfg.Postgres.DBName
	}
	if fileCfg.Postgres.SSLMode != "" {
		cfg.Postgres.SSLMode = fileCfg.Postgres.SSLMode
	}
	if fileCfg.Postgres.App.User != "" {
		cfg.Postgres.App.User = fileCfg.Postgres.App.User
	}
	if fileCfg.Postgres.App.Password != "" {
		cfg.Postgres.App.Password = fileCfg.Postgres.App.Password
	}
	if fileCfg.Postgres.Admin.User != "" {
		cfg.Postgres.Admin.User = fileCfg.Postgres.Admin.User
	}
	if fileCfg.Postgres.Admin.Password != "" {
		cfg.Postgres.Admin.Password = fileCfg.Postgres.Admin.Password
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CHATTERBOX_PG_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("CHATTERBOX_PG_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Postgres.Port = p
		}
	}
	if v := os.Getenv("CHATTERBOX_PG_DBNAME"); v != "" {
		cfg.Postgres.DBName = v
	}
	if v := os.Getenv("CHATTERBOX_PG_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("CHATTERBOX_PG_APP_USER"); v != "" {
		cfg.Postgres.App.User = v
	}
	if v := os.Getenv("CHATTERBOX_PG_APP_PASSWORD"); v != "" {
		cfg.Postgres.App.Password = v
	}
	if v := os.Getenv("CHATTERBOX_PG_ADMIN_USER"); v != "" {
		cfg.Postgres.Admin.User = v
	}
	if v := os.Getenv("CHATTERBOX_PG_ADMIN_PASSWORD"); v != "" {
		cfg.Postgres.Admin.Password = v
	}
}
