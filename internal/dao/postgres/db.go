package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flarebyte/chatterbox/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

func dsn(cfg config.Config, user, pass, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host, cfg.Postgres.Port, user, pass, dbName, cfg.Postgres.SSLMode)
}

// OpenApp returns a pgx pool connected with the app role credentials
// (falls back to admin when no app role is configured).
func OpenApp(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	user := cfg.Postgres.App.User
	pass := cfg.Postgres.App.Password
	if user == "" {
		user = cfg.Postgres.Admin.User
		pass = cfg.Postgres.Admin.Password
	}
	pool, err := pgxpool.New(ctx, dsn(cfg, user, pass, cfg.Postgres.DBName))
	if err != nil {
		return nil, err
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenAdminWithDB opens a database/sql handle with admin role credentials to
// a specific database name. Used by the scaffold path, which must connect to
// the system database before the application database exists.
func OpenAdminWithDB(ctx context.Context, cfg config.Config, dbName string) (*sql.DB, error) {
	user := cfg.Postgres.Admin.User
	pass := cfg.Postgres.Admin.Password
	if user == "" {
		user = cfg.Postgres.App.User
		pass = cfg.Postgres.App.Password
	}
	db, err := sql.Open("postgres", dsn(cfg, user, pass, dbName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	// Ping to validate connectivity
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctxPing); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
