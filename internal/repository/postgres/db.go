package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/config"
	"github.com/primowater/deliveryform/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS form_submissions (
	id              UUID PRIMARY KEY,
	session_id      UUID NOT NULL,
	outcome         TEXT NOT NULL,
	membership_hash TEXT NOT NULL,
	customer_email  TEXT NOT NULL,
	customer_name   TEXT NOT NULL,
	water_type      TEXT NOT NULL,
	water_qty       INTEGER NOT NULL,
	dispenser_type  TEXT NOT NULL,
	dispenser_qty   INTEGER NOT NULL,
	delivery        TEXT NOT NULL,
	quoted_total    NUMERIC(10, 2) NOT NULL,
	error_message   TEXT,
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS form_submissions_created_at_idx ON form_submissions (created_at DESC);
`

// NewConnection opens and pings a Postgres connection pool
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the tables the repositories need
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// NewRepositories creates all Postgres-backed repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Submission: NewSubmissionRepository(db, logger),
	}
}
