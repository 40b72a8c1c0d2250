package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB opens the shared connection pool from DATABASE_URL and makes sure
// the snapshot table exists. Only the first call does any work.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		p, connErr := pgxpool.NewWithConfig(ctx, config)
		if connErr != nil {
			err = fmt.Errorf("failed to open database pool: %w", connErr)
			return
		}
		if schemaErr := EnsureSchema(ctx, p); schemaErr != nil {
			p.Close()
			err = schemaErr
			return
		}
		pool = p
		fmt.Println("[STORE] connected to postgres")
	})
	return err
}

// GetPool returns the shared pool, or nil when InitDB did not succeed.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the shared pool.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projection_snapshots (
	id          UUID PRIMARY KEY,
	project_id  TEXT NOT NULL,
	config      JSONB NOT NULL,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS projection_snapshots_project_idx
	ON projection_snapshots (project_id, created_at DESC);
`

// EnsureSchema creates the snapshot table if it is missing.
func EnsureSchema(ctx context.Context, p *pgxpool.Pool) error {
	if _, err := p.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create projection_snapshots: %w", err)
	}
	return nil
}
