package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps one jsonb document per collection in a two-column table.
// The engine replaces whole collections, so a row per collection is the
// faithful rendering of the adapter contract.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a pool, verifies connectivity and bootstraps the schema.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", errors.Join(ErrUnavailable, err))
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", errors.Join(ErrUnavailable, err))
	}

	p := &Postgres{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			name       text PRIMARY KEY,
			document   jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure collections table: %w", errors.Join(ErrUnavailable, err))
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT document FROM collections WHERE name = $1`, collection,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	return data, nil
}

func (p *Postgres) Save(ctx context.Context, collection string, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO collections (name, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = now()
	`, collection, data)
	if err != nil {
		return fmt.Errorf("save collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}
