package cta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRegistry serves the CTA allow-list from PostgreSQL so marketing can
// adjust destinations without a deploy. The table is seeded with the built-in
// entries on first start.
type PostgresRegistry struct {
	pool *pgxpool.Pool
}

func NewPostgresRegistry(ctx context.Context, databaseURL string) (*PostgresRegistry, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresRegistry{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS cta_entries (
			label TEXT PRIMARY KEY,
			url TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("init cta schema: %w", err)
	}

	for _, e := range defaultEntries {
		_, err := pool.Exec(ctx,
			`INSERT INTO cta_entries (label, url, message) VALUES ($1, $2, $3)
			 ON CONFLICT (label) DO NOTHING`,
			e.Label, e.URL, e.Message,
		)
		if err != nil {
			return fmt.Errorf("seed cta entry %q: %w", e.Label, err)
		}
	}
	return nil
}

func (r *PostgresRegistry) Lookup(ctx context.Context, label string) (Entry, bool, error) {
	var e Entry
	err := r.pool.QueryRow(ctx,
		`SELECT label, url, message FROM cta_entries WHERE label=$1`,
		strings.TrimSpace(label),
	).Scan(&e.Label, &e.URL, &e.Message)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("lookup cta %q: %w", label, err)
	}
	return e, true, nil
}

func (r *PostgresRegistry) Close() error {
	r.pool.Close()
	return nil
}
