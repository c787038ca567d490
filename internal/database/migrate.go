package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ledger_transactions (
		seq    BIGSERIAL PRIMARY KEY,
		id     TEXT NOT NULL UNIQUE,
		amount NUMERIC NOT NULL,
		title  TEXT NOT NULL DEFAULT '',
		date   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS widget_layout (
		tile_id    TEXT PRIMARY KEY,
		position   INTEGER NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables the stores need if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	return nil
}
