package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/pocket/internal/grid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) LoadLayout(ctx context.Context) (grid.Positions, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tile_id, position FROM widget_layout`)
	if err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	defer rows.Close()

	p := grid.Positions{}

	for rows.Next() {
		var (
			id    string
			order int
		)

		if err := rows.Scan(&id, &order); err != nil {
			return nil, fmt.Errorf("scanning layout: %w", err)
		}

		p[id] = order
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layout: %w", err)
	}

	return p, nil
}

// SaveLayout replaces the stored layout atomically.
func (s *Store) SaveLayout(ctx context.Context, p grid.Positions) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM widget_layout`); err != nil {
		return fmt.Errorf("clearing layout: %w", err)
	}

	for id, order := range p {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO widget_layout (tile_id, position, updated_at) VALUES ($1, $2, NOW())`,
			id, order,
		); err != nil {
			return fmt.Errorf("saving tile %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing layout: %w", err)
	}

	return nil
}
