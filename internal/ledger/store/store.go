package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// AppendTransactions inserts txs in one database transaction. The seq
// column preserves append order across reloads.
func (s *Store) AppendTransactions(ctx context.Context, txs []ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO ledger_transactions (id, amount, title, date)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		if _, err := stmt.ExecContext(ctx, tx.ID, tx.Amount, tx.Title, tx.Date); err != nil {
			return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transactions: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, amount, title, date
		FROM ledger_transactions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction

	for rows.Next() {
		var tx ledger.Transaction
		if err := rows.Scan(&tx.ID, &tx.Amount, &tx.Title, &tx.Date); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) ClearTransactions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ledger_transactions`); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}

	return nil
}
