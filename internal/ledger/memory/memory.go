package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

// Store keeps transactions for the lifetime of the process.
type Store struct {
	mu  sync.Mutex
	txs []ledger.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendTransactions(_ context.Context, txs []ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append(s.txs, txs...)

	return nil
}

func (s *Store) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.txs), nil
}

func (s *Store) ClearTransactions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = nil

	return nil
}
