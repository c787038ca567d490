package memory

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/pocket/internal/grid"
)

type Store struct {
	mu     sync.Mutex
	layout grid.Positions
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadLayout(_ context.Context) (grid.Positions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.layout.Clone(), nil
}

func (s *Store) SaveLayout(_ context.Context, p grid.Positions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.layout = p.Clone()

	return nil
}
