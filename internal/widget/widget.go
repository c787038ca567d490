package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/pocket/internal/grid"
)

// Tile ids of the home-screen widgets, in their default order.
const (
	TileSpent    = "spent"
	TileCashback = "cashback"
	TileRecent   = "recent"
	TileCards    = "cards"
)

func DefaultTiles() []string {
	return []string{TileSpent, TileCashback, TileRecent, TileCards}
}

const saveTimeout = 5 * time.Second

type Repository interface {
	LoadLayout(ctx context.Context) (grid.Positions, error)
	SaveLayout(ctx context.Context, p grid.Positions) error
}

// Service owns the widget grid engine and persists the tile order every
// time a drag is committed.
type Service struct {
	repo   Repository
	engine *grid.Engine
	logger *slog.Logger
}

func NewService(repo Repository, layout grid.Layout, viewportHeight float64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{repo: repo, logger: logger}
	s.engine = grid.NewEngine(layout, DefaultTiles(),
		grid.WithLogger(logger),
		grid.WithViewportHeight(viewportHeight),
		grid.OnDragEnd(s.persist),
	)

	return s
}

func (s *Service) Engine() *grid.Engine {
	return s.engine
}

// Restore loads the saved tile order. An empty or stale saved layout leaves
// the default order in place.
func (s *Service) Restore(ctx context.Context) error {
	p, err := s.repo.LoadLayout(ctx)
	if err != nil {
		return fmt.Errorf("loading layout: %w", err)
	}

	if len(p) == 0 {
		return nil
	}

	if err := s.engine.Load(p); err != nil {
		if errors.Is(err, grid.ErrInvalidPositions) {
			s.logger.Warn("ignoring saved widget layout", "error", err)
			return nil
		}

		return err
	}

	return nil
}

// Reorder replaces the whole layout, as a client that reordered tiles
// locally would, and saves it.
func (s *Service) Reorder(ctx context.Context, p grid.Positions) error {
	if err := s.engine.Load(p); err != nil {
		return err
	}

	if err := s.repo.SaveLayout(ctx, p); err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}

	return nil
}

func (s *Service) persist(p grid.Positions) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.repo.SaveLayout(ctx, p); err != nil {
		s.logger.Error("failed to save widget layout", "error", err)
		return
	}

	s.logger.Debug("saved widget layout", "order", p.Sorted())
}
