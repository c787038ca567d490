package grid

import (
	"errors"
	"fmt"
	"maps"
)

var ErrInvalidPositions = errors.New("invalid positions")

// Positions maps item ids to their order in the grid.
type Positions map[string]int

func (p Positions) Clone() Positions {
	return maps.Clone(p)
}

// Validate checks the orders form exactly {0, ..., len(p)-1}.
func (p Positions) Validate() error {
	seen := make([]bool, len(p))

	for id, order := range p {
		if order < 0 || order >= len(p) {
			return fmt.Errorf("%w: %s has order %d outside [0, %d]", ErrInvalidPositions, id, order, len(p)-1)
		}

		if seen[order] {
			return fmt.Errorf("%w: order %d is used twice", ErrInvalidPositions, order)
		}

		seen[order] = true
	}

	return nil
}

// holder returns the id holding order.
func (p Positions) holder(order int) (string, bool) {
	for id, o := range p {
		if o == order {
			return id, true
		}
	}

	return "", false
}

// Sorted returns the ids ordered by their grid order.
func (p Positions) Sorted() []string {
	ids := make([]string, len(p))
	for id, o := range p {
		if o >= 0 && o < len(ids) {
			ids[o] = id
		}
	}

	return ids
}
