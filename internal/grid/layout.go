package grid

import "math"

// Point is a coordinate in layout units, relative to the top-left of the
// scrollable content.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Layout describes a grid of square tiles separated and surrounded by a margin.
type Layout struct {
	Cols   int
	Tile   float64
	Margin float64
}

func (l Layout) cell() float64 {
	return l.Tile + l.Margin
}

// PositionOf returns the top-left corner of the tile holding order.
func (l Layout) PositionOf(order int) Point {
	return Point{
		X: float64(order%l.Cols)*l.cell() + l.Margin,
		Y: float64(order/l.Cols)*l.cell() + l.Margin,
	}
}

// OrderOf maps a tile's top-left corner to the nearest grid slot, clamped to
// [0, maxOrder]. Rows and columns left of or above the grid snap to the first
// one. Columns right of the grid are not clamped, so the order runs on into
// the following rows.
func (l Layout) OrderOf(p Point, maxOrder int) int {
	col := max0(roundHalfUp((p.X - l.Margin) / l.cell()))
	row := max0(roundHalfUp((p.Y - l.Margin) / l.cell()))

	return clamp(row*l.Cols+col, 0, maxOrder)
}

// Positions computes the canonical coordinates for each order in orders.
func (l Layout) Positions(orders []int) []Point {
	out := make([]Point, len(orders))
	for i, o := range orders {
		out[i] = l.PositionOf(o)
	}

	return out
}

// Rows is the number of rows n tiles occupy.
func (l Layout) Rows(n int) int {
	return (n + l.Cols - 1) / l.Cols
}

// ContentHeight is the scrollable height of a grid holding n tiles.
func (l Layout) ContentHeight(n int) float64 {
	return float64(l.Rows(n))*l.cell() + l.Margin
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func max0(v int) int {
	if v < 0 {
		return 0
	}

	return v
}
