package view

import (
	"math"
	"strings"

	"github.com/MrJamesThe3rd/pocket/internal/grid"
)

// cellScale maps grid points to terminal cells. Cells are roughly twice as
// tall as they are wide, hence the larger vertical factor.
type cellScale struct {
	x, y float64
}

var defaultScale = cellScale{x: 5, y: 12}

// cols and rows convert a span in points to whole cells.
func (s cellScale) cols(v float64) int { return int(math.Round(v / s.x)) }
func (s cellScale) rows(v float64) int { return int(math.Round(v / s.y)) }

// delta converts a pointer movement in cells to a translation in points.
func (s cellScale) delta(dCol, dRow int) grid.Point {
	return grid.Point{X: float64(dCol) * s.x, Y: float64(dRow) * s.y}
}

// point returns the content point at the centre of the cell (col, row) of
// a viewport scrolled to scrollY.
func (s cellScale) point(col, row int, scrollY float64) grid.Point {
	return grid.Point{
		X: (float64(col) + 0.5) * s.x,
		Y: (float64(row)+0.5)*s.y + scrollY,
	}
}

// canvas is a fixed-size rune buffer that blocks are drawn onto. Anything
// outside it is clipped.
type canvas struct {
	width, height int
	cells         [][]rune
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, max(height, 0))
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", max(width, 0)))
	}

	return &canvas{width: width, height: height, cells: cells}
}

// draw writes the lines of block with its top-left corner at (col, row).
func (c *canvas) draw(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		y := row + i
		if y < 0 || y >= c.height {
			continue
		}

		x := col
		for _, r := range line {
			if x >= 0 && x < c.width {
				c.cells[y][x] = r
			}

			x++
		}
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}

	return strings.Join(lines, "\n")
}
