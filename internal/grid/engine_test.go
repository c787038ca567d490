package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/grid"
)

var tiles = []string{"spent", "cashback", "recent", "cards"}

func newEditingEngine(t *testing.T, opts ...grid.Option) *grid.Engine {
	t.Helper()

	e := grid.NewEngine(testLayout, tiles, opts...)
	e.SetEditing(true)

	return e
}

func assertPermutation(t *testing.T, p grid.Positions) {
	t.Helper()
	require.NoError(t, p.Validate())
}

func TestEngine_InitialOrder(t *testing.T) {
	e := grid.NewEngine(testLayout, append(tiles, "spent"))

	assert.Equal(t, grid.Positions{"spent": 0, "cashback": 1, "recent": 2, "cards": 3}, e.Positions())

	for _, item := range e.Items() {
		assert.Equal(t, grid.Idle, item.Phase)
		assert.Equal(t, testLayout.PositionOf(item.Order), item.Position)
	}
}

func TestEngine_DragToOppositeCorner(t *testing.T) {
	var ended grid.Positions

	e := newEditingEngine(t, grid.OnDragEnd(func(p grid.Positions) { ended = p }))

	require.True(t, e.BeginDrag("spent"))
	assert.Equal(t, grid.Dragging, e.Phase("spent"))

	delta := testLayout.PositionOf(3).Sub(testLayout.PositionOf(0))
	pos := e.UpdateDrag("spent", delta)
	assert.Equal(t, testLayout.PositionOf(3), pos)

	got := e.EndDrag("spent")

	want := grid.Positions{"spent": 3, "cashback": 1, "recent": 2, "cards": 0}
	assert.Equal(t, want, got)
	assert.Equal(t, want, ended)
	assert.Equal(t, want, e.Positions())
	assert.Equal(t, grid.Settling, e.Phase("spent"))

	assert.Equal(t, testLayout.PositionOf(3), e.Settle("spent"))
	assert.Equal(t, grid.Idle, e.Phase("spent"))
	assert.Equal(t, testLayout.PositionOf(0), e.Position("cards"))
}

func TestEngine_SwapsFollowPointerPath(t *testing.T) {
	e := newEditingEngine(t)
	require.True(t, e.BeginDrag("spent"))

	origin := testLayout.PositionOf(0)
	path := []int{1, 3, 2, 0}

	for _, target := range path {
		e.UpdateDrag("spent", testLayout.PositionOf(target).Sub(origin))

		p := e.Positions()
		assertPermutation(t, p)
		assert.Equal(t, target, p["spent"])
	}

	e.EndDrag("spent")
	assertPermutation(t, e.Positions())
}

func TestEngine_OtherTilesStayAtCanonicalPositions(t *testing.T) {
	e := newEditingEngine(t)
	require.True(t, e.BeginDrag("recent"))

	e.UpdateDrag("recent", grid.Point{X: 37, Y: -20})

	for _, item := range e.Items() {
		if item.ID == "recent" {
			assert.Equal(t, grid.Point{X: 53, Y: 112}, item.Position)
			continue
		}

		assert.Equal(t, grid.Idle, item.Phase)
		assert.Equal(t, testLayout.PositionOf(item.Order), item.Position)
	}
}

func TestEngine_NotEditingIsNoop(t *testing.T) {
	var calls int

	e := grid.NewEngine(testLayout, tiles, grid.OnDragEnd(func(grid.Positions) { calls++ }))

	assert.False(t, e.BeginDrag("spent"))
	e.UpdateDrag("spent", grid.Point{X: 500, Y: 500})
	assert.Nil(t, e.EndDrag("spent"))

	assert.Equal(t, grid.Positions{"spent": 0, "cashback": 1, "recent": 2, "cards": 3}, e.Positions())
	assert.Equal(t, grid.Idle, e.Phase("spent"))
	assert.Zero(t, calls)
}

func TestEngine_BeginDragRejects(t *testing.T) {
	e := newEditingEngine(t)

	assert.False(t, e.BeginDrag("unknown"))
	require.True(t, e.BeginDrag("spent"))
	assert.False(t, e.BeginDrag("cards"), "only one drag at a time")

	id, ok := e.Dragged()
	assert.True(t, ok)
	assert.Equal(t, "spent", id)
}

func TestEngine_UpdateForWrongTileIgnored(t *testing.T) {
	e := newEditingEngine(t)
	require.True(t, e.BeginDrag("spent"))

	e.UpdateDrag("cards", grid.Point{X: -200, Y: -200})
	assert.Nil(t, e.EndDrag("cards"))

	assert.Equal(t, 3, e.Positions()["cards"])
	assert.Equal(t, grid.Idle, e.Phase("cards"))
}

func TestEngine_OutOfRangeDragIsClamped(t *testing.T) {
	e := newEditingEngine(t)
	require.True(t, e.BeginDrag("spent"))

	e.UpdateDrag("spent", grid.Point{X: 10_000, Y: 10_000})

	p := e.Positions()
	assertPermutation(t, p)
	assert.Equal(t, 3, p["spent"])
}

func TestEngine_AnimateSettling(t *testing.T) {
	e := newEditingEngine(t)
	require.True(t, e.BeginDrag("spent"))

	e.UpdateDrag("spent", grid.Point{X: 100, Y: 10})
	release := e.Position("spent")
	e.EndDrag("spent")

	target := e.Target("spent")
	assert.Equal(t, release, e.Animate("spent", 0))

	mid := e.Animate("spent", 0.5)
	assert.InDelta(t, (release.X+target.X)/2, mid.X, 1e-9)
	assert.Equal(t, grid.Settling, e.Phase("spent"))
	assert.Equal(t, []string{"spent"}, e.Settling())

	assert.Equal(t, target, e.Animate("spent", 1))
	assert.Equal(t, grid.Idle, e.Phase("spent"))
	assert.Empty(t, e.Settling())
}

func TestEngine_Load(t *testing.T) {
	e := grid.NewEngine(testLayout, tiles)

	require.NoError(t, e.Load(grid.Positions{"spent": 2, "cashback": 3, "recent": 0, "cards": 1}))
	assert.Equal(t, testLayout.PositionOf(2), e.Position("spent"))
	assert.Equal(t, []string{"recent", "cards", "spent", "cashback"}, e.Positions().Sorted())

	assert.ErrorIs(t, e.Load(grid.Positions{"spent": 0, "cashback": 0, "recent": 2, "cards": 3}), grid.ErrInvalidPositions)
	assert.ErrorIs(t, e.Load(grid.Positions{"spent": 0}), grid.ErrInvalidPositions)
	assert.ErrorIs(t, e.Load(grid.Positions{"spent": 0, "cashback": 1, "recent": 2, "other": 3}), grid.ErrInvalidPositions)
}

func TestEngine_ItemAt(t *testing.T) {
	e := grid.NewEngine(testLayout, tiles)

	id, ok := e.ItemAt(grid.Point{X: 140, Y: 140})
	require.True(t, ok)
	assert.Equal(t, "cards", id)

	_, ok = e.ItemAt(grid.Point{X: 5, Y: 5})
	assert.False(t, ok, "margin is not a tile")
}

func TestEngine_AutoScrollDown(t *testing.T) {
	layout := grid.Layout{Cols: 2, Tile: 100, Margin: 16}
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var scrolls []float64

	// Content is 4 rows: 4*116+16 = 480 high, viewport shows 250.
	e := grid.NewEngine(layout, ids,
		grid.WithViewportHeight(250),
		grid.OnScroll(func(y float64) { scrolls = append(scrolls, y) }),
	)
	e.SetEditing(true)
	require.True(t, e.BeginDrag("a"))

	// Lower edge for the tile's top is 0 + 250 - 100 = 150. Pointer moves
	// the tile to y = 16 + 184 = 200, 50 past the edge.
	pos := e.UpdateDrag("a", grid.Point{X: 0, Y: 184})

	assert.InDelta(t, 50, e.Viewport().ScrollY, 1e-9)
	assert.InDelta(t, 250, pos.Y, 1e-9, "origin follows the scroll so the tile stays under the pointer")
	assert.Equal(t, []float64{50}, scrolls)

	// Far past the end: scroll is capped at 480-250 = 230.
	e.UpdateDrag("a", grid.Point{X: 0, Y: 1000})
	assert.InDelta(t, 230, e.Viewport().ScrollY, 1e-9)

	assertPermutation(t, e.Positions())
}

func TestEngine_AutoScrollUp(t *testing.T) {
	layout := grid.Layout{Cols: 2, Tile: 100, Margin: 16}
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	e := grid.NewEngine(layout, ids, grid.WithViewportHeight(250))
	e.SetEditing(true)
	assert.InDelta(t, 200, e.SetScroll(200), 1e-9)

	// "g" sits at y = 3*116+16 = 364.
	require.True(t, e.BeginDrag("g"))

	pos := e.UpdateDrag("g", grid.Point{X: 0, Y: -180})

	// 364-180 = 184, 16 above the top edge at 200.
	assert.InDelta(t, 184, e.Viewport().ScrollY, 1e-9)
	assert.InDelta(t, 168, pos.Y, 1e-9)

	e.UpdateDrag("g", grid.Point{X: 0, Y: -2000})
	assert.InDelta(t, 0, e.Viewport().ScrollY, 1e-9, "scroll never goes negative")
}

func TestEngine_SetScrollClamps(t *testing.T) {
	e := grid.NewEngine(testLayout, tiles, grid.WithViewportHeight(100))

	assert.InDelta(t, 0, e.SetScroll(-50), 1e-9)
	assert.InDelta(t, testLayout.ContentHeight(4)-100, e.SetScroll(1e6), 1e-9)

	e.SetViewportHeight(1000)
	assert.InDelta(t, 0, e.Viewport().ScrollY, 1e-9)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", grid.Idle.String())
	assert.Equal(t, "dragging", grid.Dragging.String())
	assert.Equal(t, "settling", grid.Settling.String())
}
