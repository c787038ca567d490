package grid

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Phase is the interaction state of a single tile.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Settling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	}

	return "unknown"
}

// Viewport is the visible window over the scrollable grid content.
// A zero Height disables auto-scroll.
type Viewport struct {
	Height  float64
	ScrollY float64
}

// Item is a read-only view of one tile.
type Item struct {
	ID       string
	Order    int
	Phase    Phase
	Position Point
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithViewportHeight(height float64) Option {
	return func(e *Engine) { e.viewport.Height = height }
}

// OnDragEnd registers fn to receive the committed order of every tile
// whenever a drag ends.
func OnDragEnd(fn func(Positions)) Option {
	return func(e *Engine) { e.onDragEnd = fn }
}

// OnScroll registers fn to be told the new scroll offset whenever a drag
// scrolls the viewport.
func OnScroll(fn func(float64)) Option {
	return func(e *Engine) { e.onScroll = fn }
}

type session struct {
	id     string
	origin Point
}

// Engine turns pointer gestures into reorders of a fixed-column tile grid.
// At most one tile is dragged at a time; every other tile sits at the
// canonical position of its order.
type Engine struct {
	mu sync.Mutex

	layout    Layout
	ids       []string
	positions Positions
	phase     map[string]Phase
	rendered  map[string]Point
	release   map[string]Point
	editing   bool
	viewport  Viewport
	drag      *session

	onDragEnd func(Positions)
	onScroll  func(float64)
	logger    *slog.Logger
}

// NewEngine places ids in the grid in the order given. Duplicate ids are
// dropped.
func NewEngine(layout Layout, ids []string, opts ...Option) *Engine {
	e := &Engine{
		layout:    layout,
		positions: make(Positions, len(ids)),
		phase:     make(map[string]Phase, len(ids)),
		rendered:  make(map[string]Point),
		release:   make(map[string]Point),
	}

	for _, id := range ids {
		if _, ok := e.positions[id]; ok {
			continue
		}

		e.positions[id] = len(e.ids)
		e.phase[id] = Idle
		e.ids = append(e.ids, id)
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

func (e *Engine) Layout() Layout {
	return e.layout
}

func (e *Engine) SetEditing(editing bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.editing = editing
}

func (e *Engine) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.editing
}

// Load replaces the order of every tile. p must hold exactly the engine's ids
// and be a valid permutation.
func (e *Engine) Load(p Positions) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(p) != len(e.ids) {
		return fmt.Errorf("%w: got %d tiles, want %d", ErrInvalidPositions, len(p), len(e.ids))
	}

	for _, id := range e.ids {
		if _, ok := p[id]; !ok {
			return fmt.Errorf("%w: missing tile %s", ErrInvalidPositions, id)
		}
	}

	if e.drag != nil {
		return fmt.Errorf("%w: drag in progress", ErrInvalidPositions)
	}

	e.positions = p.Clone()

	return nil
}

// Positions returns a copy of the current order of every tile.
func (e *Engine) Positions() Positions {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.positions.Clone()
}

func (e *Engine) Phase(id string) Phase {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.phase[id]
}

// Position is where the tile is drawn right now.
func (e *Engine) Position(id string) Point {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.positionLocked(id)
}

// Target is the canonical position of the tile's current order.
func (e *Engine) Target(id string) Point {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.layout.PositionOf(e.positions[id])
}

// Items lists every tile sorted by order.
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]Item, 0, len(e.ids))
	for _, id := range e.ids {
		items = append(items, Item{
			ID:       id,
			Order:    e.positions[id],
			Phase:    e.phase[id],
			Position: e.positionLocked(id),
		})
	}

	slices.SortFunc(items, func(a, b Item) int { return a.Order - b.Order })

	return items
}

// ItemAt returns the tile drawn under p. A tile being dragged wins over the
// tile it hovers.
func (e *Engine) ItemAt(p Point) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag != nil && e.contains(e.positionLocked(e.drag.id), p) {
		return e.drag.id, true
	}

	for _, id := range e.ids {
		if e.contains(e.positionLocked(id), p) {
			return id, true
		}
	}

	return "", false
}

func (e *Engine) contains(topLeft, p Point) bool {
	return p.X >= topLeft.X && p.X < topLeft.X+e.layout.Tile &&
		p.Y >= topLeft.Y && p.Y < topLeft.Y+e.layout.Tile
}

func (e *Engine) positionLocked(id string) Point {
	if e.phase[id] == Idle {
		return e.layout.PositionOf(e.positions[id])
	}

	return e.rendered[id]
}

// BeginDrag starts dragging id. It reports false, leaving the engine
// untouched, when the grid is not in editing mode, id is unknown or another
// tile is already being dragged.
func (e *Engine) BeginDrag(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.editing || e.drag != nil {
		return false
	}

	if _, ok := e.positions[id]; !ok {
		return false
	}

	origin := e.positionLocked(id)
	e.drag = &session{id: id, origin: origin}
	e.phase[id] = Dragging
	e.rendered[id] = origin
	delete(e.release, id)

	return true
}

// UpdateDrag moves the dragged tile to its origin plus delta, swaps it with
// whichever tile holds the slot it now covers and scrolls the viewport when
// the tile leaves it. It returns the tile's new position.
func (e *Engine) UpdateDrag(id string, delta Point) Point {
	e.mu.Lock()

	if !e.editing || e.drag == nil || e.drag.id != id {
		pos := e.positionLocked(id)
		e.mu.Unlock()

		return pos
	}

	pos := e.drag.origin.Add(delta)
	e.swapLocked(id, pos)

	scrolled, pos := e.autoScrollLocked(pos, delta)
	e.rendered[id] = pos
	scrollY := e.viewport.ScrollY
	onScroll := e.onScroll

	e.mu.Unlock()

	if scrolled && onScroll != nil {
		onScroll(scrollY)
	}

	return pos
}

func (e *Engine) swapLocked(id string, pos Point) {
	oldOrder := e.positions[id]

	newOrder := e.layout.OrderOf(pos, len(e.positions)-1)
	if newOrder == oldOrder {
		return
	}

	other, ok := e.positions.holder(newOrder)
	if !ok {
		return
	}

	next := e.positions.Clone()
	next[id] = newOrder
	next[other] = oldOrder

	if err := next.Validate(); err != nil {
		e.logger.Error("rejecting tile swap", "tile", id, "with", other, "error", err)
		return
	}

	e.positions = next
}

func (e *Engine) autoScrollLocked(pos, delta Point) (bool, Point) {
	if e.viewport.Height <= 0 {
		return false, pos
	}

	var (
		lower     = e.viewport.ScrollY
		upper     = lower + e.viewport.Height - e.layout.Tile
		maxScroll = e.maxScrollLocked()
		scrolled  = false
	)

	if pos.Y < lower {
		diff := min(lower-pos.Y, lower)
		if diff > 0 {
			e.viewport.ScrollY -= diff
			e.drag.origin.Y -= diff
			pos.Y = e.drag.origin.Y + delta.Y
			scrolled = true
		}
	}

	if pos.Y > upper {
		diff := min(pos.Y-upper, maxScroll-e.viewport.ScrollY)
		if diff > 0 {
			e.viewport.ScrollY += diff
			e.drag.origin.Y += diff
			pos.Y = e.drag.origin.Y + delta.Y
			scrolled = true
		}
	}

	return scrolled, pos
}

// EndDrag releases id. The tile keeps its release point and enters Settling;
// its order was already committed by UpdateDrag. The committed map is passed
// to the OnDragEnd callback and returned. Releasing a tile that is not being
// dragged returns nil.
func (e *Engine) EndDrag(id string) Positions {
	e.mu.Lock()

	if e.drag == nil || e.drag.id != id {
		e.mu.Unlock()
		return nil
	}

	e.drag = nil
	e.phase[id] = Settling
	e.release[id] = e.rendered[id]
	committed := e.positions.Clone()
	onDragEnd := e.onDragEnd

	e.mu.Unlock()

	if onDragEnd != nil {
		onDragEnd(committed)
	}

	return committed.Clone()
}

// Animate moves a settling tile towards its canonical position. progress runs
// from 0 (release point) to 1; at 1 the tile becomes Idle.
func (e *Engine) Animate(id string, progress float64) Point {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase[id] != Settling {
		return e.positionLocked(id)
	}

	target := e.layout.PositionOf(e.positions[id])

	if progress >= 1 {
		e.phase[id] = Idle
		delete(e.rendered, id)
		delete(e.release, id)

		return target
	}

	from := e.release[id]
	t := easeInOut(max(progress, 0))
	pos := from.Add(target.Sub(from).scale(t))
	e.rendered[id] = pos

	return pos
}

// Settle finishes the settle animation of id immediately.
func (e *Engine) Settle(id string) Point {
	return e.Animate(id, 1)
}

// Settling lists the tiles still animating to their slot.
func (e *Engine) Settling() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ids []string

	for _, id := range e.ids {
		if e.phase[id] == Settling {
			ids = append(ids, id)
		}
	}

	return ids
}

// Dragged returns the id of the tile being dragged, if any.
func (e *Engine) Dragged() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag == nil {
		return "", false
	}

	return e.drag.id, true
}

func (e *Engine) SetViewportHeight(height float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.viewport.Height = height
	e.viewport.ScrollY = min(e.viewport.ScrollY, e.maxScrollLocked())
}

// SetScroll moves the viewport, clamped to the scrollable range.
func (e *Engine) SetScroll(y float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.viewport.ScrollY = max(0, min(y, e.maxScrollLocked()))

	return e.viewport.ScrollY
}

func (e *Engine) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.viewport
}

func (e *Engine) maxScrollLocked() float64 {
	return max(0, e.layout.ContentHeight(len(e.ids))-e.viewport.Height)
}

func (p Point) scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// easeInOut is a cubic ease-in-out curve.
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}

	f := 2*t - 2

	return 1 + f*f*f/2
}
