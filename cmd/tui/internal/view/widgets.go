package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocket/internal/grid"
	"github.com/MrJamesThe3rd/pocket/internal/widget"
)

const (
	// Rows above the grid: the header line and a blank line.
	gridTop = 2
	// Columns left of the grid.
	gridLeft = 1
	// Rows below the grid: a blank line and the status line.
	gridBottom = 2

	defaultGridRows = 30

	settleDuration = 300 * time.Millisecond
	frameInterval  = 16 * time.Millisecond
)

type settleTickMsg time.Time

func settleTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return settleTickMsg(t)
	})
}

// pointerDrag is a drag driven by the mouse; deltas are measured from the
// cell the button went down on.
type pointerDrag struct {
	id       string
	col, row int
}

// keyDrag is a drag driven by the arrow keys; every key press moves the
// tile one grid slot.
type keyDrag struct {
	id    string
	delta grid.Point
}

type WidgetsModel struct {
	CommonModel
	svc    Services
	engine *grid.Engine
	scale  cellScale

	cursor   int
	pointer  *pointerDrag
	key      *keyDrag
	settling map[string]time.Time
	status   string
}

func NewWidgetsModel(svc Services) WidgetsModel {
	engine := svc.Widgets.Engine()
	engine.SetViewportHeight(float64(defaultGridRows) * defaultScale.y)

	return WidgetsModel{
		svc:      svc,
		engine:   engine,
		scale:    defaultScale,
		settling: make(map[string]time.Time),
	}
}

func (m WidgetsModel) Title() string { return "Widgets" }

func (m WidgetsModel) ShortHelp() string {
	if !m.engine.Editing() {
		return "Esc: back | e: edit layout | mouse wheel: scroll"
	}

	if m.key != nil {
		return "Arrows: move tile | Space/Enter: drop"
	}

	return "Esc: done | drag tiles with the mouse | Arrows: select | Space: pick up"
}

func (m WidgetsModel) Init() tea.Cmd {
	return nil
}

func (m WidgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.engine.SetViewportHeight(float64(m.gridRows()) * m.scale.y)

		return m, nil
	case settleTickMsg:
		return m.animate(time.Time(msg))
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m WidgetsModel) gridRows() int {
	if m.Height == 0 {
		return defaultGridRows
	}

	return max(m.Height-gridTop-gridBottom, 1)
}

func (m WidgetsModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.engine.Editing() {
			cmd := m.drop()
			m.engine.SetEditing(false)

			return m, cmd
		}

		return m, Back
	case "e":
		cmd := m.drop()
		m.engine.SetEditing(!m.engine.Editing())

		return m, cmd
	}

	if !m.engine.Editing() {
		return m, nil
	}

	if m.key != nil {
		return m.updateKeyDrag(msg)
	}

	n := len(m.engine.Items())
	cols := m.engine.Layout().Cols

	switch msg.String() {
	case "left", "h":
		m.cursor = max(m.cursor-1, 0)
	case "right", "l":
		m.cursor = min(m.cursor+1, n-1)
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols < n {
			m.cursor += cols
		}
	case " ", "enter":
		id := m.engine.Positions().Sorted()[m.cursor]
		if m.engine.BeginDrag(id) {
			m.key = &keyDrag{id: id}
		}
	}

	return m, nil
}

func (m WidgetsModel) updateKeyDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.engine.Layout().Tile + m.engine.Layout().Margin

	var move grid.Point

	switch msg.String() {
	case "left", "h":
		move.X = -step
	case "right", "l":
		move.X = step
	case "up", "k":
		move.Y = -step
	case "down", "j":
		move.Y = step
	case " ", "enter":
		return m, m.drop()
	default:
		return m, nil
	}

	m.key.delta = m.key.delta.Add(move)
	m.engine.UpdateDrag(m.key.id, m.key.delta)

	return m, nil
}

func (m WidgetsModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	col, row := msg.X-gridLeft, msg.Y-gridTop

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.engine.SetScroll(m.engine.Viewport().ScrollY - 3*m.scale.y)
	case msg.Button == tea.MouseButtonWheelDown:
		m.engine.SetScroll(m.engine.Viewport().ScrollY + 3*m.scale.y)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.key != nil || !m.engine.Editing() {
			return m, nil
		}

		id, ok := m.engine.ItemAt(m.scale.point(col, row, m.engine.Viewport().ScrollY))
		if ok && m.engine.BeginDrag(id) {
			m.pointer = &pointerDrag{id: id, col: col, row: row}
		}
	case msg.Action == tea.MouseActionMotion:
		if m.pointer != nil {
			m.engine.UpdateDrag(m.pointer.id, m.scale.delta(col-m.pointer.col, row-m.pointer.row))
		}
	case msg.Action == tea.MouseActionRelease:
		return m, m.drop()
	}

	return m, nil
}

// drop ends whichever drag is active and starts its settle animation.
func (m *WidgetsModel) drop() tea.Cmd {
	var id string

	switch {
	case m.pointer != nil:
		id = m.pointer.id
	case m.key != nil:
		id = m.key.id
	default:
		return nil
	}

	m.pointer = nil
	m.key = nil

	committed := m.engine.EndDrag(id)
	if committed == nil {
		return nil
	}

	m.cursor = committed[id]
	m.status = "Saved order: " + strings.Join(committed.Sorted(), ", ")

	start := len(m.settling) == 0
	m.settling[id] = time.Now()

	if !start {
		return nil
	}

	return settleTick()
}

func (m WidgetsModel) animate(now time.Time) (tea.Model, tea.Cmd) {
	for id, started := range m.settling {
		progress := float64(now.Sub(started)) / float64(settleDuration)
		m.engine.Animate(id, progress)

		if progress >= 1 {
			delete(m.settling, id)
		}
	}

	if len(m.settling) == 0 {
		return m, nil
	}

	return m, settleTick()
}

func (m WidgetsModel) View() string {
	header := headerStyle.Render("Widgets")
	if m.engine.Editing() {
		header += "  " + activeStyle("editing")
	}

	layout := m.engine.Layout()
	items := m.engine.Items()
	viewport := m.engine.Viewport()
	contents := widget.Contents(m.svc.Ledger.Transactions(), m.svc.Conv, m.svc.Prefs.Primary(), time.Now())

	width := m.scale.cols(float64(layout.Cols)*(layout.Tile+layout.Margin) + layout.Margin)
	c := newCanvas(width, m.gridRows())

	w, h := m.scale.cols(layout.Tile), m.scale.rows(layout.Tile)

	var selected string
	if m.engine.Editing() && m.cursor < len(items) {
		selected = items[m.cursor].ID
	}

	// Idle tiles first so moving tiles are drawn on top.
	for _, pass := range []grid.Phase{grid.Idle, grid.Settling, grid.Dragging} {
		for _, it := range items {
			if it.Phase != pass {
				continue
			}

			border := lipgloss.RoundedBorder()

			switch {
			case it.Phase == grid.Dragging:
				border = lipgloss.ThickBorder()
			case it.ID == selected:
				border = lipgloss.DoubleBorder()
			}

			col := m.scale.cols(it.Position.X)
			row := m.scale.rows(it.Position.Y - viewport.ScrollY)
			c.draw(col, row, tileBlock(contents[it.ID], w, h, border))
		}
	}

	maxScroll := max(0, layout.ContentHeight(len(items))-viewport.Height)
	footer := faintStyle.Render(fmt.Sprintf("scroll %.0f/%.0f", viewport.ScrollY, maxScroll))

	if m.status != "" {
		footer += "  " + faintStyle.Render(m.status)
	}

	indent := lipgloss.NewStyle().PaddingLeft(gridLeft)

	return lipgloss.JoinVertical(lipgloss.Left,
		indent.Render(header),
		"",
		indent.Render(c.String()),
		"",
		indent.Render(footer),
	)
}

// tileBlock renders a tile as plain text so it can be drawn onto a canvas.
func tileBlock(content widget.Content, width, height int, border lipgloss.Border) string {
	body := content.Title + "\n\n" + strings.Join(content.Lines, "\n")

	return lipgloss.NewStyle().
		Border(border).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		Padding(0, 1).
		Render(body)
}
