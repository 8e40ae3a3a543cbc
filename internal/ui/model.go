// Package ui is the terminal client: a Bubbletea model over the client
// package's room mirror.
package ui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	server "tilerooms/server"
	"tilerooms/server/client"
)

// viewUpdateMsg signals that the room mirror changed.
type viewUpdateMsg struct{}

// connDoneMsg carries the reason the connection terminated.
type connDoneMsg struct{ err error }

// Model is the Bubbletea model for the room client.
type Model struct {
	conn *client.Conn
	view *client.RoomView

	blueprints []string
	selected   int
	dialogLine string
	err        error
	quitting   bool
}

func NewModel(conn *client.Conn, view *client.RoomView) Model {
	return Model{conn: conn, view: view}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.view), waitForDone(m.conn))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case viewUpdateMsg:
		m.syncBlueprints()
		if m.dialogLine == "" {
			m.dialogLine, _ = m.view.NextDialogLine()
		}
		return m, waitForUpdate(m.view)

	case connDoneMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}
	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Render("Error: "+m.err.Error()) + "\n"
	}

	room := m.view.Room()
	board := RenderRoom(room, m.view.MemberID(), m.view.ReachableCells())
	hud := RenderHUD(room, m.view.MemberID(), m.selectedBlueprint(), m.view.LastFailure())

	out := lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", hud)
	if m.dialogLine != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, RenderDialog(m.dialogLine))
	}
	return out + "\n"
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up":
		m.step(0, -1)
	case "down":
		m.step(0, 1)
	case "left":
		m.step(-1, 0)
	case "right":
		m.step(1, 0)

	case "e":
		if index, ok := m.ownCell(); ok {
			m.send(server.NewUseAction(m.view.MemberID(), index, nil))
		}

	case "p":
		if index, ok := m.ownCell(); ok && m.selectedBlueprint() != "" {
			m.send(server.NewPlaceTileAction(m.view.MemberID(), index, m.selectedBlueprint()))
		}

	case "tab":
		if len(m.blueprints) > 0 {
			m.selected = (m.selected + 1) % len(m.blueprints)
		}

	case "enter", " ":
		m.dialogLine, _ = m.view.NextDialogLine()
	}
	return m, nil
}

// step starts walking one tile in the given direction.
func (m Model) step(dx, dy int) {
	position, ok := m.view.Position()
	if !ok {
		return
	}
	m.view.MoveTo(position.Add(server.Point{
		X: float64(dx * server.TileSize),
		Y: float64(dy * server.TileSize),
	}))
}

func (m Model) ownCell() (int, bool) {
	room := m.view.Room()
	position, ok := m.view.Position()
	if room == nil || !ok {
		return 0, false
	}
	return room.Grid().Index(position)
}

func (m Model) send(action server.Action) {
	// A send on a dead connection fails; the done message follows anyway.
	_ = m.conn.Send(action)
}

func (m *Model) syncBlueprints() {
	room := m.view.Room()
	if room == nil {
		return
	}
	selected := m.selectedBlueprint()
	ids := make([]string, 0, len(room.Blueprints))
	for id := range room.Blueprints {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	m.blueprints = ids
	for i, id := range ids {
		if id == selected {
			m.selected = i
			return
		}
	}
	m.selected = 0
}

func (m Model) selectedBlueprint() string {
	if m.selected >= len(m.blueprints) {
		return ""
	}
	return m.blueprints[m.selected]
}

// waitForUpdate resolves when the room mirror changes again.
func waitForUpdate(view *client.RoomView) tea.Cmd {
	return func() tea.Msg {
		<-view.Updates()
		return viewUpdateMsg{}
	}
}

// waitForDone resolves when the connection terminates.
func waitForDone(conn *client.Conn) tea.Cmd {
	return func() tea.Msg {
		<-conn.Done()
		err := conn.Err()
		if err == nil {
			err = fmt.Errorf("connection closed")
		}
		return connDoneMsg{err: err}
	}
}
