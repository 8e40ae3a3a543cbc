package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	server "tilerooms/server"
)

// Color palette
var (
	voidStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#101018")).
			Foreground(lipgloss.Color("#101018"))

	floorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2a2a3e")).
			Foreground(lipgloss.Color("#3a3a52"))

	grassStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1f4a24")).
			Foreground(lipgloss.Color("#2f6a34"))

	wallStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	doorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B6914")).
			Foreground(lipgloss.Color("#A0772B"))

	lampStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2a2a3e")).
			Foreground(lipgloss.Color("#ffcc44")).
			Bold(true)

	reachStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2e3d52"))

	selfStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Background(lipgloss.Color("#00ff88"))

	peerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4488ff")).
			Bold(true)

	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#ffcc44")).
			Padding(0, 1)
)

// RenderRoom draws the tile grid with members and the reach highlight. Each
// cell is two characters wide.
func RenderRoom(room *server.Room, myID string, reach []int) string {
	if room == nil {
		return "Joining room..."
	}
	grid := room.Grid()

	reachSet := make(map[int]bool, len(reach))
	for _, cell := range reach {
		reachSet[cell] = true
	}
	memberAt := make(map[int]*server.Member, len(room.Members))
	for _, member := range room.Members {
		if index, ok := grid.Index(member.Position); ok {
			// The local member wins ties so it never disappears.
			if existing, taken := memberAt[index]; !taken || existing.ID != myID {
				memberAt[index] = member
			}
		}
	}

	var rows []string
	for y := 0; y < grid.Height; y++ {
		var cells []string
		for x := 0; x < grid.Width; x++ {
			index := x + y*grid.Width
			cells = append(cells, renderCell(room, index, memberAt[index], myID, reachSet[index]))
		}
		rows = append(rows, strings.Join(cells, ""))
	}
	return strings.Join(rows, "\n")
}

func renderCell(room *server.Room, index int, member *server.Member, myID string, reachable bool) string {
	if member != nil {
		if member.ID == myID {
			return selfStyle.Render("██")
		}
		return peerStyle.Render("P!")
	}
	style, glyph := tileAppearance(room.TileIDs[index])
	if reachable {
		style = style.Background(reachStyle.GetBackground())
	}
	return style.Render(glyph)
}

// tileAppearance maps a blueprint id onto a terminal look. Ids outside the
// default catalog fall back on their wall flag, which is all the renderer
// really needs to know.
func tileAppearance(id string) (lipgloss.Style, string) {
	switch id {
	case "void":
		return voidStyle, "  "
	case "grass":
		return grassStyle, "░░"
	case "floor":
		return floorStyle, "··"
	case "wall-door-closed":
		return doorStyle, "▌▐"
	case "wall-door-open":
		return doorStyle, "  "
	case "wall-lamp-off":
		return wallStyle, "¤ "
	case "wall-lamp-on":
		return lampStyle, "¤ "
	case "sign":
		return floorStyle.Foreground(lipgloss.Color("#ffcc44")), "!?"
	}
	if strings.HasPrefix(id, "wall") {
		return wallStyle, "██"
	}
	return floorStyle, "··"
}

// RenderHUD draws the sidebar: room info, members, the placing palette and
// the key help.
func RenderHUD(room *server.Room, myID, blueprintID, lastFailure string) string {
	if room == nil {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render(room.Title))
	if room.Description != "" {
		parts = append(parts, dimStyle.Render(room.Description))
	}
	parts = append(parts, dimStyle.Render(fmt.Sprintf("v%d · %d members", room.Version, len(room.Members))))
	parts = append(parts, "")

	parts = append(parts, dimStyle.Render("Members:"))
	ids := make([]string, 0, len(room.Members))
	for id := range room.Members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		member := room.Members[id]
		marker := "  "
		if id == myID {
			marker = "→ "
		}
		name := member.Name
		if name == "" {
			name = shortID(id)
		}
		parts = append(parts, marker+name)
	}

	parts = append(parts, "")
	parts = append(parts, dimStyle.Render("Placing: ")+blueprintID)
	if lastFailure != "" {
		parts = append(parts, failStyle.Render(lastFailure))
	}
	parts = append(parts, "")
	parts = append(parts, dimStyle.Render("Arrows: move | e: use | p: place"))
	parts = append(parts, dimStyle.Render("Tab: next blueprint | q: quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// RenderDialog draws an open dialog line under the grid.
func RenderDialog(line string) string {
	return dialogStyle.Render(line + dimStyle.Render("  [enter]"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
