package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	header := titleStyle.Render(" floormap ─ live floorplan view ")
	header = lipgloss.NewStyle().Width(lo.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range layerColumns {
			colW += c.Width + 3
		}
		maxW := min(lo.w, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.h-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.w, lo.h, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(lo.w)
		m.ta.SetHeight(min(lo.h, 12))
		mapView = lipgloss.NewStyle().Width(lo.w).Height(lo.h).Render(m.ta.View())
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lo.w).Height(lo.h).Render(m.mapView(lo.w, lo.h))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer / help
	status := dimStyle.Render(" " + m.status + " ")
	if strings.Contains(m.status, "error") {
		status = warnStyle.Render(" " + m.status + " ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	pose := dimStyle.Render(m.poseLine())
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(pose))
	right := lipgloss.Place(spacerW+lipgloss.Width(pose), 1, lipgloss.Right, lipgloss.Center, pose)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

// poseLine reports the device pose and the frame the map was built from.
func (m Model) poseLine() string {
	p := m.replay.Current()
	var seq uint64
	if m.frame != nil {
		seq = m.frame.Seq
	}
	s := fmt.Sprintf("  x=%.2f y=%.2f yaw=%.0f°  frame %d  ", p.X, p.Y, p.Yaw*180/math.Pi, seq)
	if m.replay.Len() > 0 && m.replay.Paused() {
		s = "  paused" + s
	}
	return s
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"Tab sidebar",
		"Enter open",
		"1/2/3 space/furn/walls",
		"p paste",
		"a layers",
		"space pause",
		"click debug",
		"c clear",
		"h help",
		"q quit",
	}
	if m.pasteMode {
		keys = []string{"Enter add", "Ctrl+L layer", "Esc cancel"}
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
