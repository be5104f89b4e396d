package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the map area in terminal cells. View and Update must agree on it.
type layout struct {
	originX, originY int
	w, h             int
	contentW         int
	contentH         int
}

func (m Model) layout() layout {
	sb := 0
	if m.showSidebar {
		sb = sidebarWidth + 1
	}
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	return layout{
		originX:  sb,
		originY:  headerHeight,
		w:        max(10, contentW-sb),
		h:        contentH,
		contentW: contentW,
		contentH: contentH,
	}
}

// resize matches the surface to the map area and tells the renderer.
func (m *Model) resize() {
	lo := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lo.contentH-2)
	}
	m.surface.Resize(lo.w*2*m.density, lo.h*4*m.density)
	m.renderer.SurfaceChanged(m.surface)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case frameMsg:
		if f := m.surface.Latest(); f != nil {
			m.frame = f
		}
		return m, m.tick()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showSpace = !m.showSpace
			m.layersChanged(fmt.Sprintf("space: %v", m.showSpace))
		case "2":
			m.showFurniture = !m.showFurniture
			m.layersChanged(fmt.Sprintf("furniture: %v", m.showFurniture))
		case "3":
			m.showWalls = !m.showWalls
			m.layersChanged(fmt.Sprintf("walls: %v", m.showWalls))
		case "l":
			all := m.showSpace && m.showFurniture && m.showWalls
			m.showSpace, m.showFurniture, m.showWalls = !all, !all, !all
			m.layersChanged(fmt.Sprintf("layers: space=%v furniture=%v walls=%v", m.showSpace, m.showFurniture, m.showWalls))
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resize()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode (" + m.pasteLayer.String() + ")"
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshLayerTable()
			}
		case " ", "space":
			if m.replay.TogglePause() {
				m.status = "replay paused"
			} else {
				m.status = "replay running"
			}
		case "c":
			m.overlay.Clear()
			m.status = "debug points cleared"
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.addDebugPoint(msg.X, msg.Y)
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "ctrl+l":
		m.pasteLayer = nextPasteLayer(m.pasteLayer)
		m.status = "paste mode (" + m.pasteLayer.String() + ")"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if err := m.addPasted(w); err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.status = "added WKT  " + m.counts()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) layersChanged(status string) {
	m.publish()
	m.status = status
	if m.showAttrs {
		m.refreshLayerTable()
	}
}

// addDebugPoint pins a debug marker under the clicked map cell.
func (m *Model) addDebugPoint(x, y int) {
	lo := m.layout()
	if m.pasteMode || m.showAttrs {
		return
	}
	cx, cy := x-lo.originX, y-lo.originY
	if cx < 0 || cy < 0 || cx >= lo.w || cy >= lo.h {
		return
	}
	w, h := m.surface.Size()
	px, py := m.canvasPoint(cx, cy)
	pt := m.renderer.DebugPointAt(px, py, w, h)
	m.overlay.Add(pt)
	m.status = fmt.Sprintf("debug point at %d,%d", pt.X, pt.Y)
}
