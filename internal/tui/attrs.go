package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"floormap/internal/geom"
)

var layerColumns = []table.Column{
	{Title: "Layer", Width: 12},
	{Title: "Polygons", Width: 9},
	{Title: "Vertices", Width: 9},
	{Title: "Closed", Width: 7},
	{Title: "Visible", Width: 8},
}

type layerStats struct {
	polygons, vertices, closed int
}

// layerRows summarizes the current plan per layer, known layers first.
func (m Model) layerRows() []table.Row {
	stats := map[geom.Layer]*layerStats{}
	var order []geom.Layer
	for _, l := range []geom.Layer{geom.LayerSpace, geom.LayerFurniture, geom.LayerWalls} {
		stats[l] = &layerStats{}
		order = append(order, l)
	}
	for _, p := range m.plan.Polygons {
		s, ok := stats[p.Layer]
		if !ok {
			s = &layerStats{}
			stats[p.Layer] = s
			order = append(order, p.Layer)
		}
		s.polygons++
		s.vertices += len(p.Points)
		if p.Closed {
			s.closed++
		}
	}
	rows := make([]table.Row, 0, len(order))
	for _, l := range order {
		s := stats[l]
		visible := "n/a"
		if l.Known() {
			visible = strconv.FormatBool(m.layerVisible(l))
		}
		rows = append(rows, table.Row{
			l.String(),
			fmt.Sprintf("%d", s.polygons),
			fmt.Sprintf("%d", s.vertices),
			fmt.Sprintf("%d", s.closed),
			visible,
		})
	}
	return rows
}

func (m *Model) refreshLayerTable() {
	m.tbl.SetRows(m.layerRows())
}
