package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"floormap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no floorplan files in current directory"
	}
}

// loadPath replaces the floorplan with the file's polygons.
func (m *Model) loadPath(p string) {
	m.selPath = p
	fp, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.logger.Error("load floorplan", "path", p, "err", err)
		return
	}
	m.plan = fp
	m.publish()
	m.status = "loaded: " + filepath.Base(p) + "  " + m.counts()
	m.logger.Info("floorplan loaded", "path", p, "polygons", len(fp.Polygons))
	if m.showAttrs {
		m.refreshLayerTable()
	}
}

// addPasted appends WKT geometries to the current plan.
func (m *Model) addPasted(text string) error {
	fp, err := geom.ParseWKT(text, m.pasteLayer)
	if err != nil {
		return err
	}
	merged := geom.Floorplan{Polygons: append(append(slices.Grow([]geom.Polygon(nil), len(m.plan.Polygons)+len(fp.Polygons)), m.plan.Polygons...), fp.Polygons...), BBox: m.plan.BBox}
	if len(m.plan.Polygons) == 0 {
		merged.BBox = fp.BBox
	} else {
		merged.BBox.Extend(geom.Point{X: fp.BBox.MinX, Y: fp.BBox.MinY}, false)
		merged.BBox.Extend(geom.Point{X: fp.BBox.MaxX, Y: fp.BBox.MaxY}, false)
	}
	m.plan = merged
	m.publish()
	if m.showAttrs {
		m.refreshLayerTable()
	}
	return nil
}

func (m Model) counts() string {
	var space, furniture, walls, other int
	for _, p := range m.plan.Polygons {
		switch p.Layer {
		case geom.LayerSpace:
			space++
		case geom.LayerFurniture:
			furniture++
		case geom.LayerWalls:
			walls++
		default:
			other++
		}
	}
	return fmt.Sprintf("counts: space=%d furniture=%d walls=%d other=%d", space, furniture, walls, other)
}

// nextPasteLayer cycles walls → space → furniture for pasted geometry.
func nextPasteLayer(l geom.Layer) geom.Layer {
	switch l {
	case geom.LayerWalls:
		return geom.LayerSpace
	case geom.LayerSpace:
		return geom.LayerFurniture
	}
	return geom.LayerWalls
}
