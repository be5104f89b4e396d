package tui

import (
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floormap/internal/geom"
	"floormap/internal/render"
)

func square(layer geom.Layer, x float64) geom.Polygon {
	return geom.Polygon{
		Points: []geom.Point{{X: x, Y: 0}, {X: x + 1, Y: 0}, {X: x + 1, Y: 1}, {X: x, Y: 1}},
		Closed: true,
		Layer:  layer,
	}
}

func testModel(t *testing.T, poses []geom.Pose) (Model, *render.Renderer, *render.FrameSurface) {
	t.Helper()
	logger := log.New(io.Discard)
	r := render.New(render.WithLogger(logger))
	s := render.NewFrameSurface(0, 0)
	m := New(Options{
		Renderer:     r,
		Surface:      s,
		PixelsPerDot: 1,
		Poses:        poses,
		Logger:       logger,
		Plan: geom.Floorplan{Polygons: []geom.Polygon{
			square(geom.LayerSpace, 0),
			square(geom.LayerFurniture, 2),
			square(geom.LayerWalls, 4),
			square(geom.Layer(9), 6),
		}},
		PlanPath: "office.geojson",
	})
	return m, r, s
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func layersOf(polys []geom.Polygon) []geom.Layer {
	var out []geom.Layer
	for _, p := range polys {
		out = append(out, p.Layer)
	}
	return out
}

func TestPoseReplay(t *testing.T) {
	poses := []geom.Pose{{X: 1}, {X: 2}, {X: 3}}
	p := NewPoseReplay(poses)

	var got []float64
	for i := 0; i < 5; i++ {
		got = append(got, p.Next().X)
	}
	assert.Equal(t, []float64{1, 2, 3, 1, 2}, got)

	assert.True(t, p.TogglePause())
	assert.Equal(t, 2.0, p.Next().X, "paused replay holds its pose")
	assert.True(t, p.Paused())
	assert.False(t, p.TogglePause())
	assert.Equal(t, 3.0, p.Next().X)
	assert.Equal(t, 3, p.Len())
}

func TestPoseReplayEmpty(t *testing.T) {
	p := NewPoseReplay(nil)
	assert.Equal(t, geom.Pose{}, p.Next())
	assert.Equal(t, geom.Pose{}, p.Current())
}

func TestBrailleBufLines(t *testing.T) {
	b := newBrailleBuf(2, 1)
	b.setPixel(0, 0)
	b.setPixel(1, 3)
	b.setPixel(99, 99)
	lines := b.toLines()
	require.Len(t, lines, 1)
	assert.Equal(t, string(rune(0x2800+0x01+0x80))+" ", lines[0])
}

func TestBrailleTintKeepsDarkest(t *testing.T) {
	b := newBrailleBuf(1, 1)
	b.setPixel(0, 0)
	light, _ := colorful.Hex("#cfe8fc")
	b.tint(0, 0, light)
	b.tint(1, 1, colorful.Color{})
	b.tint(0, 2, light)
	assert.Equal(t, "#000000", b.cellColor(0, 0))
}

func TestRenderFrame(t *testing.T) {
	// 2×1 cells are 4×4 dots; the image matches so sampling is exact.
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			if x < 2 {
				c = color.RGBA{A: 0xff}
			}
			img.SetRGBA(x, y, c)
		}
	}
	bg, _ := colorful.MakeColor(color.White)
	lines := renderFrame(img, 2, 1, bg)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "⣿")
	assert.True(t, strings.HasSuffix(lines[0], " "), "background cell stays blank")

	assert.Nil(t, renderFrame(img, 0, 3, bg))
	assert.Equal(t, []string{"  "}, renderFrame(nil, 2, 1, bg))
}

func TestNewPublishesPlan(t *testing.T) {
	m, r, _ := testModel(t, nil)
	assert.Len(t, r.Floorplan(), 4)
	assert.Contains(t, m.status, "office.geojson")
	assert.Contains(t, m.counts(), "space=1 furniture=1 walls=1 other=1")
}

func TestLayerToggles(t *testing.T) {
	m, r, _ := testModel(t, nil)

	m = update(t, m, key("1"))
	assert.Equal(t, []geom.Layer{geom.LayerFurniture, geom.LayerWalls, geom.Layer(9)}, layersOf(r.Floorplan()))

	m = update(t, m, key("3"))
	assert.Equal(t, []geom.Layer{geom.LayerFurniture, geom.Layer(9)}, layersOf(r.Floorplan()))

	m = update(t, m, key("l"))
	assert.Len(t, r.Floorplan(), 4, "l shows every layer when some are hidden")
	update(t, m, key("l"))
	assert.Equal(t, []geom.Layer{geom.Layer(9)}, layersOf(r.Floorplan()), "unknown layers pass through")
}

func TestLayerRows(t *testing.T) {
	m, _, _ := testModel(t, nil)
	m.showWalls = false
	rows := m.layerRows()
	require.Len(t, rows, 4)
	assert.Equal(t, "space", rows[0][0])
	assert.Equal(t, "false", rows[2][4])
	assert.Equal(t, "n/a", rows[3][4])
	assert.Equal(t, "4", rows[3][2])
}

func TestWindowSizeResizesSurface(t *testing.T) {
	m, _, s := testModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	w, h := s.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, (20-headerHeight-footerHeight)*4, h)

	update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	w, _ = s.Size()
	assert.Equal(t, (40-sidebarWidth-1)*2, w, "sidebar narrows the map")
}

func TestFrameMsgPicksUpLatestFrame(t *testing.T) {
	m, r, _ := testModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	c, err := r.LockCanvas()
	require.NoError(t, err)
	r.Draw(c)
	r.ReleaseCanvas(c)

	m = update(t, m, frameMsg{})
	require.NotNil(t, m.frame)
	assert.Equal(t, uint64(1), m.frame.Seq)
	assert.NotContains(t, m.mapView(10, 4), "waiting")
}

func TestPreDrawAdvancesReplay(t *testing.T) {
	poses := []geom.Pose{{X: 1, Y: 2, Yaw: 0.5}, {X: 3, Y: 4}}
	m, r, _ := testModel(t, poses)
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	c, err := r.LockCanvas()
	require.NoError(t, err)
	r.Draw(c)
	r.ReleaseCanvas(c)

	want := render.NewCamera(1, 2, 0.5, render.DefaultScale)
	assert.Equal(t, want, r.Camera())
	assert.Equal(t, poses[0], m.replay.Current())

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "replay paused", m.status)
}

func TestClickAddsDebugPoint(t *testing.T) {
	overlay := &render.PointList{}
	m, _, _ := testModel(t, nil)
	m.overlay = overlay
	m = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	// header row is not part of the map
	m = update(t, m, tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Empty(t, overlay.DebugPoints())

	// cell (10, 3) centers on surface pixel (21, 14) of a 40×28 surface
	m = update(t, m, tea.MouseMsg{X: 10, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, []image.Point{{X: 1, Y: 0}}, overlay.DebugPoints())

	update(t, m, key("c"))
	assert.Empty(t, overlay.DebugPoints())
}

func TestPasteAddsGeometry(t *testing.T) {
	m, r, _ := testModel(t, nil)
	m = update(t, m, key("p"))
	require.True(t, m.pasteMode)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, geom.LayerSpace, m.pasteLayer)

	m.ta.SetValue("POLYGON((10 10, 11 10, 11 11, 10 10))")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	assert.Len(t, r.Floorplan(), 5)
	assert.Equal(t, geom.LayerSpace, r.Floorplan()[4].Layer)
	assert.Equal(t, 11.0, m.plan.BBox.MaxX)

	m = update(t, m, key("p"))
	m.ta.SetValue("CIRCLE(1 2)")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "wkt error")
}

func TestViewLayout(t *testing.T) {
	m, _, _ := testModel(t, nil)
	assert.Empty(t, m.View(), "nothing to draw before the first size message")

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	v := m.View()
	assert.Contains(t, v, "floormap")
	assert.Contains(t, v, "waiting for first frame")
	assert.Contains(t, v, "yaw=0°")

	m = update(t, m, key("h"))
	assert.NotContains(t, m.View(), "q quit")
}
