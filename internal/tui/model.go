package tui

import (
	"image/color"
	"os"
	"path/filepath"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"floormap/internal/geom"
	"floormap/internal/render"
)

// Options wires the host to an already configured renderer.
type Options struct {
	Renderer *render.Renderer
	Surface  *render.FrameSurface
	Overlay  *render.PointList
	// PixelsPerDot is the surface resolution per braille dot.
	PixelsPerDot int
	Background   color.Color
	Refresh      time.Duration
	Poses        []geom.Pose
	Logger       *log.Logger
	// Plan is shown at launch when it has polygons; PlanPath names its file.
	Plan     geom.Floorplan
	PlanPath string
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	plan geom.Floorplan

	// paste mode
	pasteMode  bool
	ta         textarea.Model
	pasteLayer geom.Layer

	// layer visibility
	showSpace     bool
	showFurniture bool
	showWalls     bool

	// layer table
	showAttrs bool
	tbl       table.Model

	renderer   *render.Renderer
	surface    *render.FrameSurface
	overlay    *render.PointList
	replay     *PoseReplay
	density    int
	background colorful.Color
	refresh    time.Duration
	frame      *render.Frame
	logger     *log.Logger
}

func New(opts Options) Model {
	m := Model{
		helpVisible:   true,
		status:        "floormap ready",
		pasteLayer:    geom.LayerWalls,
		showSpace:     true,
		showFurniture: true,
		showWalls:     true,
		renderer:      opts.Renderer,
		surface:       opts.Surface,
		overlay:       opts.Overlay,
		replay:        NewPoseReplay(opts.Poses),
		density:       max(1, opts.PixelsPerDot),
		refresh:       opts.Refresh,
		logger:        opts.Logger,
	}
	if m.refresh <= 0 {
		m.refresh = render.DefaultInterval
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	m.background, _ = colorful.MakeColor(bg)
	if m.overlay == nil {
		m.overlay = &render.PointList{}
	}

	// Pull the next pose just before each frame is drawn.
	r, replay := m.renderer, m.replay
	r.RegisterPreDrawCallback(func() {
		p := replay.Next()
		r.UpdateCameraMatrix(p.X, p.Y, p.Yaw)
	})

	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Floorplans"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (LINESTRING or POLYGON, optionally prefixed by walls/space/furniture). Enter adds it; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithColumns(layerColumns), table.WithFocused(true))
	m.tbl.SetHeight(6)
	m.refreshDir()
	if len(opts.Plan.Polygons) > 0 {
		m.plan = opts.Plan
		m.selPath = opts.PlanPath
		m.publish()
		m.status = "loaded: " + filepath.Base(opts.PlanPath) + "  " + m.counts()
	}
	return m
}

// NewWithPath preloads a floorplan file at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	m.loadPath(path)
	return m
}

type frameMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// publish hands the visible part of the plan to the renderer.
func (m *Model) publish() {
	m.renderer.SetFloorplan(m.plan.Filter(m.layerVisible))
}

func (m Model) layerVisible(l geom.Layer) bool {
	switch l {
	case geom.LayerSpace:
		return m.showSpace
	case geom.LayerFurniture:
		return m.showFurniture
	case geom.LayerWalls:
		return m.showWalls
	}
	// unknown layers are passed through; the renderer logs and drops them
	return true
}
