// Package render draws a live top-down floorplan around the device pose.
//
// A Renderer owns the current polygon set and camera, both published by
// atomic replacement so producers never block the render goroutine. Its Loop
// repaints whatever Surface is attached at a fixed cadence:
//
//	r := render.New(render.WithLogger(logger))
//	r.SetFloorplan(fp.Polygons)
//	r.SurfaceCreated(ctx, render.NewFrameSurface(640, 480))
//	defer r.SurfaceDestroyed()
//
//	// producer side, whenever a pose arrives
//	r.UpdateCameraMatrix(pose.X, pose.Y, pose.Yaw)
package render

import (
	"context"
	"errors"
	"image"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"floormap/internal/geom"
)

var (
	ErrNoSurface   = errors.New("render: no surface attached")
	ErrSurfaceBusy = errors.New("render: surface has no canvas available")
)

// PreDrawFunc runs on the render goroutine before each frame. Anything it
// panics or fails with is the registrant's problem.
type PreDrawFunc func()

type surfaceRef struct{ s Surface }

type Renderer struct {
	scale       float64
	interval    time.Duration
	styles      Styles
	overlay     DebugOverlay
	debugOffset gg.Point
	logger      *log.Logger
	marker      Path

	polygons atomic.Pointer[[]geom.Polygon]
	camera   atomic.Pointer[Camera]
	preDraw  atomic.Pointer[PreDrawFunc]
	surface  atomic.Pointer[surfaceRef]

	loop *Loop
}

// New returns a stopped Renderer with an empty floorplan and identity camera.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		scale:    DefaultScale,
		interval: DefaultInterval,
		styles:   DefaultStyles(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.marker = Path{Points: make([]gg.Point, len(markerOutline))}
	for i, p := range markerOutline {
		r.marker.Points[i] = gg.Point{X: p.X * r.scale, Y: p.Y * r.scale}
	}
	empty := []geom.Polygon{}
	r.polygons.Store(&empty)
	cam := IdentityCamera()
	r.camera.Store(&cam)
	r.loop = NewLoop(r.interval, r.currentSurface, r.Draw, r.logger)
	return r
}

// SetFloorplan replaces the polygon set. The slice and its polygons must not
// be modified afterwards; the next frame picks them up.
func (r *Renderer) SetFloorplan(polygons []geom.Polygon) {
	r.polygons.Store(&polygons)
}

func (r *Renderer) Floorplan() []geom.Polygon {
	return *r.polygons.Load()
}

// UpdateCameraMatrix recomputes the camera for a device at (x, y) meters
// heading yaw radians.
func (r *Renderer) UpdateCameraMatrix(x, y, yaw float64) {
	cam := NewCamera(x, y, yaw, r.scale)
	r.camera.Store(&cam)
}

func (r *Renderer) Camera() Camera {
	return *r.camera.Load()
}

// RegisterPreDrawCallback installs fn as the single pre-draw hook; nil removes it.
func (r *Renderer) RegisterPreDrawCallback(fn PreDrawFunc) {
	if fn == nil {
		r.preDraw.Store(nil)
		return
	}
	r.preDraw.Store(&fn)
}

// SurfaceCreated attaches s and starts the render loop.
func (r *Renderer) SurfaceCreated(ctx context.Context, s Surface) {
	r.surface.Store(&surfaceRef{s: s})
	r.loop.Start(ctx)
}

// SurfaceChanged swaps the attached surface without restarting the loop.
func (r *Renderer) SurfaceChanged(s Surface) {
	r.surface.Store(&surfaceRef{s: s})
}

// SurfaceDestroyed stops the loop and detaches the surface.
func (r *Renderer) SurfaceDestroyed() {
	r.loop.Stop()
	r.surface.Store(nil)
}

func (r *Renderer) State() State { return r.loop.State() }

func (r *Renderer) Stats() (frames, skipped uint64) { return r.loop.Stats() }

// lentCanvas remembers the surface a canvas was locked from.
type lentCanvas struct {
	Canvas
	src Surface
}

// LockCanvas takes a canvas from the attached surface for drawing outside
// the loop. Every canvas returned must be handed back with ReleaseCanvas.
func (r *Renderer) LockCanvas() (Canvas, error) {
	s := r.currentSurface()
	if s == nil {
		return nil, ErrNoSurface
	}
	c, ok := s.Lock()
	if !ok {
		return nil, ErrSurfaceBusy
	}
	return &lentCanvas{Canvas: c, src: s}, nil
}

// ReleaseCanvas posts c back to the surface it was locked from, even if
// another surface has been attached since.
func (r *Renderer) ReleaseCanvas(c Canvas) {
	if lc, ok := c.(*lentCanvas); ok {
		lc.src.Post(lc.Canvas)
		return
	}
	if s := r.currentSurface(); s != nil {
		s.Post(c)
	}
}

func (r *Renderer) currentSurface() Surface {
	if ref := r.surface.Load(); ref != nil {
		return ref.s
	}
	return nil
}

// Draw renders one frame onto c.
func (r *Renderer) Draw(c Canvas) {
	if fn := r.preDraw.Load(); fn != nil {
		(*fn)()
	}
	c.Clear(r.styles.Background)

	w, h := c.Size()
	cam := r.Camera()
	view := cam.Matrix.Multiply(gg.Translate(float64(w)/2, float64(h)/2))

	for _, p := range r.Floorplan() {
		path, paint, ok := r.polygonPath(p)
		if !ok {
			continue
		}
		c.DrawPath(transformPath(path, view), paint)
	}

	// Undo the camera so the marker stays centered and upright.
	c.DrawPath(transformPath(r.marker, cam.Inverse.Multiply(view)), r.styles.Marker)

	if r.overlay == nil {
		return
	}
	for _, pt := range r.overlay.DebugPoints() {
		x, y := view.TransformPoint(float64(pt.X)+r.debugOffset.X, float64(pt.Y)+r.debugOffset.Y)
		c.DrawCircle(x, y, debugCircleRadius, r.styles.Debug)
		c.DrawPoint(x, y, r.styles.DebugPoint)
	}
}

// DebugPointAt returns the overlay point whose marker lands on canvas pixel
// (x, y) of a w×h canvas under the current camera.
func (r *Renderer) DebugPointAt(x, y float64, w, h int) image.Point {
	inv := r.Camera().Inverse
	dx, dy := inv.TransformPoint(x-float64(w)/2, y-float64(h)/2)
	return image.Pt(int(math.Round(dx-r.debugOffset.X)), int(math.Round(dy-r.debugOffset.Y)))
}

// polygonPath scales p into untransformed pixels and picks its paint.
func (r *Renderer) polygonPath(p geom.Polygon) (Path, Paint, bool) {
	if len(p.Points) < 2 {
		return Path{}, Paint{}, false
	}
	paint, ok := r.styles.forLayer(p.Layer)
	if !ok {
		r.logger.Warn("ignoring polygon with unknown layer", "layer", int(p.Layer))
		return Path{}, Paint{}, false
	}
	path := Path{Points: make([]gg.Point, len(p.Points)), Closed: p.Closed}
	for i, pt := range p.Points {
		if !pt.Finite() {
			r.logger.Warn("ignoring polygon with non-finite vertex", "layer", p.Layer, "index", i)
			return Path{}, Paint{}, false
		}
		path.Points[i] = gg.Point{X: pt.X * r.scale, Y: pt.Y * r.scale}
	}
	return path, paint, true
}
