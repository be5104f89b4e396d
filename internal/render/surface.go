package render

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Surface hands out exclusive canvases. Lock returns false when no canvas is
// available right now; every successful Lock must be followed by Post.
type Surface interface {
	Lock() (Canvas, bool)
	Post(c Canvas)
}

// Frame is an immutable posted raster.
type Frame struct {
	Image *image.RGBA
	Seq   uint64
}

// FrameSurface is an in-memory surface. Posted frames are copied out of the
// drawing buffer so readers never see a frame being drawn.
type FrameSurface struct {
	mu     sync.Mutex
	w, h   int
	locked bool
	back   *gg.Context

	seq    atomic.Uint64
	latest atomic.Pointer[Frame]
}

func NewFrameSurface(w, h int) *FrameSurface {
	return &FrameSurface{w: w, h: h}
}

// Resize changes the size used by the next Lock. A zero size makes the
// surface unavailable.
func (s *FrameSurface) Resize(w, h int) {
	s.mu.Lock()
	s.w, s.h = w, h
	s.mu.Unlock()
}

func (s *FrameSurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

func (s *FrameSurface) Lock() (Canvas, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked || s.w <= 0 || s.h <= 0 {
		return nil, false
	}
	if s.back == nil || s.back.Width() != s.w || s.back.Height() != s.h {
		s.back = gg.NewContext(s.w, s.h)
	}
	s.locked = true
	return &ggCanvas{dc: s.back}, true
}

// Post publishes the canvas contents and releases the lock. Canvases not
// handed out by this surface are ignored.
func (s *FrameSurface) Post(c Canvas) {
	gc, ok := c.(*ggCanvas)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok || !s.locked || gc.dc != s.back {
		return
	}
	s.locked = false
	src := gc.dc.Image()
	img := image.NewRGBA(src.Bounds())
	xdraw.Copy(img, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
	s.latest.Store(&Frame{Image: img, Seq: s.seq.Add(1)})
}

// Latest returns the most recently posted frame, or nil.
func (s *FrameSurface) Latest() *Frame {
	return s.latest.Load()
}
