package render

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
)

// Option configures a Renderer.
type Option func(*Renderer)

func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithScale sets pixels per meter (default 100).
func WithScale(s float64) Option {
	return func(r *Renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithInterval sets the redraw period (default 100ms).
func WithInterval(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

func WithOverlay(o DebugOverlay) Option {
	return func(r *Renderer) { r.overlay = o }
}

// WithDebugOffset shifts every debug point by (x, y) pixels before drawing.
func WithDebugOffset(x, y float64) Option {
	return func(r *Renderer) { r.debugOffset = gg.Point{X: x, Y: y} }
}
