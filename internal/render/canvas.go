package render

import (
	"image/color"

	"github.com/fogleman/gg"
)

type Style int

const (
	Fill Style = iota
	Stroke
)

func (s Style) String() string {
	if s == Stroke {
		return "stroke"
	}
	return "fill"
}

// Paint selects how a shape is drawn. Width is the stroke width for Stroke
// paints and the dot radius for points.
type Paint struct {
	Color color.Color
	Style Style
	Width float64
}

// Path is a polyline in canvas pixels.
type Path struct {
	Points []gg.Point
	Closed bool
}

// Canvas is one exclusively held raster target.
type Canvas interface {
	Size() (w, h int)
	Clear(c color.Color)
	DrawPath(p Path, paint Paint)
	DrawCircle(x, y, r float64, paint Paint)
	DrawPoint(x, y float64, paint Paint)
}

type ggCanvas struct {
	dc *gg.Context
}

func (c *ggCanvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *ggCanvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *ggCanvas) DrawPath(p Path, paint Paint) {
	if len(p.Points) == 0 {
		return
	}
	c.dc.ClearPath()
	c.dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		c.dc.LineTo(pt.X, pt.Y)
	}
	if p.Closed {
		c.dc.ClosePath()
	}
	c.paint(paint)
}

func (c *ggCanvas) DrawCircle(x, y, r float64, paint Paint) {
	c.dc.ClearPath()
	c.dc.DrawCircle(x, y, r)
	c.paint(paint)
}

func (c *ggCanvas) DrawPoint(x, y float64, paint Paint) {
	r := paint.Width
	if r <= 0 {
		r = 1
	}
	c.dc.ClearPath()
	c.dc.DrawPoint(x, y, r)
	c.dc.SetColor(paint.Color)
	c.dc.Fill()
}

func (c *ggCanvas) paint(p Paint) {
	c.dc.SetColor(p.Color)
	if p.Style == Stroke {
		w := p.Width
		if w <= 0 {
			w = 1
		}
		c.dc.SetLineWidth(w)
		c.dc.Stroke()
		return
	}
	c.dc.Fill()
}
