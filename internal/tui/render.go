package tui

import (
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
)

// inkThreshold is the RGB distance from the background above which a
// downsampled dot counts as drawn.
const inkThreshold = 0.08

// renderFrame downsamples img onto a w×h cell braille grid (2×4 dots per
// cell) and returns the rows.
func renderFrame(img image.Image, w, h int, bg colorful.Color) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	br := newBrailleBuf(w, h)
	if img == nil {
		return br.toLines()
	}
	dots := image.NewRGBA(image.Rect(0, 0, w*2, h*4))
	xdraw.ApproxBiLinear.Scale(dots, dots.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	for y := 0; y < h*4; y++ {
		for x := 0; x < w*2; x++ {
			c, ok := colorful.MakeColor(dots.RGBAAt(x, y))
			if !ok || c.DistanceRgb(bg) < inkThreshold {
				continue
			}
			br.setPixel(x, y)
			br.tint(x, y, c)
		}
	}
	return br.toStyledLines()
}

// mapView renders the latest frame, or a placeholder before the first one.
func (m Model) mapView(w, h int) string {
	f := m.frame
	if f == nil {
		lines := make([]string, h)
		if h > 0 {
			lines[h/2] = dimStyle.Render(" waiting for first frame…")
		}
		return strings.Join(lines, "\n")
	}
	return strings.Join(renderFrame(f.Image, w, h, m.background), "\n")
}

// canvasPoint converts a map cell to surface pixel coordinates (cell center).
func (m Model) canvasPoint(cellX, cellY int) (float64, float64) {
	d := float64(m.density)
	return (float64(cellX)*2 + 1) * d, (float64(cellY)*4 + 2) * d
}
