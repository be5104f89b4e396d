package render

import (
	"image/color"

	"floormap/internal/geom"
)

// Styles holds the paints used for each floorplan element.
type Styles struct {
	Background color.Color
	Walls      Paint
	Space      Paint
	Furniture  Paint
	Marker     Paint
	Debug      Paint
	DebugPoint Paint
}

func DefaultStyles() Styles {
	return Styles{
		Background: color.White,
		Walls:      Paint{Color: color.Black, Style: Stroke, Width: 3},
		Space:      Paint{Color: color.RGBA{R: 0xcf, G: 0xe8, B: 0xfc, A: 0xff}, Style: Fill},
		Furniture:  Paint{Color: color.RGBA{R: 0xc9, G: 0x9a, B: 0x6b, A: 0xff}, Style: Fill},
		Marker:     Paint{Color: color.RGBA{R: 0xff, G: 0x57, B: 0x22, A: 0xff}, Style: Fill},
		Debug:      Paint{Color: color.Black, Style: Fill},
		DebugPoint: Paint{Color: color.RGBA{G: 0xff, A: 0xff}, Style: Fill, Width: 2},
	}
}

// forLayer returns the paint for a known layer.
func (s Styles) forLayer(l geom.Layer) (Paint, bool) {
	switch l {
	case geom.LayerFurniture:
		return s.Furniture, true
	case geom.LayerSpace:
		return s.Space, true
	case geom.LayerWalls:
		return s.Walls, true
	}
	return Paint{}, false
}
