package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to cover p. The zero box is treated as empty when first is true.
func (b *BBox) Extend(p Point, first bool) {
	if first {
		*b = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
		return
	}
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// Point is a floorplan vertex in meters.
type Point struct {
	X, Y float64
}

func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Layer classifies a reconstructed polygon.
type Layer int

const (
	LayerSpace     Layer = 0
	LayerFurniture Layer = 1
	LayerWalls     Layer = 2
)

func (l Layer) Known() bool {
	return l == LayerSpace || l == LayerFurniture || l == LayerWalls
}

func (l Layer) String() string {
	switch l {
	case LayerSpace:
		return "space"
	case LayerFurniture:
		return "furniture"
	case LayerWalls:
		return "walls"
	}
	return "layer(" + strconv.Itoa(int(l)) + ")"
}

// ParseLayer accepts a layer name or its integer value.
// Unknown integers are returned as-is so callers can decide what to drop.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "space", "floor":
		return LayerSpace, nil
	case "furniture":
		return LayerFurniture, nil
	case "walls", "wall":
		return LayerWalls, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("unknown layer %q", s)
	}
	return Layer(n), nil
}

// Polygon is one reconstructed outline. It is never mutated after being
// handed to a renderer.
type Polygon struct {
	Points []Point
	Closed bool
	Layer  Layer
}

// Floorplan is a loaded polygon set with the bounds of all its vertices.
type Floorplan struct {
	Polygons []Polygon
	BBox     BBox

	vertices int // added so far; BBox is unset while zero
}

func (f *Floorplan) add(p Polygon) {
	for _, pt := range p.Points {
		f.BBox.Extend(pt, f.vertices == 0)
		f.vertices++
	}
	f.Polygons = append(f.Polygons, p)
}

// Filter returns the polygons whose layer passes keep. The input is not modified.
func (f Floorplan) Filter(keep func(Layer) bool) []Polygon {
	out := make([]Polygon, 0, len(f.Polygons))
	for _, p := range f.Polygons {
		if keep(p.Layer) {
			out = append(out, p)
		}
	}
	return out
}

// Pose is a device position (meters) and heading (radians).
type Pose struct {
	X, Y float64
	Yaw  float64
}
