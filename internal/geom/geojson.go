package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// LayerUnset marks a feature that carried no usable layer property.
// It is not a known layer, so renderers skip such polygons.
const LayerUnset Layer = -1

// LoadGeo reads a GeoJSON file and returns its layered polygons.
func LoadGeo(path string) (Floorplan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Floorplan{}, err
	}
	defer f.Close()
	return ReadGeo(f)
}

// ReadGeo decodes GeoJSON. Each feature's "layer" property (name or number)
// selects the layer; Polygon rings become closed polygons and LineStrings
// open ones. Points are ignored.
func ReadGeo(r io.Reader) (Floorplan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Floorplan{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Floorplan{}, fmt.Errorf("geojson: %w", err)
	}
	var fp Floorplan
	parsePoint := func(v any) (Point, bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return Point{X: x, Y: y}, true
			}
		}
		return Point{}, false
	}
	parseLineString := func(v any) ([]Point, bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		var pts []Point
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts, true
	}
	parseRings := func(v any) ([][]Point, bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		var rings [][]Point
		for _, el := range arr {
			if ring, ok := parseLineString(el); ok {
				rings = append(rings, trimClosingVertex(ring))
			}
		}
		return rings, true
	}
	var walkGeom func(g map[string]any, layer Layer)
	walkGeom = func(g map[string]any, layer Layer) {
		gt, _ := g["type"].(string)
		switch gt {
		case "LineString":
			if ls, ok := parseLineString(g["coordinates"]); ok {
				fp.add(Polygon{Points: ls, Layer: layer})
			}
		case "MultiLineString":
			if mls, ok := parseRings(g["coordinates"]); ok {
				for _, ls := range mls {
					fp.add(Polygon{Points: ls, Layer: layer})
				}
			}
		case "Polygon":
			if rings, ok := parseRings(g["coordinates"]); ok {
				for _, ring := range rings {
					fp.add(Polygon{Points: ring, Closed: true, Layer: layer})
				}
			}
		case "MultiPolygon":
			arr, _ := g["coordinates"].([]any)
			for _, el := range arr {
				if rings, ok := parseRings(el); ok {
					for _, ring := range rings {
						fp.add(Polygon{Points: ring, Closed: true, Layer: layer})
					}
				}
			}
		case "GeometryCollection":
			gs, _ := g["geometries"].([]any)
			for _, sub := range gs {
				if sm, ok := sub.(map[string]any); ok {
					walkGeom(sm, layer)
				}
			}
		}
	}
	walkFeature := func(fm map[string]any) {
		g, ok := fm["geometry"].(map[string]any)
		if !ok {
			return
		}
		props, _ := fm["properties"].(map[string]any)
		walkGeom(g, featureLayer(props))
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					walkFeature(fm)
				}
			}
		}
	default:
		if len(raw) > 0 {
			walkGeom(raw, LayerUnset)
		}
	}
	if len(fp.Polygons) == 0 {
		return Floorplan{}, errors.New("no polygons found")
	}
	return fp, nil
}

func featureLayer(props map[string]any) Layer {
	switch v := props["layer"].(type) {
	case float64:
		return Layer(int(v))
	case string:
		if l, err := ParseLayer(v); err == nil {
			return l
		}
	}
	return LayerUnset
}

// trimClosingVertex drops the repeated first vertex GeoJSON rings end with.
func trimClosingVertex(ring []Point) []Point {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}
