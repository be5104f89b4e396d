package geom

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadWKT reads a .wkt floorplan file, see ParseWKT.
func LoadWKT(path string, def Layer) (Floorplan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Floorplan{}, err
	}
	return ParseWKT(string(data), def)
}

// ParseWKT parses one geometry per line. A line may start with a layer name
// ("walls LINESTRING(0 0, 4 0)"); lines without one get def.
// Supported: LINESTRING(x y, ...) as open polygons, POLYGON((x y, ...), ...)
// with every ring closed. Blank lines and lines starting with '#' are skipped.
func ParseWKT(text string, def Layer) (Floorplan, error) {
	if strings.TrimSpace(text) == "" {
		return Floorplan{}, errors.New("empty wkt")
	}
	var fp Floorplan
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		polys, err := parseWKTLine(line, def)
		if err != nil {
			return Floorplan{}, fmt.Errorf("wkt line %d: %w", n+1, err)
		}
		for _, p := range polys {
			fp.add(p)
		}
	}
	if len(fp.Polygons) == 0 {
		return Floorplan{}, errors.New("wkt: no geometries parsed")
	}
	return fp, nil
}

func parseWKTLine(s string, layer Layer) ([]Polygon, error) {
	up := strings.ToUpper(s)
	if !strings.HasPrefix(up, "LINESTRING") && !strings.HasPrefix(up, "POLYGON") {
		head, rest, ok := strings.Cut(s, " ")
		if !ok {
			return nil, errors.New("unsupported wkt type")
		}
		l, err := ParseLayer(head)
		if err != nil {
			return nil, err
		}
		layer = l
		s = strings.TrimSpace(rest)
		up = strings.ToUpper(s)
	}
	switch {
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, errors.New("linestring: invalid")
		}
		return []Polygon{{Points: parseTuples(s[i+1 : j]), Layer: layer}}, nil
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("polygon: invalid")
		}
		// normalize spaces around ring separators
		rings := strings.ReplaceAll(s[i+2:j], "), (", "),(")
		rings = strings.ReplaceAll(rings, ") , (", "),(")
		var out []Polygon
		for _, rp := range strings.Split(rings, "),(") {
			out = append(out, Polygon{Points: trimClosingVertex(parseTuples(rp)), Closed: true, Layer: layer})
		}
		return out, nil
	}
	return nil, errors.New("unsupported wkt type")
}

func parseTuples(block string) []Point {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}
