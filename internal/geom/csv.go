package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadPoses reads a pose trajectory CSV, see ReadPoses.
func LoadPoses(path string) ([]Pose, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPoses(f)
}

// ReadPoses reads a CSV with x, y and yaw columns (yaw in radians).
// Column detection: x|tx, y|ty, yaw|heading|theta (case-insensitive).
// Rows that fail to parse are skipped.
func ReadPoses(r io.Reader) ([]Pose, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxX, idxY, idxYaw := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "tx":
			if idxX == -1 {
				idxX = i
			}
		case "y", "ty":
			if idxY == -1 {
				idxY = i
			}
		case "yaw", "heading", "theta":
			if idxYaw == -1 {
				idxYaw = i
			}
		}
	}
	if idxX == -1 || idxY == -1 || idxYaw == -1 {
		return nil, errors.New("csv: x/y/yaw columns not found")
	}
	var poses []Pose
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) || idxYaw >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		yaw, err3 := strconv.ParseFloat(strings.TrimSpace(row[idxYaw]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		poses = append(poses, Pose{X: x, Y: y, Yaw: yaw})
	}
	if len(poses) == 0 {
		return nil, errors.New("csv: no valid poses parsed")
	}
	return poses, nil
}

// ParsePose parses "x,y,yaw".
func ParsePose(s string) (Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Pose{}, fmt.Errorf("pose %q: want x,y,yaw", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Pose{}, fmt.Errorf("pose %q: %w", s, err)
		}
		v[i] = f
	}
	return Pose{X: v[0], Y: v[1], Yaw: v[2]}, nil
}

// Load reads a floorplan by file extension: .geojson/.json or .wkt.
// WKT geometries without a layer prefix default to walls.
func Load(path string) (Floorplan, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".wkt":
		return LoadWKT(path, LayerWalls)
	default:
		return Floorplan{}, fmt.Errorf("unsupported file: %s", ext)
	}
}

// Supported reports whether Load understands the file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".wkt":
		return true
	}
	return false
}
