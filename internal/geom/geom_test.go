package geom

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayer(t *testing.T) {
	tests := []struct {
		in      string
		want    Layer
		wantErr bool
	}{
		{"walls", LayerWalls, false},
		{"Wall", LayerWalls, false},
		{"space", LayerSpace, false},
		{" furniture ", LayerFurniture, false},
		{"2", LayerWalls, false},
		{"9", Layer(9), false},
		{"ceiling", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLayer(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLayer(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLayer(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLayerKnown(t *testing.T) {
	assert.True(t, LayerSpace.Known())
	assert.True(t, LayerFurniture.Known())
	assert.True(t, LayerWalls.Known())
	assert.False(t, Layer(3).Known())
	assert.False(t, LayerUnset.Known())
	assert.Equal(t, "layer(7)", Layer(7).String())
}

func TestPointFinite(t *testing.T) {
	assert.True(t, Point{X: 1, Y: -2}.Finite())
	assert.False(t, Point{X: math.NaN()}.Finite())
	assert.False(t, Point{Y: math.Inf(-1)}.Finite())
}

const sampleGeo = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"layer": "space"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[4,0],[4,3],[0,3],[0,0]]]}},
    {"type": "Feature", "properties": {"layer": 2},
     "geometry": {"type": "LineString", "coordinates": [[0,0],[4,0]]}},
    {"type": "Feature", "properties": {"layer": "furniture"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[1,1],[2,1],[2,2]]]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "LineString", "coordinates": [[-1,5],[0,5]]}},
    {"type": "Feature", "properties": {"layer": "walls"},
     "geometry": {"type": "Point", "coordinates": [9,9]}}
  ]
}`

func TestReadGeo(t *testing.T) {
	fp, err := ReadGeo(strings.NewReader(sampleGeo))
	require.NoError(t, err)

	want := []Polygon{
		{Points: []Point{{0, 0}, {4, 0}, {4, 3}, {0, 3}}, Closed: true, Layer: LayerSpace},
		{Points: []Point{{0, 0}, {4, 0}}, Layer: LayerWalls},
		{Points: []Point{{1, 1}, {2, 1}, {2, 2}}, Closed: true, Layer: LayerFurniture},
		{Points: []Point{{-1, 5}, {0, 5}}, Layer: LayerUnset},
	}
	if diff := cmp.Diff(want, fp.Polygons); diff != "" {
		t.Errorf("polygons mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, BBox{MinX: -1, MinY: 0, MaxX: 4, MaxY: 5}, fp.BBox)
}

func TestReadGeoErrors(t *testing.T) {
	_, err := ReadGeo(strings.NewReader(`{"type":"Point","coordinates":[1,2]}`))
	assert.Error(t, err)
	_, err = ReadGeo(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestParseWKT(t *testing.T) {
	text := `# kitchen
walls LINESTRING(0 0, 3 0, 3 2)
space POLYGON((0 0, 3 0, 3 2, 0 2, 0 0), (1 1, 2 1, 2 1.5))

POLYGON((5 5, 6 5, 6 6))`
	fp, err := ParseWKT(text, LayerFurniture)
	require.NoError(t, err)

	want := []Polygon{
		{Points: []Point{{0, 0}, {3, 0}, {3, 2}}, Layer: LayerWalls},
		{Points: []Point{{0, 0}, {3, 0}, {3, 2}, {0, 2}}, Closed: true, Layer: LayerSpace},
		{Points: []Point{{1, 1}, {2, 1}, {2, 1.5}}, Closed: true, Layer: LayerSpace},
		{Points: []Point{{5, 5}, {6, 5}, {6, 6}}, Closed: true, Layer: LayerFurniture},
	}
	if diff := cmp.Diff(want, fp.Polygons); diff != "" {
		t.Errorf("polygons mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 6, MaxY: 6}, fp.BBox)
}

func TestParseWKTErrors(t *testing.T) {
	tests := map[string]string{
		"empty":       "  ",
		"unsupported": "POINT(1 2)",
		"bad layer":   "roof LINESTRING(0 0, 1 1)",
		"unbalanced":  "POLYGON((0 0, 1 1",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWKT(in, LayerWalls)
			assert.Error(t, err)
		})
	}
}

func TestReadPoses(t *testing.T) {
	in := "t,X,Y,Yaw\n0,0,0,0\n1,0.5,-1,1.57\n2,bad,0,0\n3,1\n"
	poses, err := ReadPoses(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Pose{{}, {X: 0.5, Y: -1, Yaw: 1.57}}, poses)

	_, err = ReadPoses(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
	_, err = ReadPoses(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParsePose(t *testing.T) {
	p, err := ParsePose("1.5, -2, 0.25")
	require.NoError(t, err)
	assert.Equal(t, Pose{X: 1.5, Y: -2, Yaw: 0.25}, p)

	_, err = ParsePose("1,2")
	assert.Error(t, err)
	_, err = ParsePose("1,x,2")
	assert.Error(t, err)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	geo := filepath.Join(dir, "plan.geojson")
	wkt := filepath.Join(dir, "plan.wkt")
	require.NoError(t, os.WriteFile(geo, []byte(sampleGeo), 0o644))
	require.NoError(t, os.WriteFile(wkt, []byte("LINESTRING(0 0, 1 0)"), 0o644))

	fp, err := Load(geo)
	require.NoError(t, err)
	assert.Len(t, fp.Polygons, 4)

	fp, err = Load(wkt)
	require.NoError(t, err)
	require.Len(t, fp.Polygons, 1)
	assert.Equal(t, LayerWalls, fp.Polygons[0].Layer)

	_, err = Load(filepath.Join(dir, "plan.kml"))
	assert.Error(t, err)
	assert.True(t, Supported("x.GeoJSON"))
	assert.False(t, Supported("x.csv"))
}

func TestFloorplanFilter(t *testing.T) {
	fp, err := ReadGeo(strings.NewReader(sampleGeo))
	require.NoError(t, err)
	walls := fp.Filter(func(l Layer) bool { return l == LayerWalls })
	require.Len(t, walls, 1)
	assert.Len(t, fp.Polygons, 4)
}

func TestFloorplanAddBounds(t *testing.T) {
	var fp Floorplan
	fp.add(Polygon{Layer: LayerWalls})
	fp.add(Polygon{Points: []Point{{X: 5, Y: -2}}, Layer: LayerSpace})
	for i := 0; i < 1000; i++ {
		x := float64(i)
		fp.add(Polygon{Points: []Point{{X: x, Y: x / 2}, {X: -x, Y: 3}}, Layer: LayerFurniture})
	}
	assert.Len(t, fp.Polygons, 1002)
	assert.Equal(t, 2001, fp.vertices)
	assert.Equal(t, BBox{MinX: -999, MinY: -2, MaxX: 999, MaxY: 499.5}, fp.BBox)
}
