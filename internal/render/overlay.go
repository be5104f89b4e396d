package render

import (
	"image"
	"sync"

	"floormap/internal/geom"
)

// DebugOverlay supplies screen-space points drawn on top of every frame.
type DebugOverlay interface {
	DebugPoints() []image.Point
}

// PointList is a DebugOverlay safe for concurrent use.
type PointList struct {
	mu  sync.Mutex
	pts []image.Point
}

func (l *PointList) Add(p image.Point) {
	l.mu.Lock()
	l.pts = append(l.pts, p)
	l.mu.Unlock()
}

func (l *PointList) Clear() {
	l.mu.Lock()
	l.pts = nil
	l.mu.Unlock()
}

func (l *PointList) DebugPoints() []image.Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]image.Point(nil), l.pts...)
}

// markerOutline is the device arrow in meters, origin at the device.
var markerOutline = []geom.Point{
	{X: 0, Y: 0},
	{X: -0.2, Y: 0},
	{X: -0.2, Y: -0.05},
	{X: 0.2, Y: -0.05},
	{X: 0.2, Y: 0},
	{X: 0, Y: 0},
	{X: 0, Y: -0.05},
	{X: -0.4, Y: -0.5},
	{X: 0.4, Y: -0.5},
	{X: 0, Y: 0},
}

const debugCircleRadius = 20.0
