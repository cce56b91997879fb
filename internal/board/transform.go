package board

import (
	"errors"
	"fmt"
	"math"
)

// Zoom limits for interactive stepping. NewTransform itself accepts any
// positive finite factor.
const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	zoomStep = 1.25
)

var ErrInvalidZoom = errors.New("zoom must be a positive finite number")

// Point is a 2D coordinate in either screen or canvas space.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Transform maps screen space to canvas space: canvas = screen / zoom.
// The zero value behaves as zoom 1.
type Transform struct {
	zoom float64
}

func NewTransform(zoom float64) (Transform, error) {
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return Transform{}, fmt.Errorf("%w: %v", ErrInvalidZoom, zoom)
	}
	return Transform{zoom: zoom}, nil
}

func (t Transform) Zoom() float64 {
	if t.zoom == 0 {
		return 1
	}
	return t.zoom
}

func (t Transform) ToCanvas(p Point) Point {
	z := t.Zoom()
	return Point{p.X / z, p.Y / z}
}

func (t Transform) ToScreen(p Point) Point {
	z := t.Zoom()
	return Point{p.X * z, p.Y * z}
}

// Delta converts a screen-space movement into the canvas-space distance it
// covers at the current zoom.
func (t Transform) Delta(from, to Point) Point {
	return t.ToCanvas(to.Sub(from))
}

// StepZoom multiplies z by the zoom step `steps` times (negative zooms out)
// and clamps the result to [MinZoom, MaxZoom].
func StepZoom(z float64, steps int) float64 {
	next := z * math.Pow(zoomStep, float64(steps))
	return math.Min(MaxZoom, math.Max(MinZoom, next))
}
