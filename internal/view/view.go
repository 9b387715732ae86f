// Package view maps between device pixels and the logical Cartesian grid.
package view

import (
	"tikz-cad/pkg/geometry"
)

const (
	// MinScale and MaxScale clamp the zoom in pixels per grid unit.
	MinScale = 5.0
	MaxScale = 500.0
	// ZoomStep is the multiplicative factor applied per wheel tick.
	ZoomStep = 1.1

	DefaultScale = 40.0
)

// Transform holds the viewport parameters: scale in pixels per grid unit
// and a pixel offset of the grid origin from the viewport center. Grid Y
// grows upward while device Y grows downward, so the mapping negates Y.
type Transform struct {
	Scale  float64
	Offset geometry.Point2D

	// Viewport size in device pixels, zero until measured.
	Width  float64
	Height float64
}

// New returns a transform at the default zoom with the origin centered.
func New() *Transform {
	return &Transform{Scale: DefaultScale}
}

// Measured reports whether the viewport has been sized at least once.
func (t *Transform) Measured() bool {
	return t.Width > 0 && t.Height > 0
}

// SetViewport records the viewport size in device pixels.
func (t *Transform) SetViewport(w, h float64) {
	t.Width = w
	t.Height = h
}

// gridToScreen builds the affine mapping from grid to device coordinates.
func (t *Transform) gridToScreen() geometry.AffineTransform {
	return geometry.Translation(t.Width/2+t.Offset.X, t.Height/2+t.Offset.Y).
		Compose(geometry.Scaling(t.Scale, -t.Scale))
}

// GridToScreen converts a grid point to device pixels.
func (t *Transform) GridToScreen(p geometry.Point2D) geometry.Point2D {
	return t.gridToScreen().Apply(p)
}

// ScreenToGrid converts a device point to grid coordinates. Before the
// viewport has been measured the mapping is invalid and the origin is
// returned instead of failing.
func (t *Transform) ScreenToGrid(p geometry.Point2D) geometry.Point2D {
	if !t.Measured() {
		return geometry.Point2D{}
	}
	inv, ok := t.gridToScreen().Inverse()
	if !ok {
		return geometry.Point2D{}
	}
	return inv.Apply(p)
}

// ScreenRect projects a grid-space rectangle to a device-space rectangle.
func (t *Transform) ScreenRect(r geometry.Rect) geometry.Rect {
	a := t.GridToScreen(r.Min())
	b := t.GridToScreen(r.Max())
	return geometry.RectFromCorners(a, b)
}

// VisibleRect returns the grid-space rectangle covered by the viewport.
func (t *Transform) VisibleRect() geometry.Rect {
	a := t.ScreenToGrid(geometry.Point2D{})
	b := t.ScreenToGrid(geometry.Point2D{X: t.Width, Y: t.Height})
	return geometry.RectFromCorners(a, b)
}

// Zoom applies one multiplicative zoom step; positive ticks zoom in.
// The scale is clamped to [MinScale, MaxScale].
func (t *Transform) Zoom(ticks int) {
	s := t.Scale
	for ; ticks > 0; ticks-- {
		s *= ZoomStep
	}
	for ; ticks < 0; ticks++ {
		s /= ZoomStep
	}
	if s < MinScale {
		s = MinScale
	}
	if s > MaxScale {
		s = MaxScale
	}
	t.Scale = s
}

// Pan shifts the view offset by a raw pixel delta.
func (t *Transform) Pan(d geometry.Point2D) {
	t.Offset = t.Offset.Add(d)
}

// ToGridTolerance converts a device-pixel tolerance to grid units.
func (t *Transform) ToGridTolerance(px float64) float64 {
	if t.Scale == 0 {
		return px
	}
	return px / t.Scale
}
