// Package ops implements the batch transform operations applied to a
// selection: duplicate, linear and circular patterns, mirror, inward
// offset, and the diameter annotation. Every operation is pure and
// generative: inputs are never mutated and every produced shape carries a
// fresh id.
package ops

import (
	"fmt"
	"image/color"
	"math"

	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

// DuplicateOffset is the fixed positional offset applied by duplicate and
// paste, in grid units.
var DuplicateOffset = geometry.Point2D{X: 2, Y: -2}

// Direction is an axis-aligned pattern direction.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirUp
	DirDown
)

// Vector returns the unit vector for the direction.
func (d Direction) Vector() geometry.Point2D {
	switch d {
	case DirLeft:
		return geometry.Point2D{X: -1}
	case DirUp:
		return geometry.Point2D{Y: 1}
	case DirDown:
		return geometry.Point2D{Y: -1}
	default:
		return geometry.Point2D{X: 1}
	}
}

func freshCopy(s shape.Shape) shape.Shape {
	c := s.Clone()
	c.Attrs().ID = shape.NewID()
	return c
}

// Duplicate copies every shape with the fixed duplicate offset applied to
// every coordinate field.
func Duplicate(src []shape.Shape) []shape.Shape {
	out := make([]shape.Shape, 0, len(src))
	for _, s := range src {
		c := freshCopy(s)
		c.Translate(DuplicateOffset)
		out = append(out, c)
	}
	return out
}

// LinearPattern generates count-1 copies of each shape stepped by
// spacing*direction per copy index. A count below 2 yields nothing.
func LinearPattern(src []shape.Shape, dir Direction, count int, spacing float64) []shape.Shape {
	if count < 2 {
		return nil
	}
	step := dir.Vector().Scale(spacing)
	var out []shape.Shape
	for _, s := range src {
		for i := 1; i < count; i++ {
			c := freshCopy(s)
			c.Translate(step.Scale(float64(i)))
			out = append(out, c)
		}
	}
	return out
}

// SelectionBounds returns the combined axis-aligned bounding box of a
// shape set.
func SelectionBounds(src []shape.Shape) geometry.Rect {
	if len(src) == 0 {
		return geometry.Rect{}
	}
	b := src[0].Bounds()
	for _, s := range src[1:] {
		b = b.Union(s.Bounds())
	}
	return b
}

// CircularPattern generates count-1 rotated copies of each shape around
// the pivot at angle steps of 2pi/count, plus a dashed construction-only
// guide circle centered at the pivot through the selection's bounds
// center. Rotation policy is per-variant: point-based shapes rotate every
// defining coordinate, box-based shapes move only their center and
// accumulate the angle. A count below 2 yields nothing.
func CircularPattern(src []shape.Shape, pivot geometry.Point2D, count int) (copies []shape.Shape, guide shape.Shape) {
	if count < 2 || len(src) == 0 {
		return nil, nil
	}

	center := SelectionBounds(src).Center()
	g := &shape.Circle{
		Attr:   shape.DefaultAttrs(),
		Center: pivot,
		Rim:    geometry.Point2D{X: pivot.X + center.Distance(pivot), Y: pivot.Y},
	}
	g.Attr.Style = shape.StyleDashed
	g.Attr.StrokeColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	g.Attr.Guide = true

	step := 2 * math.Pi / float64(count)
	for _, s := range src {
		for i := 1; i < count; i++ {
			c := freshCopy(s)
			c.RotateAbout(pivot, step*float64(i))
			copies = append(copies, c)
		}
	}
	return copies, g
}

// Mirror reflects every shape across the infinite line through a and b,
// producing copies; the originals do not move. A degenerate zero-length
// line leaves coordinates unchanged.
func Mirror(src []shape.Shape, a, b geometry.Point2D) []shape.Shape {
	out := make([]shape.Shape, 0, len(src))
	for _, s := range src {
		c := freshCopy(s)
		c.ReflectAcross(a, b)
		out = append(out, c)
	}
	return out
}

// Offset produces inward-inset copies at distance d. Only rectangles,
// rounded rectangles, circles and ellipses support insetting; unsupported
// kinds are silently skipped, as is any shape whose inset dimensions
// would become non-positive. No negative-size shape is ever produced.
func Offset(src []shape.Shape, d float64) []shape.Shape {
	var out []shape.Shape
	for _, s := range src {
		switch v := s.(type) {
		case *shape.Rect:
			b := v.Bounds().Inset(d)
			if b.Width <= 0 || b.Height <= 0 {
				continue
			}
			c := freshCopy(v).(*shape.Rect)
			c.C1 = b.Min()
			c.C2 = b.Max()
			out = append(out, c)
		case *shape.RoundRect:
			b := v.Bounds().Inset(d)
			if b.Width <= 0 || b.Height <= 0 {
				continue
			}
			c := freshCopy(v).(*shape.RoundRect)
			c.C1 = b.Min()
			c.C2 = b.Max()
			out = append(out, c)
		case *shape.Circle:
			r := v.Radius() - d
			if r <= 0 {
				continue
			}
			c := freshCopy(v).(*shape.Circle)
			c.Rim = geometry.Point2D{X: c.Center.X + r, Y: c.Center.Y}
			out = append(out, c)
		case *shape.Ellipse:
			rx, ry := v.Radii()
			rx -= d
			ry -= d
			if rx <= 0 || ry <= 0 {
				continue
			}
			c := freshCopy(v).(*shape.Ellipse)
			c.Rim = geometry.Point2D{X: c.Center.X + rx, Y: c.Center.Y + ry}
			out = append(out, c)
		}
	}
	return out
}

// AddDiameter builds a diameter dimension annotation for a circle,
// spanning the horizontal diameter and pre-filled with the formatted
// diameter value.
func AddDiameter(c *shape.Circle) *shape.MeasureRadius {
	r := c.Radius()
	m := &shape.MeasureRadius{
		Attr:  shape.DefaultAttrs(),
		P1:    geometry.Point2D{X: c.Center.X - r, Y: c.Center.Y},
		P2:    geometry.Point2D{X: c.Center.X + r, Y: c.Center.Y},
		Label: geometry.Point2D{X: c.Center.X, Y: c.Center.Y + 0.5},
		Text:  fmt.Sprintf("%.2f", 2*r),
	}
	return m
}
