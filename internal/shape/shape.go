// Package shape defines the drawable entities of the document as a closed
// set of concrete types behind a shared interface. Every algorithm that has
// per-kind semantics (bounds, rotation, reflection, hit-testing, handle
// editing) lives on the variant instead of branching on a type tag.
package shape

import (
	"image/color"

	"github.com/google/uuid"

	"tikz-cad/pkg/geometry"
)

// Kind identifies a shape variant.
type Kind int

const (
	KindFreehand Kind = iota
	KindLine
	KindBezier
	KindRect
	KindRoundRect
	KindCircle
	KindEllipse
	KindArc
	KindMeasure
	KindMeasureRadius
	KindMarkAngle
	KindBrace
	KindText
)

var kindNames = map[Kind]string{
	KindFreehand:      "freehand",
	KindLine:          "line",
	KindBezier:        "bezier",
	KindRect:          "rect",
	KindRoundRect:     "round_rect",
	KindCircle:        "circle",
	KindEllipse:       "ellipse",
	KindArc:           "arc",
	KindMeasure:       "measure",
	KindMeasureRadius: "measure_radius",
	KindMarkAngle:     "mark_angle",
	KindBrace:         "brace",
	KindText:          "text",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// LineStyle selects the stroke dash pattern.
type LineStyle int

const (
	StyleSolid LineStyle = iota
	StyleDashed
	StyleDotted
)

// ArrowMode selects arrowhead placement on open shapes.
type ArrowMode int

const (
	ArrowNone ArrowMode = iota
	ArrowStart
	ArrowEnd
	ArrowBoth
)

// HatchStyle selects the fill hatch pattern for closed shapes.
type HatchStyle int

const (
	HatchNone HatchStyle = iota
	HatchLines
	HatchGrid
	HatchDots
)

// Attrs holds the identity and style attributes shared by every shape kind.
type Attrs struct {
	ID          string
	Style       LineStyle
	Arrow       ArrowMode
	LineWidth   float64 // multiplier on the base stroke width
	StrokeColor color.RGBA
	FillColor   color.RGBA // zero alpha means unfilled
	Hatch       HatchStyle
	Guide       bool // construction-only, rendered but never exported or hit
}

// Filled reports whether the shape interior participates in hit-testing
// and gets painted.
func (a *Attrs) Filled() bool {
	return a.FillColor.A > 0
}

// NewID returns a fresh shape identifier, unique within a session.
func NewID() string {
	return uuid.NewString()
}

// DefaultAttrs returns style attributes for a newly drawn shape.
func DefaultAttrs() Attrs {
	return Attrs{
		ID:          NewID(),
		LineWidth:   1,
		StrokeColor: color.RGBA{A: 255},
	}
}

// HandleName names a direct-manipulation handle. Point-based shapes expose
// start/end; box-based shapes expose the eight compass handles of their
// pre-rotation bounding box.
type HandleName string

const (
	HandleStart HandleName = "start"
	HandleEnd   HandleName = "end"
	HandleN     HandleName = "n"
	HandleS     HandleName = "s"
	HandleE     HandleName = "e"
	HandleW     HandleName = "w"
	HandleNW    HandleName = "nw"
	HandleNE    HandleName = "ne"
	HandleSW    HandleName = "sw"
	HandleSE    HandleName = "se"
	HandleMove  HandleName = "move"
)

// Handle is a named grid-space control point of a selected shape.
type Handle struct {
	Name HandleName
	Pos  geometry.Point2D
}

// Shape is the operation set every variant supports. Mutating methods are
// applied to clones during drags so repeated pointer-move events stay
// idempotent with respect to total drag distance.
type Shape interface {
	Attrs() *Attrs
	Kind() Kind

	// Bounds returns the grid-space axis-aligned bounding box, computed
	// pre-rotation for box-based kinds.
	Bounds() geometry.Rect

	Translate(d geometry.Point2D)
	RotateAbout(pivot geometry.Point2D, radians float64)
	ReflectAcross(a, b geometry.Point2D)

	// Hits reports whether a grid point is on the shape within a grid-space
	// tolerance.
	Hits(p geometry.Point2D, tol float64) bool

	Handles() []Handle
	DragHandle(name HandleName, delta geometry.Point2D)

	Clone() Shape
}

// CloneAll deep-copies a shape collection. History snapshots and drag
// sessions both rely on this.
func CloneAll(shapes []Shape) []Shape {
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
