package mainwindow

import (
	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

// Stock shape groups for the Insert menu. Ids are reassigned on insert,
// so templates can be built from the same literals every time.

func templateUnitSquare() []shape.Shape {
	return []shape.Shape{
		&shape.Rect{
			Attr: shape.DefaultAttrs(),
			C1:   geometry.Point2D{X: -0.5, Y: -0.5},
			C2:   geometry.Point2D{X: 0.5, Y: 0.5},
		},
	}
}

func templateDimensionedBox() []shape.Shape {
	rect := &shape.Rect{
		Attr: shape.DefaultAttrs(),
		C1:   geometry.Point2D{X: -2, Y: -1},
		C2:   geometry.Point2D{X: 2, Y: 1},
	}
	width := &shape.Measure{
		Attr:   shape.DefaultAttrs(),
		P1:     geometry.Point2D{X: -2, Y: -1},
		P2:     geometry.Point2D{X: 2, Y: -1},
		Offset: geometry.Point2D{Y: -0.75},
		Label:  geometry.Point2D{Y: -2.1},
		Text:   "4.00",
	}
	height := &shape.Measure{
		Attr:   shape.DefaultAttrs(),
		P1:     geometry.Point2D{X: 2, Y: -1},
		P2:     geometry.Point2D{X: 2, Y: 1},
		Offset: geometry.Point2D{X: 0.75},
		Label:  geometry.Point2D{X: 3.1},
		Text:   "2.00",
	}
	return []shape.Shape{rect, width, height}
}

func templateCross() []shape.Shape {
	h := &shape.Line{
		Attr: shape.DefaultAttrs(),
		P1:   geometry.Point2D{X: -1},
		P2:   geometry.Point2D{X: 1},
	}
	v := &shape.Line{
		Attr: shape.DefaultAttrs(),
		P1:   geometry.Point2D{Y: -1},
		P2:   geometry.Point2D{Y: 1},
	}
	h.Attr.Arrow = shape.ArrowBoth
	v.Attr.Arrow = shape.ArrowBoth
	return []shape.Shape{h, v}
}
