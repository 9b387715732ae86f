// Package hittest resolves device points to shapes and manipulation handles.
package hittest

import (
	"tikz-cad/internal/shape"
	"tikz-cad/internal/view"
	"tikz-cad/pkg/geometry"
)

const (
	// Tolerance is the body hit distance in device pixels.
	Tolerance = 8.0
	// TextTolerance widens the hitbox for text anchors; the label hitbox
	// is coarser than geometry.
	TextTolerance = 14.0
	// HandleTolerance is the handle pick distance in device pixels.
	HandleTolerance = 8.0
)

// ShapeAt returns the topmost shape whose geometry lies within tolerance of
// the device point, or nil. Later shapes occlude earlier ones, so iteration
// runs in reverse collection order. Guide shapes are never hit-testable.
func ShapeAt(shapes []shape.Shape, device geometry.Point2D, tr *view.Transform) shape.Shape {
	p := tr.ScreenToGrid(device)
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		if s.Attrs().Guide {
			continue
		}
		tol := tr.ToGridTolerance(Tolerance)
		if s.Kind() == shape.KindText {
			tol = tr.ToGridTolerance(TextTolerance)
		}
		if s.Hits(p, tol) {
			return s
		}
	}
	return nil
}

// HandleAt tests the device point against the handles of the single
// currently-selected shape. Handles are positioned in screen space and take
// priority over body hits; callers check handles before bodies.
func HandleAt(s shape.Shape, device geometry.Point2D, tr *view.Transform) (shape.HandleName, bool) {
	for _, h := range s.Handles() {
		pos := tr.GridToScreen(h.Pos)
		if pos.Distance(device) <= HandleTolerance {
			return h.Name, true
		}
	}
	return "", false
}

// ShapesInScreenRect returns the ids of every non-guide shape whose
// screen-space bounding box overlaps the device-space rectangle. Touching
// edges do not count as overlapping.
func ShapesInScreenRect(shapes []shape.Shape, rect geometry.Rect, tr *view.Transform) []string {
	var ids []string
	for _, s := range shapes {
		if s.Attrs().Guide {
			continue
		}
		if tr.ScreenRect(s.Bounds()).Intersects(rect) {
			ids = append(ids, s.Attrs().ID)
		}
	}
	return ids
}
