package shape

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"tikz-cad/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(got, want, 1e-4) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestLineReflectInvolution(t *testing.T) {
	l := &Line{Attr: DefaultAttrs(), P1: pt(1, 2), P2: pt(4, -1)}
	a, b := pt(-2, 0.5), pt(3, 3)
	l.ReflectAcross(a, b)
	l.ReflectAcross(a, b)
	approx(t, "P1.X", l.P1.X, 1)
	approx(t, "P1.Y", l.P1.Y, 2)
	approx(t, "P2.X", l.P2.X, 4)
	approx(t, "P2.Y", l.P2.Y, -1)
}

func TestRectReflectRotationAndInvolution(t *testing.T) {
	r := &Rect{Attr: DefaultAttrs(), C1: pt(0, 0), C2: pt(2, 1), Rotation: 0.3}
	a, b := pt(0, 0), pt(1, 0) // x axis, angle 0
	r.ReflectAcross(a, b)

	center := r.Bounds().Center()
	approx(t, "center.X", center.X, 1)
	approx(t, "center.Y", center.Y, -0.5)
	approx(t, "rotation", r.Rotation, -0.3)
	// Local size preserved.
	approx(t, "width", r.Bounds().Width, 2)
	approx(t, "height", r.Bounds().Height, 1)

	r.ReflectAcross(a, b)
	center = r.Bounds().Center()
	approx(t, "center.X back", center.X, 1)
	approx(t, "center.Y back", center.Y, 0.5)
	approx(t, "rotation back", r.Rotation, 0.3)
}

func TestArcReflectSweepSwap(t *testing.T) {
	arc := &Arc{Attr: DefaultAttrs(), Center: pt(0, 0), Rim: pt(2, 0), Start: 0.5, End: 1.5}
	a, b := pt(0, 0), pt(1, 0)
	arc.ReflectAcross(a, b)
	approx(t, "start", arc.Start, -1.5)
	approx(t, "end", arc.End, -0.5)

	arc.ReflectAcross(a, b)
	approx(t, "start back", arc.Start, 0.5)
	approx(t, "end back", arc.End, 1.5)
}

func TestCircleRotateAboutKeepsRadius(t *testing.T) {
	c := &Circle{Attr: DefaultAttrs(), Center: pt(0, 0), Rim: pt(1, 0)}
	pivot := pt(3, 0)
	c.RotateAbout(pivot, math.Pi/2)

	approx(t, "radius", c.Radius(), 1)
	approx(t, "center distance from pivot", c.Center.Distance(pivot), 3)
	approx(t, "rotation", c.Rotation, math.Pi/2)
}

func TestRectRotateAboutArbitraryPivot(t *testing.T) {
	r := &Rect{Attr: DefaultAttrs(), C1: pt(-1, -1), C2: pt(1, 1)}
	r.RotateAbout(pt(3, 0), math.Pi/2)

	b := r.Bounds()
	approx(t, "width", b.Width, 2)
	approx(t, "height", b.Height, 2)
	approx(t, "rotation", r.Rotation, math.Pi/2)
	// Center (0,0) about (3,0) by +90deg lands at (3,-3).
	approx(t, "center.X", b.Center().X, 3)
	approx(t, "center.Y", b.Center().Y, -3)
}

func TestMeasureRotatesOffsetAsVector(t *testing.T) {
	m := &Measure{Attr: DefaultAttrs(), P1: pt(0, 0), P2: pt(2, 0), Offset: pt(0, 1)}
	m.RotateAbout(pt(0, 0), math.Pi/2)
	approx(t, "offset.X", m.Offset.X, -1)
	approx(t, "offset.Y", m.Offset.Y, 0)
	approx(t, "P2.X", m.P2.X, 0)
	approx(t, "P2.Y", m.P2.Y, 2)
}

func TestCircleHitToleranceBoundary(t *testing.T) {
	c := &Circle{Attr: DefaultAttrs(), Center: pt(0, 0), Rim: pt(5, 0)}
	tol := 1.0
	if !c.Hits(pt(6, 0), tol) {
		t.Error("point exactly at tolerance from rim should hit")
	}
	if c.Hits(pt(6.001, 0), tol) {
		t.Error("point past tolerance from rim should not hit")
	}
	if c.Hits(pt(0, 0), tol) {
		t.Error("unfilled circle center should not hit")
	}

	c.Attr.FillColor = color.RGBA{R: 200, A: 255}
	if !c.Hits(pt(0, 0), tol) {
		t.Error("filled circle interior should hit")
	}
}

func TestRectHitFilledVsOutline(t *testing.T) {
	r := &Rect{Attr: DefaultAttrs(), C1: pt(0, 0), C2: pt(4, 4)}
	if r.Hits(pt(2, 2), 0.25) {
		t.Error("unfilled rect interior should not hit")
	}
	if !r.Hits(pt(2, 0.1), 0.25) {
		t.Error("point near edge should hit")
	}
	r.Attr.FillColor = color.RGBA{B: 255, A: 255}
	if !r.Hits(pt(2, 2), 0.25) {
		t.Error("filled rect interior should hit")
	}
}

func TestBezierControlPolygonHit(t *testing.T) {
	z := &Bezier{Attr: DefaultAttrs(), P1: pt(0, 0), P2: pt(6, 0)}
	z.DefaultControls()
	approx(t, "C1.X", z.C1.X, 2)
	approx(t, "C2.X", z.C2.X, 4)
	if !z.Hits(pt(3, 0.1), 0.25) {
		t.Error("point near control polygon should hit")
	}
	if z.Hits(pt(3, 2), 0.25) {
		t.Error("point far from control polygon should not hit")
	}
}

func TestDragBoxCornersResolvesMinMax(t *testing.T) {
	// Corners stored in "reversed" order: C1 holds the max corner.
	r := &Rect{Attr: DefaultAttrs(), C1: pt(4, 3), C2: pt(1, 1)}
	r.DragHandle(HandleW, pt(-1, 0))
	b := r.Bounds()
	approx(t, "minX", b.X, 0)
	approx(t, "width", b.Width, 4)
	// C2 held the smaller X and must be the field that moved.
	approx(t, "C2.X", r.C2.X, 0)
	approx(t, "C1.X", r.C1.X, 4)

	r.DragHandle(HandleN, pt(0, 2))
	approx(t, "maxY", r.Bounds().Y+r.Bounds().Height, 5)
	approx(t, "C1.Y", r.C1.Y, 5)
}

func TestLineHandles(t *testing.T) {
	l := &Line{Attr: DefaultAttrs(), P1: pt(0, 0), P2: pt(3, 4)}
	h := l.Handles()
	if len(h) != 2 || h[0].Name != HandleStart || h[1].Name != HandleEnd {
		t.Fatalf("unexpected handles %v", h)
	}
	l.DragHandle(HandleEnd, pt(1, -1))
	if l.P1 != pt(0, 0) || l.P2 != pt(4, 3) {
		t.Errorf("end drag moved wrong endpoint: %v %v", l.P1, l.P2)
	}
}

func TestFreehandCloneIsDeep(t *testing.T) {
	f := &Freehand{Attr: DefaultAttrs(), Points: []geometry.Point2D{pt(0, 0), pt(1, 1)}}
	c := f.Clone().(*Freehand)
	c.Points[0] = pt(9, 9)
	if f.Points[0] != pt(0, 0) {
		t.Error("clone shares point storage with original")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
