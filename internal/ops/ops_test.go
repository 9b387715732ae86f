package ops

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(got, want, 1e-4) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDuplicateOffsetsEveryCoordinate(t *testing.T) {
	z := &shape.Bezier{Attr: shape.DefaultAttrs(), P1: pt(0, 0), P2: pt(3, 0)}
	z.DefaultControls()
	out := Duplicate([]shape.Shape{z})
	if len(out) != 1 {
		t.Fatalf("expected 1 copy, got %d", len(out))
	}
	c := out[0].(*shape.Bezier)
	if c.Attr.ID == z.Attr.ID {
		t.Error("copy must carry a fresh id")
	}
	approx(t, "P1.X", c.P1.X, 2)
	approx(t, "P1.Y", c.P1.Y, -2)
	approx(t, "C1.X", c.C1.X, 3)
	approx(t, "C2.X", c.C2.X, 4)
	// Original untouched.
	approx(t, "orig P1.X", z.P1.X, 0)
}

func TestLinearPatternCount(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: pt(0, 0), P2: pt(1, 0)}
	out := LinearPattern([]shape.Shape{l}, DirRight, 5, 2)
	if len(out) != 4 {
		t.Fatalf("count=5 should produce 4 copies, got %d", len(out))
	}
	for i, s := range out {
		want := 2 * float64(i+1)
		approx(t, "copy P1.X", s.(*shape.Line).P1.X, want)
	}
}

func TestLinearPatternRejectsLowCount(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs()}
	if out := LinearPattern([]shape.Shape{l}, DirUp, 1, 3); out != nil {
		t.Error("count below 2 should be a no-op")
	}
}

func TestCircularPatternCountAndGuide(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: pt(1, 0), P2: pt(2, 0)}
	copies, guide := CircularPattern([]shape.Shape{l}, pt(0, 0), 6)
	if len(copies) != 5 {
		t.Fatalf("count=6 should produce 5 copies, got %d", len(copies))
	}
	if guide == nil || !guide.Attrs().Guide {
		t.Fatal("circular pattern must produce a construction-only guide circle")
	}
	if guide.Attrs().Style != shape.StyleDashed {
		t.Error("guide circle should be dashed")
	}

	// First copy is rotated by 60 degrees.
	c := copies[0].(*shape.Line)
	approx(t, "copy P1.X", c.P1.X, math.Cos(math.Pi/3))
	approx(t, "copy P1.Y", c.P1.Y, math.Sin(math.Pi/3))
}

func TestCircularPatternBoxPolicy(t *testing.T) {
	r := &shape.Rect{Attr: shape.DefaultAttrs(), C1: pt(-1, -1), C2: pt(1, 1)}
	copies, _ := CircularPattern([]shape.Shape{r}, pt(3, 0), 4)
	if len(copies) != 3 {
		t.Fatalf("count=4 should produce 3 copies, got %d", len(copies))
	}
	c := copies[0].(*shape.Rect)
	b := c.Bounds()
	approx(t, "width", b.Width, 2)
	approx(t, "height", b.Height, 2)
	approx(t, "rotation", c.Rotation, math.Pi/2)
	approx(t, "center distance from pivot", b.Center().Distance(pt(3, 0)), 3)
}

func TestCircularPatternGuideRadius(t *testing.T) {
	r := &shape.Rect{Attr: shape.DefaultAttrs(), C1: pt(1, -1), C2: pt(3, 1)} // center (2,0)
	_, guide := CircularPattern([]shape.Shape{r}, pt(5, 0), 3)
	g := guide.(*shape.Circle)
	approx(t, "guide radius", g.Radius(), 3)
	approx(t, "guide center.X", g.Center.X, 5)
}

func TestMirrorProducesCopiesAndInvolutes(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: pt(1, 1), P2: pt(2, 3)}
	a, b := pt(0, 0), pt(0, 1)

	once := Mirror([]shape.Shape{l}, a, b)
	if len(once) != 1 {
		t.Fatalf("expected 1 mirrored copy, got %d", len(once))
	}
	m := once[0].(*shape.Line)
	approx(t, "mirrored P1.X", m.P1.X, -1)
	approx(t, "original P1.X untouched", l.P1.X, 1)

	twice := Mirror(once, a, b)
	back := twice[0].(*shape.Line)
	approx(t, "double mirror P1.X", back.P1.X, 1)
	approx(t, "double mirror P2.Y", back.P2.Y, 3)
}

func TestMirrorDegenerateLine(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: pt(1, 2), P2: pt(3, 4)}
	out := Mirror([]shape.Shape{l}, pt(5, 5), pt(5, 5))
	m := out[0].(*shape.Line)
	approx(t, "P1.X", m.P1.X, 1)
	approx(t, "P2.Y", m.P2.Y, 4)
	if math.IsNaN(m.P1.X) || math.IsNaN(m.P1.Y) {
		t.Fatal("degenerate mirror line produced NaN")
	}
}

func TestOffsetSkipRule(t *testing.T) {
	c := &shape.Circle{Attr: shape.DefaultAttrs(), Center: pt(0, 0), Rim: pt(1, 0)}

	if out := Offset([]shape.Shape{c}, 1.0); len(out) != 0 {
		t.Error("offsetting radius 1 by 1 should be skipped")
	}

	out := Offset([]shape.Shape{c}, 0.5)
	if len(out) != 1 {
		t.Fatalf("offsetting radius 1 by 0.5 should produce one shape, got %d", len(out))
	}
	approx(t, "radius", out[0].(*shape.Circle).Radius(), 0.5)
}

func TestOffsetRect(t *testing.T) {
	r := &shape.Rect{Attr: shape.DefaultAttrs(), C1: pt(4, 3), C2: pt(0, 0)} // reversed corners
	out := Offset([]shape.Shape{r}, 1)
	if len(out) != 1 {
		t.Fatalf("expected 1 inset rect, got %d", len(out))
	}
	b := out[0].(*shape.Rect).Bounds()
	approx(t, "x", b.X, 1)
	approx(t, "y", b.Y, 1)
	approx(t, "width", b.Width, 2)
	approx(t, "height", b.Height, 1)

	if out := Offset([]shape.Shape{r}, 1.5); len(out) != 0 {
		t.Error("inset collapsing height should be skipped")
	}
}

func TestOffsetSkipsUnsupportedKinds(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: pt(0, 0), P2: pt(1, 0)}
	if out := Offset([]shape.Shape{l}, 0.2); len(out) != 0 {
		t.Error("line offset is unsupported and must be skipped silently")
	}
}

func TestAddDiameter(t *testing.T) {
	c := &shape.Circle{Attr: shape.DefaultAttrs(), Center: pt(2, 1), Rim: pt(4, 1)}
	m := AddDiameter(c)
	approx(t, "P1.X", m.P1.X, 0)
	approx(t, "P2.X", m.P2.X, 4)
	approx(t, "P1.Y", m.P1.Y, 1)
	if m.Text != "4.00" {
		t.Errorf("diameter label = %q, want 4.00", m.Text)
	}
}
