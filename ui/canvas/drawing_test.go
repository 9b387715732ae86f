package canvas

import (
	"image/color"
	"testing"

	"tikz-cad/internal/shape"
	"tikz-cad/internal/view"
	"tikz-cad/pkg/geometry"
)

func testView() *view.Transform {
	v := view.New()
	v.SetViewport(200, 200)
	v.Scale = 20
	return v
}

func renderOne(t *testing.T, s shape.Shape) *Scene {
	t.Helper()
	return &Scene{Shapes: []shape.Shape{s}, View: testView()}
}

func TestRenderSceneBackground(t *testing.T) {
	img := RenderScene(200, 200, &Scene{View: testView()})
	if img == nil {
		t.Fatal("nil image")
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel = %v, want white", got)
	}
}

func TestRenderSceneStrokesLine(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: geometry.Point2D{X: -2}, P2: geometry.Point2D{X: 2}}
	img := RenderScene(200, 200, renderOne(t, l))

	// The segment crosses the viewport center horizontally.
	got := img.RGBAAt(100, 100)
	if got.R > 200 || got.G > 200 || got.B > 200 {
		t.Errorf("center pixel = %v, want dark stroke", got)
	}
}

func TestRenderSceneFillsCircle(t *testing.T) {
	c := &shape.Circle{Attr: shape.DefaultAttrs(), Rim: geometry.Point2D{X: 2}}
	c.Attr.FillColor = color.RGBA{R: 255, A: 255}
	img := RenderScene(200, 200, renderOne(t, c))

	got := img.RGBAAt(100, 100)
	if got.R < 200 || got.G > 80 {
		t.Errorf("interior pixel = %v, want red fill", got)
	}
}

func TestRenderSceneGridAndAxes(t *testing.T) {
	sc := &Scene{View: testView(), ShowGrid: true, ShowAxes: true}
	img := RenderScene(200, 200, sc)

	// The vertical axis runs through x=100.
	if got := img.RGBAAt(100, 10); got == (color.RGBA{255, 255, 255, 255}) {
		t.Error("axis pixel still background white")
	}
	// A minor grid line sits half a unit (10 px) off the axis.
	if got := img.RGBAAt(110, 10); got == (color.RGBA{255, 255, 255, 255}) {
		t.Error("grid pixel still background white")
	}
}

func TestRenderSceneSelectionHandles(t *testing.T) {
	l := &shape.Line{Attr: shape.DefaultAttrs(), P1: geometry.Point2D{X: -2}, P2: geometry.Point2D{X: 2}}
	sc := renderOne(t, l)
	sc.Selected = func(string) bool { return true }
	img := RenderScene(200, 200, sc)

	// An accent-colored handle sits on the start point at (60,100).
	found := false
	for dx := -4; dx <= 4 && !found; dx++ {
		for dy := -4; dy <= 4 && !found; dy++ {
			p := img.RGBAAt(60+dx, 100+dy)
			if p.B > 200 && p.R < 120 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no accent-colored handle near the start point")
	}
}

func TestRenderSceneRubberBand(t *testing.T) {
	sc := &Scene{
		View:  testView(),
		Box:   geometry.NewRect(20, 20, 60, 40),
		BoxOn: true,
	}
	img := RenderScene(200, 200, sc)

	found := false
	for x := 20; x <= 80 && !found; x++ {
		p := img.RGBAAt(x, 20)
		if p.B > 200 && p.R < 120 {
			found = true
		}
	}
	if !found {
		t.Error("rubber band edge not drawn")
	}
}

func TestRenderSceneDrawsEveryKind(t *testing.T) {
	attr := func() shape.Attrs { return shape.DefaultAttrs() }
	p := func(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }
	shapes := []shape.Shape{
		&shape.Freehand{Attr: attr(), Points: []geometry.Point2D{p(0, 0), p(1, 1), p(2, 0)}},
		&shape.Line{Attr: attr(), P1: p(-1, -1), P2: p(1, 1)},
		&shape.Bezier{Attr: attr(), P1: p(-2, 0), P2: p(2, 0), C1: p(-1, 2), C2: p(1, -2)},
		&shape.Rect{Attr: attr(), C1: p(-1, -1), C2: p(1, 1), Rotation: 0.3},
		&shape.RoundRect{Attr: attr(), C1: p(-2, -1), C2: p(0, 1), CornerRadius: 0.25},
		&shape.Circle{Attr: attr(), Rim: p(1.5, 0)},
		&shape.Ellipse{Attr: attr(), Rim: p(2, 1), Rotation: 0.4},
		&shape.Arc{Attr: attr(), Rim: p(2, 0), End: 4.0},
		&shape.Measure{Attr: attr(), P1: p(-1, 0), P2: p(1, 0), Offset: p(0, 0.75), Label: p(0, 1), Text: "2.00"},
		&shape.MeasureRadius{Attr: attr(), P1: p(-1, 0), P2: p(1, 0), Label: p(0, 0), Text: "r"},
		&shape.MarkAngle{Attr: attr(), P1: p(0, 0), P2: p(2, 1), Label: p(1, 0.3), Text: "a"},
		&shape.Brace{Attr: attr(), P1: p(-1, 2), P2: p(1, 2), Label: p(0, 2.5), Text: "b"},
		&shape.Text{Attr: attr(), Anchor: p(0, -2), Content: "hello", Rotation: 0.2},
	}
	shapes[3].Attrs().Hatch = shape.HatchLines
	shapes[5].Attrs().Hatch = shape.HatchDots
	shapes[1].Attrs().Arrow = shape.ArrowBoth
	shapes[1].Attrs().Style = shape.StyleDashed

	img := RenderScene(200, 200, &Scene{Shapes: shapes, View: testView(), ShowGrid: true, ShowAxes: true})
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
}
