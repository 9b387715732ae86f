package project

import (
	"image/color"
	"path/filepath"
	"testing"

	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

func sampleShapes() []shape.Shape {
	p := func(x, y float64) geometry.Point2D { return geometry.Point2D{X: x, Y: y} }
	line := &shape.Line{Attr: shape.DefaultAttrs(), P1: p(0, 0), P2: p(2, 1)}
	line.Attr.Arrow = shape.ArrowEnd
	line.Attr.Style = shape.StyleDashed

	rect := &shape.Rect{Attr: shape.DefaultAttrs(), C1: p(-1, -1), C2: p(1, 1), Rotation: 0.5}
	rect.Attr.FillColor = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	rect.Attr.Hatch = shape.HatchGrid

	arc := &shape.Arc{Attr: shape.DefaultAttrs(), Center: p(1, 1), Rim: p(3, 1), Start: 0.2, End: 4.0, Rotation: 0.1}

	dim := &shape.Measure{
		Attr: shape.DefaultAttrs(), P1: p(0, 0), P2: p(2, 0),
		Offset: p(0, 0.75), Label: p(1, 1), Text: "2.00",
	}

	txt := &shape.Text{Attr: shape.DefaultAttrs(), Anchor: p(3, -2), Content: "note", Rotation: 0.3}

	free := &shape.Freehand{Attr: shape.DefaultAttrs(), Points: []geometry.Point2D{p(0, 0), p(0.3, 0.1), p(0.7, 0.5)}}

	return []shape.Shape{line, rect, arc, dim, txt, free}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.tcad")

	f := New("test drawing")
	f.SetShapes(sampleShapes())
	if err := f.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := g.BuildShapes()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := sampleShapes()
	if len(got) != len(want) {
		t.Fatalf("decoded %d shapes, want %d", len(got), len(want))
	}

	l := got[0].(*shape.Line)
	if l.P2 != (geometry.Point2D{X: 2, Y: 1}) {
		t.Errorf("line endpoint = %v", l.P2)
	}
	if l.Attr.Arrow != shape.ArrowEnd || l.Attr.Style != shape.StyleDashed {
		t.Errorf("line style lost: %+v", l.Attr)
	}

	r := got[1].(*shape.Rect)
	if r.Rotation != 0.5 {
		t.Errorf("rect rotation = %v", r.Rotation)
	}
	if r.Attr.FillColor != (color.RGBA{R: 220, G: 50, B: 47, A: 255}) {
		t.Errorf("rect fill = %v", r.Attr.FillColor)
	}
	if r.Attr.Hatch != shape.HatchGrid {
		t.Errorf("rect hatch = %v", r.Attr.Hatch)
	}

	a := got[2].(*shape.Arc)
	if a.Start != 0.2 || a.End != 4.0 || a.Rotation != 0.1 {
		t.Errorf("arc angles = %v %v %v", a.Start, a.End, a.Rotation)
	}

	d := got[3].(*shape.Measure)
	if d.Offset != (geometry.Point2D{Y: 0.75}) || d.Text != "2.00" {
		t.Errorf("measure = %+v", d)
	}

	x := got[4].(*shape.Text)
	if x.Content != "note" || x.Rotation != 0.3 {
		t.Errorf("text = %+v", x)
	}

	fh := got[5].(*shape.Freehand)
	if len(fh.Points) != 3 {
		t.Errorf("freehand points = %d", len(fh.Points))
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	_, err := Decode(Record{Kind: "polygon", Stroke: "#000000"})
	if err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestDecodeRejectsShortRecords(t *testing.T) {
	r := Encode(&shape.Line{Attr: shape.DefaultAttrs()})
	r.Points = r.Points[:1]
	if _, err := Decode(r); err == nil {
		t.Error("truncated record accepted")
	}
}

func TestDecodeAssignsMissingID(t *testing.T) {
	r := Encode(&shape.Line{Attr: shape.DefaultAttrs(), P2: geometry.Point2D{X: 1}})
	r.ID = ""
	s, err := Decode(r)
	if err != nil {
		t.Fatal(err)
	}
	if s.Attrs().ID == "" {
		t.Error("decoded shape has empty id")
	}
}
