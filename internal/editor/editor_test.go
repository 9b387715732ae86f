package editor

import (
	"math"
	"testing"

	"tikz-cad/internal/ops"
	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

// device maps a grid point through the default 800x600 viewport at the
// default scale of 40 px/unit: grid (0,0) sits at device (400,300) with
// device Y pointing down.
func device(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: 400 + 40*x, Y: 300 - 40*y}
}

func newTestEditor() *Editor {
	e := New()
	e.View.SetViewport(800, 600)
	return e
}

func drawLine(e *Editor, from, to geometry.Point2D) {
	e.SetMode(ModeLine)
	e.PointerDown(device(from.X, from.Y), Modifiers{})
	e.PointerMove(device(to.X, to.Y))
	e.PointerUp(device(to.X, to.Y))
}

func TestDrawLineAndUndo(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 2, Y: 1})

	if len(e.Shapes()) != 1 {
		t.Fatalf("shapes = %d, want 1", len(e.Shapes()))
	}
	l, ok := e.Shapes()[0].(*shape.Line)
	if !ok {
		t.Fatalf("drawn shape is %T, want *shape.Line", e.Shapes()[0])
	}
	if l.P1.X != 0 || l.P1.Y != 0 || l.P2.X != 2 || l.P2.Y != 1 {
		t.Errorf("line endpoints = %v %v", l.P1, l.P2)
	}
	if !e.IsSelected(l.Attr.ID) {
		t.Error("drawn shape should be selected")
	}

	e.Undo()
	if len(e.Shapes()) != 0 {
		t.Fatalf("after undo shapes = %d, want 0", len(e.Shapes()))
	}
	if e.SelectionCount() != 0 {
		t.Error("selection not pruned after undo")
	}
	e.Redo()
	if len(e.Shapes()) != 1 {
		t.Error("redo did not restore the shape")
	}
}

func TestSnapToHalfUnit(t *testing.T) {
	e := newTestEditor()
	e.SetMode(ModeLine)
	// Device point 8 px (0.2 units) off the grid point (1,1).
	p := device(1, 1)
	p.X += 8
	e.PointerDown(p, Modifiers{})
	e.PointerUp(p)

	l := e.Shapes()[0].(*shape.Line)
	if l.P1.X != 1 || l.P1.Y != 1 {
		t.Errorf("snapped start = %v, want (1,1)", l.P1)
	}
}

func TestFreehandKeepsUnsnappedPoints(t *testing.T) {
	e := newTestEditor()
	e.SetMode(ModeFreehand)
	e.PointerDown(device(0, 0), Modifiers{})
	p := device(0.3, 0.1)
	e.PointerMove(p)
	e.PointerUp(p)

	f := e.Shapes()[0].(*shape.Freehand)
	if len(f.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(f.Points))
	}
	if math.Abs(f.Points[1].X-0.3) > 1e-9 {
		t.Errorf("intermediate point snapped: %v", f.Points[1])
	}
}

func TestBoxSelect(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 1})
	drawLine(e, geometry.Point2D{X: 2, Y: 2}, geometry.Point2D{X: 3, Y: 3})
	drawLine(e, geometry.Point2D{X: 8, Y: 0}, geometry.Point2D{X: 9, Y: 1})
	e.SetMode(ModePan)

	e.PointerDown(device(-0.5, 3.5), Modifiers{Box: true})
	e.PointerMove(device(3.5, -0.5))
	if _, active := e.BoxSelectRect(); !active {
		t.Fatal("box select not active during drag")
	}
	e.PointerUp(device(3.5, -0.5))

	if e.SelectionCount() != 2 {
		t.Fatalf("selected %d shapes, want 2", e.SelectionCount())
	}
	if e.IsSelected(e.Shapes()[2].Attrs().ID) {
		t.Error("shape outside the box was selected")
	}
}

func TestClickSelectAndToggle(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 2, Y: 0})
	drawLine(e, geometry.Point2D{X: 0, Y: 2}, geometry.Point2D{X: 2, Y: 2})
	e.SetMode(ModePan)
	a := e.Shapes()[0].Attrs().ID
	b := e.Shapes()[1].Attrs().ID

	e.PointerDown(device(1, 0), Modifiers{})
	e.PointerUp(device(1, 0))
	if !e.IsSelected(a) || e.IsSelected(b) {
		t.Fatal("plain click should exclusively select the hit shape")
	}

	e.PointerDown(device(1, 2), Modifiers{Toggle: true})
	e.PointerUp(device(1, 2))
	if !e.IsSelected(a) || !e.IsSelected(b) {
		t.Fatal("toggle click should add to the selection")
	}

	e.PointerDown(device(1, 2), Modifiers{Toggle: true})
	e.PointerUp(device(1, 2))
	if e.IsSelected(b) {
		t.Error("toggle click on a selected shape should deselect it")
	}
}

func TestClickEmptySpacePansAndClearsSelection(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
	e.SetMode(ModePan)

	start := geometry.Point2D{X: 700, Y: 100}
	e.PointerDown(start, Modifiers{})
	if e.SelectionCount() != 0 {
		t.Error("empty-space press should clear the selection")
	}
	e.PointerMove(geometry.Point2D{X: 710, Y: 105})
	e.PointerUp(geometry.Point2D{X: 710, Y: 105})
	if e.View.Offset.X != 10 || e.View.Offset.Y != 5 {
		t.Errorf("pan offset = %v", e.View.Offset)
	}
}

func TestDragMovesSelection(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 2, Y: 0})
	e.SetMode(ModePan)

	e.PointerDown(device(1, 0), Modifiers{})
	e.PointerMove(device(2, 1))
	e.PointerUp(device(2, 1))

	l := e.Shapes()[0].(*shape.Line)
	if l.P1.X != 1 || l.P1.Y != 1 || l.P2.X != 3 || l.P2.Y != 1 {
		t.Errorf("after drag line = %v %v", l.P1, l.P2)
	}

	e.Undo()
	l = e.Shapes()[0].(*shape.Line)
	if l.P1.X != 0 || l.P2.X != 2 {
		t.Errorf("undo did not restore pre-drag state: %v %v", l.P1, l.P2)
	}
}

func TestDragHandleResizesFromSnapshot(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 2, Y: 0})
	e.SetMode(ModePan)

	// Grab the end handle and move it through two intermediate points.
	// The result must depend only on the total delta.
	e.PointerDown(device(2, 0), Modifiers{})
	e.PointerMove(device(2.5, 0))
	e.PointerMove(device(3, 1))
	e.PointerUp(device(3, 1))

	l := e.Shapes()[0].(*shape.Line)
	if l.P1.X != 0 || l.P1.Y != 0 {
		t.Errorf("start moved with end handle: %v", l.P1)
	}
	if l.P2.X != 3 || l.P2.Y != 1 {
		t.Errorf("end = %v, want (3,1)", l.P2)
	}
}

func TestNudgeIsOneUndoStep(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})

	e.Nudge(ops.DirUp, false)
	e.Nudge(ops.DirUp, true)

	l := e.Shapes()[0].(*shape.Line)
	if l.P1.Y != 2.5 {
		t.Fatalf("after nudges Y = %v, want 2.5", l.P1.Y)
	}
	e.Undo()
	l = e.Shapes()[0].(*shape.Line)
	if l.P1.Y != 0.5 {
		t.Errorf("one undo should revert exactly one nudge, Y = %v", l.P1.Y)
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
	e.Undo()
	if !e.CanRedo() {
		t.Fatal("expected a redo step after undo")
	}
	drawLine(e, geometry.Point2D{X: 2, Y: 2}, geometry.Point2D{X: 3, Y: 3})
	if e.CanRedo() {
		t.Error("a new edit must clear the redo stack")
	}
}

func TestEscapeResetsSession(t *testing.T) {
	e := newTestEditor()
	e.SetMode(ModeRect)
	e.PointerDown(device(0, 0), Modifiers{})
	e.PointerMove(device(1, 1))
	e.Escape()

	if e.Current() != nil {
		t.Error("escape should discard the in-progress shape")
	}
	if len(e.Shapes()) != 0 {
		t.Error("discarded shape must not be committed")
	}
	if e.Mode() != ModePan {
		t.Error("escape should return to pan mode")
	}
	// The interrupted gesture must not leak into the next pointer-up.
	e.PointerUp(device(1, 1))
	if len(e.Shapes()) != 0 {
		t.Error("pointer-up after escape committed a shape")
	}
}

func TestMirrorAxisGesture(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 1, Y: 0}, geometry.Point2D{X: 2, Y: 0})
	e.SetMode(ModeMirrorAxis)
	// Vertical axis through x=0.
	e.PointerDown(device(0, -1), Modifiers{})
	e.PointerMove(device(0, 1))
	e.PointerUp(device(0, 1))

	if len(e.Shapes()) != 2 {
		t.Fatalf("shapes = %d, want original plus mirror copy", len(e.Shapes()))
	}
	m := e.Shapes()[1].(*shape.Line)
	if m.P1.X != -1 || m.P2.X != -2 {
		t.Errorf("mirrored endpoints = %v %v", m.P1, m.P2)
	}
	if !e.IsSelected(m.Attr.ID) || e.IsSelected(e.Shapes()[0].Attrs().ID) {
		t.Error("mirror should select only the copies")
	}
	if e.Mode() != ModePan {
		t.Error("mirror gesture should return to pan mode")
	}
}

func TestCircularPatternClick(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 1, Y: 0}, geometry.Point2D{X: 2, Y: 0})
	orig := e.Shapes()[0].Attrs().ID
	e.PatternCount = 4
	e.SetMode(ModeCircularPattern)
	e.PointerDown(device(0, 0), Modifiers{})
	e.PointerUp(device(0, 0))

	// Original plus 3 copies plus the guide circle.
	if len(e.Shapes()) != 5 {
		t.Fatalf("shapes = %d, want 5", len(e.Shapes()))
	}
	if !e.IsSelected(orig) {
		t.Error("pattern should keep the original selected")
	}
	if e.SelectionCount() != 4 {
		t.Errorf("selected %d, want original plus 3 copies", e.SelectionCount())
	}
	if e.Mode() != ModePan {
		t.Error("pattern click should return to pan mode")
	}
}

func TestCopyPasteDuplicate(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
	e.CopySelection()
	e.Paste()

	if len(e.Shapes()) != 2 {
		t.Fatalf("shapes = %d after paste, want 2", len(e.Shapes()))
	}
	p := e.Shapes()[1].(*shape.Line)
	if p.P1.X != 2 || p.P1.Y != -2 {
		t.Errorf("pasted copy at %v, want offset (+2,-2)", p.P1)
	}
	if p.Attr.ID == e.Shapes()[0].Attrs().ID {
		t.Error("pasted copy shares an id with the original")
	}

	e.DuplicateSelection()
	if len(e.Shapes()) != 3 {
		t.Fatalf("shapes = %d after duplicate, want 3", len(e.Shapes()))
	}
}

func TestDeleteSelection(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
	drawLine(e, geometry.Point2D{X: 3, Y: 3}, geometry.Point2D{X: 4, Y: 3})
	kept := e.Shapes()[0].Attrs().ID

	e.DeleteSelection() // second line is still selected from drawing
	if len(e.Shapes()) != 1 || e.Shapes()[0].Attrs().ID != kept {
		t.Fatal("delete removed the wrong shape")
	}
	e.Undo()
	if len(e.Shapes()) != 2 {
		t.Error("undo did not restore the deleted shape")
	}
}

func TestSelectAllSkipsGuides(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 1, Y: 0}, geometry.Point2D{X: 2, Y: 0})
	e.SetMode(ModeCircularPattern)
	e.PointerDown(device(0, 0), Modifiers{})
	e.PointerUp(device(0, 0))

	e.SelectAll()
	if e.SelectionCount() != 4 {
		t.Errorf("select-all picked %d shapes, want 4 non-guides", e.SelectionCount())
	}
}

func TestOffsetWithoutOutputLeavesHistoryAlone(t *testing.T) {
	e := newTestEditor()
	drawLine(e, geometry.Point2D{X: 0, Y: 0}, geometry.Point2D{X: 1, Y: 0})
	e.Undo()
	if !e.CanRedo() {
		t.Fatal("expected redo step")
	}
	e.OffsetSelection() // nothing selected, nothing produced
	if !e.CanRedo() {
		t.Error("no-op offset must not push history")
	}
}

func TestAddDiameterRequiresSingleCircle(t *testing.T) {
	e := newTestEditor()
	e.SetMode(ModeCircle)
	e.PointerDown(device(0, 0), Modifiers{})
	e.PointerMove(device(2, 0))
	e.PointerUp(device(2, 0))

	e.AddDiameterToSelection()
	if len(e.Shapes()) != 2 {
		t.Fatalf("shapes = %d, want circle plus measure", len(e.Shapes()))
	}
	m, ok := e.Shapes()[1].(*shape.MeasureRadius)
	if !ok {
		t.Fatalf("annotation is %T", e.Shapes()[1])
	}
	if m.Text != "4.00" {
		t.Errorf("diameter label = %q, want 4.00", m.Text)
	}
}
