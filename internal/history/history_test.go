package history

import (
	"testing"

	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

func line(x float64) *shape.Line {
	return &shape.Line{Attr: shape.DefaultAttrs(), P1: geometry.Point2D{X: x}, P2: geometry.Point2D{X: x + 1}}
}

func TestUndoRedoInverse(t *testing.T) {
	h := New()
	before := []shape.Shape{line(0)}
	h.Push(before)
	after := []shape.Shape{line(0), line(5)}

	restored, ok := h.Undo(after)
	if !ok || len(restored) != 1 {
		t.Fatalf("undo should restore the pre-mutation collection, got %d shapes", len(restored))
	}
	if restored[0].(*shape.Line).P1.X != 0 {
		t.Error("restored geometry differs from the snapshot")
	}

	redone, ok := h.Redo(restored)
	if !ok || len(redone) != 2 {
		t.Fatalf("redo should restore the post-mutation collection, got %d shapes", len(redone))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New()
	h.Push([]shape.Shape{})
	cur := []shape.Shape{line(1)}
	restored, _ := h.Undo(cur)
	if !h.CanRedo() {
		t.Fatal("redo stack should be populated after undo")
	}
	h.Push(restored)
	if h.CanRedo() {
		t.Error("a new mutation after undo must clear the redo stack")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	h := New()
	l := line(2)
	h.Push([]shape.Shape{l})
	l.P1.X = 99 // mutate the live shape after the snapshot

	restored, _ := h.Undo([]shape.Shape{l})
	if restored[0].(*shape.Line).P1.X != 2 {
		t.Error("snapshot must be a deep copy unaffected by later mutation")
	}
}

func TestUndoEmpty(t *testing.T) {
	h := New()
	if _, ok := h.Undo(nil); ok {
		t.Error("undo on empty stack should report false")
	}
	if _, ok := h.Redo(nil); ok {
		t.Error("redo on empty stack should report false")
	}
}
