package export

import (
	"testing"

	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

func TestBuildSkipsGuidesAndClones(t *testing.T) {
	line := &shape.Line{Attr: shape.DefaultAttrs(), P1: geometry.Point2D{}, P2: geometry.Point2D{X: 1}}
	guide := &shape.Circle{Attr: shape.DefaultAttrs(), Rim: geometry.Point2D{X: 2}}
	guide.Attr.Guide = true

	snap := Build([]shape.Shape{line, guide}, true, false, false)
	if len(snap.Shapes) != 1 {
		t.Fatalf("snapshot shapes = %d, want 1", len(snap.Shapes))
	}

	// Mutating the document after the build must not touch the snapshot.
	line.P2.X = 99
	got := snap.Shapes[0].(*shape.Line)
	if got.P2.X != 1 {
		t.Errorf("snapshot shares state with the document: P2.X = %v", got.P2.X)
	}
}
