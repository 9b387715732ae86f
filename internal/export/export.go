// Package export defines the read-only document snapshot handed to
// exporter backends. Builders for concrete output formats implement
// Exporter against it; the editor never depends on any of them.
package export

import (
	"io"

	"tikz-cad/internal/shape"
)

// Snapshot is a frozen copy of the exportable document state. Guide
// shapes are construction aids and never appear in it.
type Snapshot struct {
	Shapes     []shape.Shape
	ShowGrid   bool
	ShowAxes   bool
	NodeExport bool
}

// Build deep-clones the non-guide shapes into a snapshot, so later edits
// cannot leak into a running export.
func Build(shapes []shape.Shape, showGrid, showAxes, nodeExport bool) *Snapshot {
	var kept []shape.Shape
	for _, s := range shapes {
		if s.Attrs().Guide {
			continue
		}
		kept = append(kept, s.Clone())
	}
	return &Snapshot{
		Shapes:     kept,
		ShowGrid:   showGrid,
		ShowAxes:   showAxes,
		NodeExport: nodeExport,
	}
}

// Exporter renders a snapshot to an output stream.
type Exporter interface {
	Export(w io.Writer, snap *Snapshot) error
}
