package editor

import (
	"tikz-cad/internal/history"
	"tikz-cad/internal/ops"
	"tikz-cad/internal/shape"
	"tikz-cad/pkg/geometry"
)

// Undo restores the previous document state. Selection entries for shapes
// that no longer exist are pruned.
func (e *Editor) Undo() {
	prev, ok := e.hist.Undo(e.shapes)
	if !ok {
		return
	}
	e.shapes = prev
	e.pruneSelection()
	e.emit(EventShapesChanged)
}

// Redo reapplies the last undone state.
func (e *Editor) Redo() {
	next, ok := e.hist.Redo(e.shapes)
	if !ok {
		return
	}
	e.shapes = next
	e.pruneSelection()
	e.emit(EventShapesChanged)
}

// CanUndo reports whether an undo step exists.
func (e *Editor) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether a redo step exists.
func (e *Editor) CanRedo() bool { return e.hist.CanRedo() }

// SelectAll selects every non-guide shape.
func (e *Editor) SelectAll() {
	var ids []string
	for _, s := range e.shapes {
		if !s.Attrs().Guide {
			ids = append(ids, s.Attrs().ID)
		}
	}
	e.setSelection(ids)
}

// DeleteSelection removes the selected shapes from the document.
func (e *Editor) DeleteSelection() {
	if len(e.selection) == 0 {
		return
	}
	e.hist.Push(e.shapes)
	kept := e.shapes[:0]
	for _, s := range e.shapes {
		if !e.selection[s.Attrs().ID] {
			kept = append(kept, s)
		}
	}
	e.shapes = kept
	e.setSelection(nil)
	e.emit(EventShapesChanged)
}

// CopySelection places clones of the selection on the internal clipboard.
func (e *Editor) CopySelection() {
	e.clipboard = shape.CloneAll(e.SelectedShapes())
}

// Paste inserts offset copies of the clipboard contents and selects them.
func (e *Editor) Paste() {
	if len(e.clipboard) == 0 {
		return
	}
	e.appendAndSelect(ops.Duplicate(e.clipboard))
}

// DuplicateSelection inserts offset copies of the selection and selects
// the copies.
func (e *Editor) DuplicateSelection() {
	if len(e.selection) == 0 {
		return
	}
	e.appendAndSelect(ops.Duplicate(e.SelectedShapes()))
}

// Nudge translates the selection one step in a direction. Each call is a
// single undoable edit. Coarse selects the large step.
func (e *Editor) Nudge(dir ops.Direction, coarse bool) {
	if len(e.selection) == 0 {
		return
	}
	step := NudgeFine
	if coarse {
		step = NudgeCoarse
	}
	e.hist.Push(e.shapes)
	d := dir.Vector().Scale(step)
	for _, s := range e.SelectedShapes() {
		s.Translate(d)
	}
	e.emit(EventShapesChanged)
}

// LinearPatternSelection repeats the selection along the configured
// direction. The originals stay selected alongside the copies.
func (e *Editor) LinearPatternSelection() {
	copies := ops.LinearPattern(e.SelectedShapes(), e.PatternDir, e.PatternCount, e.PatternSpacing)
	if len(copies) == 0 {
		return
	}
	e.hist.Push(e.shapes)
	e.shapes = append(e.shapes, copies...)
	for _, s := range copies {
		e.selection[s.Attrs().ID] = true
	}
	e.emit(EventSelectionChanged)
	e.emit(EventShapesChanged)
}

// CircularPatternAt repeats the selection around a pivot, adding a dashed
// guide circle. The originals stay selected alongside the copies; the
// guide is never selected.
func (e *Editor) CircularPatternAt(pivot geometry.Point2D) {
	copies, guide := ops.CircularPattern(e.SelectedShapes(), pivot, e.PatternCount)
	if len(copies) == 0 {
		return
	}
	e.hist.Push(e.shapes)
	e.shapes = append(e.shapes, copies...)
	if guide != nil {
		e.shapes = append(e.shapes, guide)
	}
	for _, s := range copies {
		e.selection[s.Attrs().ID] = true
	}
	e.emit(EventSelectionChanged)
	e.emit(EventShapesChanged)
}

// MirrorAcross reflects copies of the selection across the axis through a
// and b, leaving originals in place, and selects the copies.
func (e *Editor) MirrorAcross(a, b geometry.Point2D) {
	copies := ops.Mirror(e.SelectedShapes(), a, b)
	if len(copies) == 0 {
		return
	}
	e.appendAndSelect(copies)
}

// OffsetSelection builds inward offset counterparts of the supported
// selected shapes. When no shape yields an offset the document and
// history are left untouched.
func (e *Editor) OffsetSelection() {
	out := ops.Offset(e.SelectedShapes(), e.OffsetDistance)
	if len(out) == 0 {
		return
	}
	e.appendAndSelect(out)
}

// AddDiameterToSelection annotates a single selected circle with a
// diameter measure.
func (e *Editor) AddDiameterToSelection() {
	sel := e.SelectedShapes()
	if len(sel) != 1 {
		return
	}
	c, ok := sel[0].(*shape.Circle)
	if !ok {
		return
	}
	e.appendAndSelect([]shape.Shape{ops.AddDiameter(c)})
}

// ApplyStyle runs fn over each selected shape's attributes as one
// undoable edit.
func (e *Editor) ApplyStyle(fn func(*shape.Attrs)) {
	if len(e.selection) == 0 {
		return
	}
	e.hist.Push(e.shapes)
	for _, s := range e.SelectedShapes() {
		fn(s.Attrs())
	}
	e.emit(EventShapesChanged)
}

// SetShapeText updates the label text of the single selected shape, for
// the kinds that carry one. Selections of any other size or kind are
// ignored.
func (e *Editor) SetShapeText(text string) {
	sel := e.SelectedShapes()
	if len(sel) != 1 {
		return
	}
	switch sel[0].(type) {
	case *shape.Text, *shape.Measure, *shape.MeasureRadius, *shape.MarkAngle, *shape.Brace:
	default:
		return
	}
	e.hist.Push(e.shapes)
	switch t := sel[0].(type) {
	case *shape.Text:
		t.Content = text
	case *shape.Measure:
		t.Text = text
	case *shape.MeasureRadius:
		t.Text = text
	case *shape.MarkAngle:
		t.Text = text
	case *shape.Brace:
		t.Text = text
	}
	e.emit(EventShapesChanged)
}

// ShapeText returns the label text of the single selected shape and
// whether that kind carries one.
func (e *Editor) ShapeText() (string, bool) {
	sel := e.SelectedShapes()
	if len(sel) != 1 {
		return "", false
	}
	switch t := sel[0].(type) {
	case *shape.Text:
		return t.Content, true
	case *shape.Measure:
		return t.Text, true
	case *shape.MeasureRadius:
		return t.Text, true
	case *shape.MarkAngle:
		return t.Text, true
	case *shape.Brace:
		return t.Text, true
	}
	return "", false
}

// LoadShapes replaces the whole document, resetting history, selection,
// and any in-flight gesture. Used when opening a file.
func (e *Editor) LoadShapes(shapes []shape.Shape) {
	e.shapes = shapes
	e.selection = make(map[string]bool)
	e.hist = history.New()
	e.clipboard = nil
	e.current = nil
	e.drag = dragNone
	e.boxActive = false
	e.emit(EventSelectionChanged)
	e.emit(EventShapesChanged)
}

// AppendShapes inserts externally built shapes (template expansion,
// import) under fresh ids and selects them.
func (e *Editor) AppendShapes(list []shape.Shape) {
	if len(list) == 0 {
		return
	}
	for _, s := range list {
		s.Attrs().ID = shape.NewID()
	}
	e.appendAndSelect(list)
}

func (e *Editor) appendAndSelect(list []shape.Shape) {
	e.hist.Push(e.shapes)
	e.shapes = append(e.shapes, list...)
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.Attrs().ID
	}
	e.setSelection(ids)
	e.emit(EventShapesChanged)
}
