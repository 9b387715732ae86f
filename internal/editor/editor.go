// Package editor owns the document and the pointer-driven interaction
// state machine. It is deliberately UI-free: the canvas widget forwards
// device-space pointer events and repaints when change events fire, so the
// whole session is testable without a widget harness.
package editor

import (
	"math"

	"tikz-cad/internal/hittest"
	"tikz-cad/internal/history"
	"tikz-cad/internal/ops"
	"tikz-cad/internal/shape"
	"tikz-cad/internal/view"
	"tikz-cad/pkg/geometry"
)

// Mode is the active drawing tool.
type Mode int

const (
	ModePan Mode = iota
	ModeFreehand
	ModeLine
	ModeBezier
	ModeRect
	ModeRoundRect
	ModeCircle
	ModeEllipse
	ModeArc
	ModeMeasure
	ModeMeasureRadius
	ModeMarkAngle
	ModeBrace
	ModeText
	ModeMirrorAxis
	ModeCircularPattern
)

type dragState int

const (
	dragNone dragState = iota
	dragPan
	dragBoxSelect
	dragDraw
	dragEdit
)

// EventType identifies editor change events.
type EventType int

const (
	EventShapesChanged EventType = iota
	EventSelectionChanged
	EventModeChanged
	EventViewChanged
)

// Modifiers carries the modifier keys held during a pointer event.
type Modifiers struct {
	Box    bool // box-select modifier (Shift)
	Toggle bool // selection-toggle modifier (Ctrl/Cmd)
}

// Nudge step magnitudes in grid units.
const (
	NudgeFine   = 0.5
	NudgeCoarse = 2.0
)

// defaultArcSweep is the end angle a freshly drawn arc starts with.
const defaultArcSweep = 1.5 * math.Pi

// Editor is the application state: shape collection, selection, view, and
// the in-flight pointer gesture. All mutation happens on the UI event
// loop, so no locking is needed.
type Editor struct {
	View *view.Transform
	Snap bool

	// Pattern and offset parameters, set from the toolbar.
	PatternCount   int
	PatternSpacing float64
	PatternDir     ops.Direction
	OffsetDistance float64

	shapes    []shape.Shape
	selection map[string]bool
	hist      *history.Stack
	clipboard []shape.Shape
	mode      Mode

	drag         dragState
	dragHandle   shape.HandleName
	dragAnchor   geometry.Point2D // snapped grid anchor of the gesture
	lastDevice   geometry.Point2D // device point of the previous move, for panning
	dragSnapshot map[string]shape.Shape
	current      shape.Shape   // in-progress drawn shape, not yet in the collection
	boxRect      geometry.Rect // device-space rubber band
	boxAnchor    geometry.Point2D
	boxActive    bool

	listeners map[EventType][]func()
}

// New creates an editor over an empty document.
func New() *Editor {
	return &Editor{
		View:           view.New(),
		Snap:           true,
		PatternCount:   4,
		PatternSpacing: 2,
		PatternDir:     ops.DirRight,
		OffsetDistance: 0.5,
		selection:      make(map[string]bool),
		hist:           history.New(),
		listeners:      make(map[EventType][]func()),
	}
}

// On registers a listener for the given event type.
func (e *Editor) On(ev EventType, fn func()) {
	e.listeners[ev] = append(e.listeners[ev], fn)
}

func (e *Editor) emit(ev EventType) {
	for _, fn := range e.listeners[ev] {
		fn()
	}
}

// Shapes returns the live shape collection.
func (e *Editor) Shapes() []shape.Shape { return e.shapes }

// Current returns the in-progress drawn shape, or nil.
func (e *Editor) Current() shape.Shape { return e.current }

// BoxSelectRect returns the device-space rubber band and whether a
// box-select drag is active.
func (e *Editor) BoxSelectRect() (geometry.Rect, bool) { return e.boxRect, e.boxActive }

// Mode returns the active tool mode.
func (e *Editor) Mode() Mode { return e.mode }

// SetMode switches the active tool mode.
func (e *Editor) SetMode(m Mode) {
	if e.mode == m {
		return
	}
	e.mode = m
	e.emit(EventModeChanged)
}

// IsSelected reports whether a shape id is in the selection set.
func (e *Editor) IsSelected(id string) bool { return e.selection[id] }

// SelectionCount returns the number of selected shapes.
func (e *Editor) SelectionCount() int { return len(e.selection) }

// SelectedShapes returns the selected shapes in collection order.
func (e *Editor) SelectedShapes() []shape.Shape {
	var out []shape.Shape
	for _, s := range e.shapes {
		if e.selection[s.Attrs().ID] {
			out = append(out, s)
		}
	}
	return out
}

func (e *Editor) setSelection(ids []string) {
	e.selection = make(map[string]bool, len(ids))
	for _, id := range ids {
		e.selection[id] = true
	}
	e.emit(EventSelectionChanged)
}

// pruneSelection drops selection ids that no longer exist after a
// collection swap.
func (e *Editor) pruneSelection() {
	live := make(map[string]bool, len(e.shapes))
	for _, s := range e.shapes {
		live[s.Attrs().ID] = true
	}
	changed := false
	for id := range e.selection {
		if !live[id] {
			delete(e.selection, id)
			changed = true
		}
	}
	if changed {
		e.emit(EventSelectionChanged)
	}
}

// gridPoint maps a device point to the grid, snapped when snapping is on.
func (e *Editor) gridPoint(device geometry.Point2D) geometry.Point2D {
	p := e.View.ScreenToGrid(device)
	if e.Snap {
		p = geometry.SnapPoint(p)
	}
	return p
}

// PointerDown starts a gesture at a device point.
func (e *Editor) PointerDown(device geometry.Point2D, mods Modifiers) {
	switch {
	case e.mode == ModePan:
		e.pointerDownPan(device, mods)
	case e.mode == ModeCircularPattern:
		// Immediate operation, no drag state: the click point is the pivot.
		e.CircularPatternAt(e.gridPoint(device))
		e.SetMode(ModePan)
	default:
		e.beginDraw(device)
	}
}

func (e *Editor) pointerDownPan(device geometry.Point2D, mods Modifiers) {
	if mods.Box {
		e.drag = dragBoxSelect
		e.boxAnchor = device
		e.boxRect = geometry.RectFromCorners(device, device)
		e.boxActive = true
		return
	}

	// Handles of the single selected shape take priority over body hits.
	if len(e.selection) == 1 {
		sel := e.SelectedShapes()[0]
		if name, ok := hittest.HandleAt(sel, device, e.View); ok {
			e.beginEdit(device, name)
			return
		}
	}

	if hit := hittest.ShapeAt(e.shapes, device, e.View); hit != nil {
		id := hit.Attrs().ID
		if mods.Toggle {
			if e.selection[id] {
				delete(e.selection, id)
			} else {
				e.selection[id] = true
			}
			e.emit(EventSelectionChanged)
			return
		}
		if !e.selection[id] {
			e.setSelection([]string{id})
		}
		e.beginEdit(device, shape.HandleMove)
		return
	}

	// Empty space: pan, dropping the selection.
	e.setSelection(nil)
	e.drag = dragPan
	e.lastDevice = device
}

// beginEdit snapshots the pre-drag state of every selected shape. Handle
// updates are always recomputed from these snapshots plus the total drag
// delta, so repeated move events are idempotent with respect to total
// drag distance.
func (e *Editor) beginEdit(device geometry.Point2D, handle shape.HandleName) {
	e.hist.Push(e.shapes)
	e.drag = dragEdit
	e.dragHandle = handle
	e.dragAnchor = e.gridPoint(device)
	e.dragSnapshot = make(map[string]shape.Shape, len(e.selection))
	for _, s := range e.SelectedShapes() {
		e.dragSnapshot[s.Attrs().ID] = s.Clone()
	}
}

func (e *Editor) beginDraw(device geometry.Point2D) {
	p := e.gridPoint(device)
	e.drag = dragDraw
	e.dragAnchor = p

	attr := shape.DefaultAttrs()
	switch e.mode {
	case ModeFreehand:
		e.current = &shape.Freehand{Attr: attr, Points: []geometry.Point2D{p}}
	case ModeLine:
		e.current = &shape.Line{Attr: attr, P1: p, P2: p}
	case ModeBezier:
		z := &shape.Bezier{Attr: attr, P1: p, P2: p}
		z.DefaultControls()
		e.current = z
	case ModeRect:
		e.current = &shape.Rect{Attr: attr, C1: p, C2: p}
	case ModeRoundRect:
		e.current = &shape.RoundRect{Attr: attr, C1: p, C2: p, CornerRadius: 0.25}
	case ModeCircle:
		e.current = &shape.Circle{Attr: attr, Center: p, Rim: p}
	case ModeEllipse:
		e.current = &shape.Ellipse{Attr: attr, Center: p, Rim: p}
	case ModeArc:
		e.current = &shape.Arc{Attr: attr, Center: p, Rim: p, Start: 0, End: defaultArcSweep}
	case ModeMeasure:
		e.current = &shape.Measure{Attr: attr, P1: p, P2: p, Offset: geometry.Point2D{Y: 0.75}, Label: p}
	case ModeMeasureRadius:
		e.current = &shape.MeasureRadius{Attr: attr, P1: p, P2: p, Label: p}
	case ModeMarkAngle:
		e.current = &shape.MarkAngle{Attr: attr, P1: p, P2: p, Label: p}
	case ModeBrace:
		e.current = &shape.Brace{Attr: attr, P1: p, P2: p, Label: p}
	case ModeText:
		e.current = &shape.Text{Attr: attr, Anchor: p, Content: "text"}
	case ModeMirrorAxis:
		l := &shape.Line{Attr: attr, P1: p, P2: p}
		l.Attr.Style = shape.StyleDashed
		l.Attr.Guide = true
		e.current = l
	}
	e.emit(EventShapesChanged)
}

// PointerMove advances the active gesture.
func (e *Editor) PointerMove(device geometry.Point2D) {
	switch e.drag {
	case dragPan:
		// Raw pixel delta; panning is continuous and never snapped.
		e.View.Pan(device.Sub(e.lastDevice))
		e.lastDevice = device
		e.emit(EventViewChanged)
	case dragBoxSelect:
		e.boxRect = geometry.RectFromCorners(e.boxAnchor, device)
		e.emit(EventShapesChanged)
	case dragEdit:
		e.moveEdit(device)
	case dragDraw:
		e.moveDraw(device)
	}
}

func (e *Editor) moveEdit(device geometry.Point2D) {
	delta := e.gridPoint(device).Sub(e.dragAnchor)
	for i, s := range e.shapes {
		snap, ok := e.dragSnapshot[s.Attrs().ID]
		if !ok {
			continue
		}
		next := snap.Clone()
		next.DragHandle(e.dragHandle, delta)
		e.shapes[i] = next
	}
	e.emit(EventShapesChanged)
}

func (e *Editor) moveDraw(device geometry.Point2D) {
	p := e.gridPoint(device)
	switch s := e.current.(type) {
	case *shape.Freehand:
		// Intermediate points stay unsnapped for smoothness.
		s.Points = append(s.Points, e.View.ScreenToGrid(device))
	case *shape.Line:
		s.P2 = p
	case *shape.Bezier:
		s.P2 = p
		s.DefaultControls()
	case *shape.Rect:
		s.C2 = p
	case *shape.RoundRect:
		s.C2 = p
	case *shape.Circle:
		s.Rim = p
	case *shape.Ellipse:
		s.Rim = p
	case *shape.Arc:
		s.Rim = p
	case *shape.Measure:
		s.P2 = p
		s.Label = geometry.Centroid([]geometry.Point2D{s.P1, s.P2}).Add(s.Offset)
	case *shape.MeasureRadius:
		s.P2 = p
		s.Label = geometry.Centroid([]geometry.Point2D{s.P1, s.P2})
	case *shape.MarkAngle:
		s.P2 = p
		s.Label = s.P1.Add(p.Sub(s.P1).Scale(0.5))
	case *shape.Brace:
		s.P2 = p
		s.Label = geometry.Centroid([]geometry.Point2D{s.P1, s.P2})
	}
	e.emit(EventShapesChanged)
}

// PointerUp ends the active gesture and returns to the idle base state.
func (e *Editor) PointerUp(device geometry.Point2D) {
	switch e.drag {
	case dragBoxSelect:
		e.boxActive = false
		ids := hittest.ShapesInScreenRect(e.shapes, e.boxRect, e.View)
		e.setSelection(ids)
		e.emit(EventShapesChanged)
	case dragEdit:
		e.dragSnapshot = nil
	case dragDraw:
		e.endDraw()
	}
	e.drag = dragNone
}

func (e *Editor) endDraw() {
	cur := e.current
	e.current = nil
	if cur == nil {
		return
	}
	if e.mode == ModeMirrorAxis {
		// The drawn segment is the mirror axis, not a shape.
		axis := cur.(*shape.Line)
		e.MirrorAcross(axis.P1, axis.P2)
		e.SetMode(ModePan)
		return
	}
	e.hist.Push(e.shapes)
	e.shapes = append(e.shapes, cur)
	e.setSelection([]string{cur.Attrs().ID})
	e.emit(EventShapesChanged)
}

// Escape hard-resets the session: back to pan mode, selection cleared,
// any in-progress gesture discarded.
func (e *Editor) Escape() {
	e.current = nil
	e.dragSnapshot = nil
	e.boxActive = false
	e.drag = dragNone
	e.SetMode(ModePan)
	e.setSelection(nil)
	e.emit(EventShapesChanged)
}
