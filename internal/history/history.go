// Package history provides a snapshot-based undo/redo stack over the whole
// shape collection. Snapshots are deep copies; restoring swaps the entire
// collection rather than diffing.
package history

import (
	"tikz-cad/internal/shape"
)

// Stack holds the undo and redo snapshot stacks.
type Stack struct {
	undo [][]shape.Shape
	redo [][]shape.Shape
}

// New returns an empty history stack.
func New() *Stack {
	return &Stack{}
}

// Push records the pre-mutation state of the collection and clears the
// redo stack. Call before any mutating user action.
func (h *Stack) Push(current []shape.Shape) {
	h.undo = append(h.undo, shape.CloneAll(current))
	h.redo = nil
}

// Undo returns the previous collection, pushing current onto the redo
// stack. The second result is false when there is nothing to undo.
func (h *Stack) Undo(current []shape.Shape) ([]shape.Shape, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, shape.CloneAll(current))
	return prev, true
}

// Redo is the mirror of Undo.
func (h *Stack) Redo(current []shape.Shape) ([]shape.Shape, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, shape.CloneAll(current))
	return next, true
}

// CanUndo reports whether an undo snapshot exists.
func (h *Stack) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo snapshot exists.
func (h *Stack) CanRedo() bool { return len(h.redo) > 0 }
