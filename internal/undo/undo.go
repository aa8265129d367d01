// Package undo implements a linear undo/redo history over opaque snapshot
// values. It backs the admin draft workspace, letting an editor stage
// changes to a document before committing them.
package undo

// History tracks past, present, and future snapshots of a single document.
// Depth is unbounded. The zero value is not usable; call New.
type History[T any] struct {
	past    []T
	present T
	future  []T
}

// New creates a history whose present is the given initial snapshot.
func New[T any](initial T) *History[T] {
	return &History[T]{present: initial}
}

// Present returns the current snapshot.
func (h *History[T]) Present() T {
	return h.present
}

// CanUndo reports whether an older snapshot exists.
func (h *History[T]) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether an undone snapshot can be restored.
func (h *History[T]) CanRedo() bool {
	return len(h.future) > 0
}

// Push records a new present snapshot. Any redo history is discarded:
// a fresh edit invalidates previously undone states.
func (h *History[T]) Push(snapshot T) {
	h.past = append(h.past, h.present)
	h.present = snapshot
	h.future = nil
}

// Undo steps back one snapshot. It reports whether a step was taken;
// calling Undo with no past is a no-op.
func (h *History[T]) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	h.future = append([]T{h.present}, h.future...)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return true
}

// Redo restores the most recently undone snapshot. It reports whether a
// step was taken; calling Redo with no future is a no-op.
func (h *History[T]) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	h.past = append(h.past, h.present)
	h.present = h.future[0]
	h.future = h.future[1:]
	return true
}
