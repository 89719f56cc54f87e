package state

import "InkBoard/internal/logx"

// Change is what the Store publishes after the document changed: the
// document for persistence and the undo/redo affordances for the UI.
type Change struct {
	Document Document `json:"document"`
	CanUndo  bool     `json:"can_undo"`
	CanRedo  bool     `json:"can_redo"`
}

// Listener receives Changes from a Store.
type Listener func(Change)

type subscription struct {
	id int
	fn Listener
}

// Store owns the History of the document open in one session. It is not
// safe for concurrent use; all calls must come from the goroutine that
// handles pointer events.
type Store struct {
	h         History
	listeners []subscription
	nextID    int
}

// NewStore returns a Store holding an empty document.
func NewStore() *Store {
	return &Store{h: History{Strokes: []Stroke{}}}
}

// Subscribe registers l for every subsequent Change. The returned func
// removes it again.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies a and notifies listeners if the history changed. It
// reports whether it did.
func (s *Store) Dispatch(a Action) bool {
	next, changed := apply(s.h, a)
	if !changed {
		logx.Logger().Debug("[STORE] no-op", "action", a.Kind)
		return false
	}
	s.h = next
	logx.Logger().Debug("[STORE] applied", "action", a.Kind,
		"strokes", len(next.Strokes), "undo", len(next.UndoStack), "redo", len(next.RedoStack))
	s.emit()
	return true
}

// ReplaceAll swaps in the strokes of another document and forgets all
// history in the same step.
func (s *Store) ReplaceAll(strokes []Stroke) { s.Dispatch(ReplaceAll(strokes)) }

// Open is ReplaceAll for a whole document.
func (s *Store) Open(doc Document) { s.ReplaceAll(doc.Strokes) }

func (s *Store) Add(stroke Stroke) bool { return s.Dispatch(Add(stroke)) }
func (s *Store) Erase(id string) bool   { return s.Dispatch(Erase(id)) }
func (s *Store) Clear() bool            { return s.Dispatch(Clear()) }
func (s *Store) Undo() bool             { return s.Dispatch(Undo()) }
func (s *Store) Redo() bool             { return s.Dispatch(Redo()) }

// Strokes returns the current strokes in render order. The slice must not
// be modified.
func (s *Store) Strokes() []Stroke { return s.h.Strokes }

// History returns the full current state.
func (s *Store) History() History { return s.h }

func (s *Store) CanUndo() bool { return s.h.CanUndo() }
func (s *Store) CanRedo() bool { return s.h.CanRedo() }

// Document returns the current strokes as a Document.
func (s *Store) Document() Document {
	return Document{Version: DocumentVersion, Strokes: s.h.Strokes}
}

// Snapshot returns the Change describing the current state.
func (s *Store) Snapshot() Change {
	return Change{Document: s.Document(), CanUndo: s.h.CanUndo(), CanRedo: s.h.CanRedo()}
}

func (s *Store) emit() {
	c := s.Snapshot()
	for _, sub := range s.listeners {
		sub.fn(c)
	}
}
