package state

import (
	"slices"

	"InkBoard/internal/logx"
)

// HistoryLimit caps each of the undo and redo stacks. Pushing beyond it
// drops the oldest snapshot.
const HistoryLimit = 20

// History is the full editing state of one document: the current strokes
// plus snapshots to undo to and redo to. It is a plain value; Reduce never
// modifies the backing arrays of the History it is given.
type History struct {
	Strokes   []Stroke   `json:"strokes"`
	UndoStack [][]Stroke `json:"undo"`
	RedoStack [][]Stroke `json:"redo"`
}

// CanUndo reports whether Undo would change anything.
func (h History) CanUndo() bool { return len(h.UndoStack) > 0 }

// CanRedo reports whether Redo would change anything.
func (h History) CanRedo() bool { return len(h.RedoStack) > 0 }

// Index returns the position of the stroke with the given id, or -1.
func (h History) Index(id string) int {
	return slices.IndexFunc(h.Strokes, func(s Stroke) bool { return s.ID == id })
}

// ActionKind enumerates document operations.
type ActionKind int

const (
	ActionReplaceAll ActionKind = iota
	ActionAdd
	ActionErase
	ActionClear
	ActionUndo
	ActionRedo
)

func (k ActionKind) String() string {
	switch k {
	case ActionReplaceAll:
		return "replace-all"
	case ActionAdd:
		return "add"
	case ActionErase:
		return "erase"
	case ActionClear:
		return "clear"
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	}
	return "unknown"
}

// Action is one operation for Reduce. Build it with the constructors below.
type Action struct {
	Kind    ActionKind
	Strokes []Stroke // ActionReplaceAll
	Stroke  Stroke   // ActionAdd
	ID      string   // ActionErase
}

func ReplaceAll(strokes []Stroke) Action { return Action{Kind: ActionReplaceAll, Strokes: strokes} }
func Add(s Stroke) Action                { return Action{Kind: ActionAdd, Stroke: s} }
func Erase(id string) Action             { return Action{Kind: ActionErase, ID: id} }
func Clear() Action                      { return Action{Kind: ActionClear} }
func Undo() Action                       { return Action{Kind: ActionUndo} }
func Redo() Action                       { return Action{Kind: ActionRedo} }

// Reduce returns the state that follows h after applying a.
func Reduce(h History, a Action) History {
	next, _ := apply(h, a)
	return next
}

// apply is Reduce that also reports whether anything changed.
func apply(h History, a Action) (History, bool) {
	switch a.Kind {
	case ActionReplaceAll:
		return History{Strokes: dedupe(a.Strokes)}, true

	case ActionAdd:
		if h.Index(a.Stroke.ID) >= 0 {
			logx.Logger().Warn("[STORE] ignoring stroke with duplicate id", "id", a.Stroke.ID)
			return h, false
		}
		strokes := append(slices.Clip(h.Strokes), a.Stroke)
		return History{Strokes: strokes, UndoStack: push(h.UndoStack, h.Strokes)}, true

	case ActionErase:
		i := h.Index(a.ID)
		if i < 0 {
			return h, false
		}
		strokes := make([]Stroke, 0, len(h.Strokes)-1)
		strokes = append(strokes, h.Strokes[:i]...)
		strokes = append(strokes, h.Strokes[i+1:]...)
		return History{Strokes: strokes, UndoStack: push(h.UndoStack, h.Strokes)}, true

	case ActionClear:
		if len(h.Strokes) == 0 {
			return h, false
		}
		return History{Strokes: []Stroke{}, UndoStack: push(h.UndoStack, h.Strokes)}, true

	case ActionUndo:
		if !h.CanUndo() {
			return h, false
		}
		rest, prev := pop(h.UndoStack)
		return History{Strokes: prev, UndoStack: rest, RedoStack: push(h.RedoStack, h.Strokes)}, true

	case ActionRedo:
		if !h.CanRedo() {
			return h, false
		}
		rest, next := pop(h.RedoStack)
		return History{Strokes: next, UndoStack: push(h.UndoStack, h.Strokes), RedoStack: rest}, true
	}
	return h, false
}

// push returns stack with snap on top, keeping at most HistoryLimit entries.
func push(stack [][]Stroke, snap []Stroke) [][]Stroke {
	start := max(0, len(stack)+1-HistoryLimit)
	next := make([][]Stroke, 0, len(stack)-start+1)
	next = append(next, stack[start:]...)
	return append(next, snap)
}

func pop(stack [][]Stroke) ([][]Stroke, []Stroke) {
	n := len(stack) - 1
	return stack[:n:n], stack[n]
}

// dedupe copies strokes, dropping any stroke whose id was already seen.
func dedupe(strokes []Stroke) []Stroke {
	out := make([]Stroke, 0, len(strokes))
	seen := make(map[string]struct{}, len(strokes))
	for _, s := range strokes {
		if _, dup := seen[s.ID]; dup {
			logx.Logger().Warn("[STORE] dropping stroke with duplicate id", "id", s.ID)
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
