package gesture

import (
	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// Session is one open page: the document store plus the three tools, of
// which exactly one receives pointer events. It runs on the UI goroutine.
type Session struct {
	store       *state.Store
	pen         *Pen
	eraser      Eraser
	selector    Selector
	tool        Tool
	interactive bool
}

// NewSession returns an interactive session with the pen selected.
func NewSession(store *state.Store, pen *Pen) *Session {
	if pen == nil {
		pen = NewPen()
	}
	return &Session{store: store, pen: pen, tool: ToolPen, interactive: true}
}

func (s *Session) Store() *state.Store { return s.store }
func (s *Session) Pen() *Pen           { return s.pen }
func (s *Session) Selector() *Selector { return &s.selector }
func (s *Session) Tool() Tool          { return s.tool }
func (s *Session) Interactive() bool   { return s.interactive }

// Selection returns the committed selection, if any.
func (s *Session) Selection() (state.Rect, bool) { return s.selector.Selection() }

// SetTool switches tools. Any gesture in progress is cancelled, and leaving
// the select tool drops the committed selection.
func (s *Session) SetTool(t Tool) {
	if t == s.tool {
		return
	}
	s.Cancel()
	if s.tool == ToolSelect {
		s.selector.Clear()
	}
	logx.Logger().Debug("[SESSION] tool", "from", s.tool, "to", t)
	s.tool = t
}

// SetInteractive enables or disables pointer input. Disabling cancels any
// gesture in progress.
func (s *Session) SetInteractive(on bool) {
	if !on {
		s.Cancel()
	}
	s.interactive = on
}

// Open replaces the document and its history, cancelling gestures and
// dropping the selection.
func (s *Session) Open(doc state.Document) {
	s.Cancel()
	s.selector.Clear()
	s.store.Open(doc)
}

func (s *Session) Begin(pt state.Point) {
	if !s.interactive {
		return
	}
	switch s.tool {
	case ToolPen:
		s.pen.Begin(pt)
	case ToolEraser:
		s.eraser.Begin(pt)
	case ToolSelect:
		s.selector.Begin(pt)
	}
}

func (s *Session) Move(pt state.Point) {
	if !s.interactive {
		return
	}
	switch s.tool {
	case ToolPen:
		s.pen.Move(pt)
	case ToolEraser:
		s.eraser.Move(pt)
	case ToolSelect:
		s.selector.Move(pt)
	}
}

// End completes the gesture at pt and reports whether it changed the
// document or the selection.
func (s *Session) End(pt state.Point) bool {
	if !s.interactive {
		return false
	}
	switch s.tool {
	case ToolPen:
		return s.pen.End(s.store)
	case ToolEraser:
		return s.eraser.End(pt, s.store)
	case ToolSelect:
		return s.selector.End(pt)
	}
	return false
}

// Cancel abandons whatever gesture is in progress. It never changes the
// document.
func (s *Session) Cancel() {
	s.pen.Cancel()
	s.eraser.Cancel()
	s.selector.Cancel()
}

func (s *Session) Undo() bool {
	s.Cancel()
	return s.store.Undo()
}

func (s *Session) Redo() bool {
	s.Cancel()
	return s.store.Redo()
}

func (s *Session) Clear() bool {
	s.Cancel()
	return s.store.Clear()
}
