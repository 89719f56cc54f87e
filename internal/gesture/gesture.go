// Package gesture turns pointer input into document edits. Each tool is a
// small state machine; Session routes pointer events to the active one.
package gesture

import "InkBoard/internal/state"

// Document is the part of the document store the tools edit.
type Document interface {
	Strokes() []state.Stroke
	Add(s state.Stroke) bool
	Erase(id string) bool
}

// Tool selects which state machine receives pointer events.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraser:
		return "eraser"
	case ToolSelect:
		return "select"
	}
	return "unknown"
}
