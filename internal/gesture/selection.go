package gesture

import (
	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// MinSelectionSize is the smallest width and height a drag must span to
// become a selection.
const MinSelectionSize = 5

type selectState int

const (
	selectIdle selectState = iota
	selectDragging
)

// Selector tracks a rectangular selection drawn by dragging:
// Idle -> Dragging -> Idle.
type Selector struct {
	state     selectState
	anchor    state.Point
	current   state.Rect
	committed state.Rect
	has       bool
}

// Dragging reports whether a drag is in progress.
func (s *Selector) Dragging() bool { return s.state == selectDragging }

// Current returns the rectangle of the drag in progress.
func (s *Selector) Current() (state.Rect, bool) {
	return s.current, s.state == selectDragging
}

// Selection returns the committed selection, if any.
func (s *Selector) Selection() (state.Rect, bool) {
	return s.committed, s.has
}

// Begin anchors a new drag at pt, replacing any committed selection.
func (s *Selector) Begin(pt state.Point) {
	s.Clear()
	s.state = selectDragging
	s.anchor = pt
	s.current = state.Rect{X: pt.X, Y: pt.Y}
}

// Move stretches the rectangle between the anchor and pt.
func (s *Selector) Move(pt state.Point) {
	if s.state != selectDragging {
		return
	}
	s.current = state.RectFromPoints(s.anchor, pt)
}

// End finishes the drag at pt. Rectangles narrower or shorter than
// MinSelectionSize are dropped. It reports whether a selection was
// committed.
func (s *Selector) End(pt state.Point) bool {
	if s.state != selectDragging {
		return false
	}
	s.Move(pt)
	r := s.current
	s.state = selectIdle
	s.current = state.Rect{}
	if r.Width < MinSelectionSize || r.Height < MinSelectionSize {
		logx.Logger().Debug("[SELECT] drag too small", "width", r.Width, "height", r.Height)
		return false
	}
	s.committed, s.has = r, true
	logx.Logger().Debug("[SELECT] committed", "x", r.X, "y", r.Y, "width", r.Width, "height", r.Height)
	return true
}

// Cancel abandons the drag in progress.
func (s *Selector) Cancel() {
	s.state = selectIdle
	s.current = state.Rect{}
}

// Clear forgets the committed selection.
func (s *Selector) Clear() {
	s.committed, s.has = state.Rect{}, false
}
