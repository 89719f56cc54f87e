package gesture

import (
	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

const (
	// EraserTapSlop is how far the pointer may travel and still count as a tap.
	EraserTapSlop = 12
	// EraserHitPadding is added to half the stroke width to get the hit radius.
	EraserHitPadding = 12
)

type eraserState int

const (
	eraserIdle eraserState = iota
	eraserProbing
)

// Eraser removes the topmost stroke under a tap: Idle -> Probing -> Idle.
// Drags are ignored; there is no continuous erasing.
type Eraser struct {
	state eraserState
	start state.Point
	moved bool
}

// Probing reports whether a gesture is in progress.
func (e *Eraser) Probing() bool { return e.state == eraserProbing }

func (e *Eraser) Begin(pt state.Point) {
	e.state = eraserProbing
	e.start = pt
	e.moved = false
}

func (e *Eraser) Move(pt state.Point) {
	if e.state != eraserProbing {
		return
	}
	if state.DistanceSquared(e.start, pt) > EraserTapSlop*EraserTapSlop {
		e.moved = true
	}
}

// End erases the topmost stroke within reach of pt unless the gesture was a
// drag. It reports whether a stroke was erased.
func (e *Eraser) End(pt state.Point, doc Document) bool {
	if e.state != eraserProbing {
		return false
	}
	moved := e.moved
	e.Cancel()
	if moved {
		return false
	}
	id, ok := HitTest(doc.Strokes(), pt)
	if !ok {
		return false
	}
	logx.Logger().Debug("[ERASER] hit", "id", id, "x", pt.X, "y", pt.Y)
	return doc.Erase(id)
}

func (e *Eraser) Cancel() {
	e.state = eraserIdle
	e.moved = false
}

// HitTest returns the id of the topmost stroke within reach of pt. Strokes
// are scanned from last to first and the first match wins, so at most one
// stroke is reported even when several overlap.
func HitTest(strokes []state.Stroke, pt state.Point) (string, bool) {
	for i := len(strokes) - 1; i >= 0; i-- {
		s := strokes[i]
		if len(s.Points) == 0 {
			continue
		}
		tol := s.Width/2 + EraserHitPadding
		if !state.Bounds(s.Points).Expand(tol).Contains(pt) {
			continue
		}
		if state.DistanceToPolylineSquared(pt, s.Points) <= tol*tol {
			return s.ID, true
		}
	}
	return "", false
}
