package gesture

import (
	"time"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// MinPointDistance is the smallest spacing between two recorded points of a
// stroke. Closer pointer samples are dropped.
const MinPointDistance = 2

const (
	DefaultPenColor = "#000000"
	DefaultPenWidth = 3
)

type penState int

const (
	penIdle penState = iota
	penDrawing
)

// Pen captures one stroke per gesture: Idle -> Drawing -> Idle.
type Pen struct {
	Color string
	Width float32
	NewID state.IDFunc
	Now   state.ClockFunc

	state  penState
	points []state.Point
}

// NewPen returns a pen drawing with the default color and width.
func NewPen() *Pen {
	return &Pen{
		Color: DefaultPenColor,
		Width: DefaultPenWidth,
		NewID: state.NewStrokeID,
		Now:   time.Now,
	}
}

// Drawing reports whether a gesture is in progress.
func (p *Pen) Drawing() bool { return p.state == penDrawing }

// Points returns the points sampled so far, for live preview.
func (p *Pen) Points() []state.Point { return p.points }

// Begin starts a stroke at pt. A gesture already in progress is discarded.
func (p *Pen) Begin(pt state.Point) {
	p.state = penDrawing
	p.points = []state.Point{pt}
}

// Move records pt if it is at least MinPointDistance from the last
// recorded point.
func (p *Pen) Move(pt state.Point) {
	if p.state != penDrawing {
		return
	}
	if state.DistanceSquared(p.points[len(p.points)-1], pt) >= MinPointDistance*MinPointDistance {
		p.points = append(p.points, pt)
	}
}

// End finishes the gesture and adds the stroke to doc when at least one
// point was recorded. It reports whether a stroke was committed.
func (p *Pen) End(doc Document) bool {
	if p.state != penDrawing {
		return false
	}
	points := p.points
	p.reset()
	if len(points) == 0 {
		return false
	}
	s := state.Stroke{
		ID:        p.NewID(),
		Points:    points,
		Color:     p.Color,
		Width:     p.Width,
		Tool:      state.ToolPen,
		Timestamp: p.Now(),
	}
	logx.Logger().Debug("[PEN] stroke committed", "id", s.ID, "points", len(points))
	return doc.Add(s)
}

// Cancel drops the gesture without touching the document.
func (p *Pen) Cancel() {
	if p.state == penDrawing {
		logx.Logger().Debug("[PEN] stroke cancelled", "points", len(p.points))
	}
	p.reset()
}

func (p *Pen) reset() {
	p.state = penIdle
	p.points = nil
}
