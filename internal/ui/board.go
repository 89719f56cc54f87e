package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/gesture"
	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

var (
	paperColor     = color.White
	selectionFill  = color.NRGBA{R: 30, G: 120, B: 220, A: 40}
	selectionLine  = color.NRGBA{R: 30, G: 120, B: 220, A: 255}
	previewOpacity = uint8(160)
)

// Board shows the session's document and feeds pointer input to it. The
// widget's own coordinate space is the logical canvas.
type Board struct {
	widget.BaseWidget
	session *gesture.Session

	// OnSelection is called after a select gesture ends.
	OnSelection func(sel state.Rect, ok bool)
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)

func NewBoard(s *gesture.Session) *Board {
	b := &Board{session: s}
	b.ExtendBaseWidget(b)
	return b
}

// Logical returns the size of the canvas strokes are drawn in.
func (b *Board) Logical() state.Size {
	sz := b.Size()
	return state.Size{Width: sz.Width, Height: sz.Height}
}

func toPoint(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.Begin(toPoint(e.Position))
	b.Refresh()
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	b.session.Move(toPoint(e.Position))
	b.Refresh()
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	changed := b.session.End(toPoint(e.Position))
	if changed && b.session.Tool() == gesture.ToolSelect && b.OnSelection != nil {
		sel, ok := b.session.Selection()
		b.OnSelection(sel, ok)
	}
	b.Refresh()
}

func (b *Board) MouseIn(*desktop.MouseEvent)    {}
func (b *Board) MouseOut()                      {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}
func (b *Board) DragEnd()                       {}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b, background: canvas.NewRectangle(paperColor)}
	r.rebuild()
	return r
}

type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Layout(size fyne.Size) { r.background.Resize(size) }

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *boardRenderer) Destroy() {}

func (r *boardRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardRenderer) rebuild() {
	s := r.board.session
	objects := []fyne.CanvasObject{r.background}
	for _, st := range s.Store().Strokes() {
		objects = appendStroke(objects, st.Points, strokeColor(st), st.Width)
	}

	pen := s.Pen()
	if pen.Drawing() {
		c := parseOr(pen.Color)
		c.A = min(c.A, previewOpacity)
		objects = appendStroke(objects, pen.Points(), c, pen.Width)
	}

	if rect, ok := s.Selector().Current(); ok {
		objects = append(objects, selectionRect(rect))
	} else if rect, ok := s.Selection(); ok {
		objects = append(objects, selectionRect(rect))
	}
	r.objects = objects
}

func strokeColor(st state.Stroke) color.NRGBA {
	c, err := state.ParseColor(st.Color)
	if err != nil {
		logx.Logger().Warn("[UI] bad stroke color, using black", "id", st.ID, "err", err)
		return color.NRGBA{A: 255}
	}
	return c
}

func parseOr(s string) color.NRGBA {
	if c, err := state.ParseColor(s); err == nil {
		return c
	}
	return color.NRGBA{A: 255}
}

// appendStroke adds one canvas.Line per segment, or a dot for a single
// point.
func appendStroke(objects []fyne.CanvasObject, pts []state.Point, c color.Color, width float32) []fyne.CanvasObject {
	switch len(pts) {
	case 0:
		return objects
	case 1:
		dot := canvas.NewCircle(c)
		dot.Move(fyne.NewPos(pts[0].X-width/2, pts[0].Y-width/2))
		dot.Resize(fyne.NewSize(width, width))
		return append(objects, dot)
	}
	for i := 1; i < len(pts); i++ {
		seg := canvas.NewLine(c)
		seg.StrokeWidth = width
		seg.Position1 = fyne.NewPos(pts[i-1].X, pts[i-1].Y)
		seg.Position2 = fyne.NewPos(pts[i].X, pts[i].Y)
		objects = append(objects, seg)
	}
	return objects
}

func selectionRect(r state.Rect) fyne.CanvasObject {
	rect := canvas.NewRectangle(selectionFill)
	rect.StrokeColor = selectionLine
	rect.StrokeWidth = 1
	rect.Move(fyne.NewPos(r.X, r.Y))
	rect.Resize(fyne.NewSize(r.Width, r.Height))
	return rect
}
