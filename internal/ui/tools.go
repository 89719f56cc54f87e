package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/gesture"
	"InkBoard/internal/state"
)

// palette holds the pen colors offered in the toolbar, as stroke color
// strings.
var palette = []string{"#000000", "#ff0000", "#00ff00", "#0000ff", "#ffff00"}

var (
	swatchBorder   = color.Gray{Y: 150}
	swatchSelected = color.NRGBA{R: 30, G: 120, B: 220, A: 255}
)

// swatch is one palette entry. The entry matching the pen color is drawn
// with a thick highlighted border.
type swatch struct {
	widget.BaseWidget
	value    string
	selected bool
	onTapped func(value string)
}

func newSwatch(value string, tapped func(string)) *swatch {
	s := &swatch{value: value, onTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) setSelected(on bool) {
	if s.selected == on {
		return
	}
	s.selected = on
	s.Refresh()
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onTapped != nil {
		s.onTapped(s.value)
	}
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	fill := canvas.NewRectangle(parseOr(s.value))
	fill.SetMinSize(fyne.NewSize(32, 32))
	border := canvas.NewRectangle(color.Transparent)
	r := &swatchRenderer{swatch: s, fill: fill, border: border}
	r.Refresh()
	return r
}

type swatchRenderer struct {
	swatch *swatch
	fill   *canvas.Rectangle
	border *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	r.fill.Resize(size)
	r.border.Resize(size)
}

func (r *swatchRenderer) MinSize() fyne.Size { return r.fill.MinSize() }

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.fill, r.border}
}

func (r *swatchRenderer) Refresh() {
	if r.swatch.selected {
		r.border.StrokeColor = swatchSelected
		r.border.StrokeWidth = 3
	} else {
		r.border.StrokeColor = swatchBorder
		r.border.StrokeWidth = 1
	}
	r.border.Refresh()
}

func (r *swatchRenderer) Destroy() {}

// Actions are the document-level commands the toolbar triggers.
type Actions struct {
	Open            func()
	Save            func()
	ExportPage      func()
	ExportSelection func()
	ExportPDF       func()
}

// Toolbar holds the tool, pen and history controls for one session.
type Toolbar struct {
	session *gesture.Session
	board   *Board
	actions Actions

	tools    map[gesture.Tool]*widget.Button
	undo     *widget.Button
	redo     *widget.Button
	clear    *widget.Button
	sel      *widget.Button
	width    *widget.Slider
	swatches []*swatch
}

func NewToolbar(s *gesture.Session, board *Board, act Actions) *Toolbar {
	t := &Toolbar{session: s, board: board, actions: act, tools: make(map[gesture.Tool]*widget.Button)}

	for tool, icon := range map[gesture.Tool]fyne.Resource{
		gesture.ToolPen:    theme.DocumentCreateIcon(),
		gesture.ToolEraser: theme.ContentRemoveIcon(),
		gesture.ToolSelect: theme.ViewFullScreenIcon(),
	} {
		t.tools[tool] = widget.NewButtonWithIcon("", icon, func() { t.SetTool(tool) })
	}

	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { s.Undo(); board.Refresh() })
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { s.Redo(); board.Refresh() })
	t.clear = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { s.Clear(); board.Refresh() })
	t.sel = widget.NewButtonWithIcon("", theme.ContentCutIcon(), act.ExportSelection)

	t.width = widget.NewSlider(1, 50)
	t.width.SetValue(float64(s.Pen().Width))
	t.width.OnChanged = func(v float64) { s.Pen().Width = float32(v) }

	for _, c := range palette {
		t.swatches = append(t.swatches, newSwatch(c, t.SetColor))
	}
	t.markColor()

	t.SetTool(s.Tool())
	t.Update(s.Store().Snapshot())
	return t
}

// SetColor makes c the pen color and switches to the pen.
func (t *Toolbar) SetColor(c string) {
	t.session.Pen().Color = c
	t.markColor()
	t.SetTool(gesture.ToolPen)
}

func (t *Toolbar) markColor() {
	current := parseOr(t.session.Pen().Color)
	for _, sw := range t.swatches {
		sw.setSelected(parseOr(sw.value) == current)
	}
}

// SetTool switches the session's tool and highlights its button.
func (t *Toolbar) SetTool(tool gesture.Tool) {
	t.session.SetTool(tool)
	for k, b := range t.tools {
		if k == tool {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.MediumImportance
		}
		b.Refresh()
	}
	t.UpdateSelection()
	t.board.Refresh()
}

// Update enables the history buttons according to c.
func (t *Toolbar) Update(c state.Change) {
	enable(t.undo, c.CanUndo)
	enable(t.redo, c.CanRedo)
	enable(t.clear, len(c.Document.Strokes) > 0)
}

// UpdateSelection enables export-selection only while a selection exists.
func (t *Toolbar) UpdateSelection() {
	_, ok := t.session.Selection()
	enable(t.sel, ok)
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

// Object lays the toolbar out in one row.
func (t *Toolbar) Object() fyne.CanvasObject {
	act := t.actions
	files := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), act.Open),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), act.Save),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DownloadIcon(), act.ExportPage),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), act.ExportPDF),
	)
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.width)
	return container.NewHBox(
		t.tools[gesture.ToolPen], t.tools[gesture.ToolEraser], t.tools[gesture.ToolSelect],
		widget.NewSeparator(),
		container.NewHBox(swatchObjects(t.swatches)...),
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		widget.NewSeparator(),
		t.undo, t.redo, t.clear,
		widget.NewSeparator(),
		t.sel,
		files,
		layout.NewSpacer(),
	)
}

func swatchObjects(sw []*swatch) []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, len(sw))
	for i, s := range sw {
		out[i] = s
	}
	return out
}
