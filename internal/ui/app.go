// Package ui is the desktop front end: a board widget that draws the
// session's document and takes pointer input, plus the toolbar around it.
package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/config"
	"InkBoard/internal/gesture"
	"InkBoard/internal/state"
)

type Options struct {
	Title     string
	Session   *gesture.Session
	Export    config.Export
	ShareLink string

	// OnOpen runs just before an opened document replaces the current
	// one, with the local path of the file or "" for other URIs.
	OnOpen func(path string)
}

// App is the main window for one session.
type App struct {
	win      fyne.Window
	session  *gesture.Session
	board    *Board
	toolbar  *Toolbar
	status   *widget.Label
	exporter Exporter
	onOpen   func(path string)
}

// New builds the window. The session's store must only be used from the
// UI goroutine once the window is shown.
func New(a fyne.App, opts Options) *App {
	title := opts.Title
	if title == "" {
		title = "InkBoard"
	}
	ui := &App{
		win:      a.NewWindow(title),
		session:  opts.Session,
		status:   widget.NewLabel("Ready"),
		exporter: Exporter{Config: opts.Export},
		onOpen:   opts.OnOpen,
	}
	ui.win.Resize(fyne.NewSize(1024, 768))

	ui.board = NewBoard(opts.Session)
	ui.toolbar = NewToolbar(opts.Session, ui.board, Actions{
		Open:            ui.open,
		Save:            ui.save,
		ExportPage:      ui.exportPage,
		ExportSelection: ui.exportSelection,
		ExportPDF:       ui.exportPDF,
	})
	ui.board.OnSelection = func(sel state.Rect, ok bool) {
		ui.toolbar.UpdateSelection()
		if ok {
			ui.SetStatus(fmt.Sprintf("Selected %.0fx%.0f", sel.Width, sel.Height))
		}
	}
	opts.Session.Store().Subscribe(func(c state.Change) {
		ui.toolbar.Update(c)
		ui.toolbar.UpdateSelection()
		ui.board.Refresh()
	})

	var footer fyne.CanvasObject = ui.status
	if opts.ShareLink != "" {
		link := widget.NewEntry()
		link.SetText(opts.ShareLink)
		link.Disable()
		footer = container.NewBorder(nil, nil, ui.status, nil, link)
	}
	ui.win.SetContent(container.NewBorder(ui.toolbar.Object(), footer, nil, nil, ui.board))
	ui.addShortcuts()
	return ui
}

// Run builds the window on a new fyne app and blocks until it is closed.
func Run(opts Options) {
	New(app.New(), opts).win.ShowAndRun()
}

func (ui *App) Board() *Board { return ui.board }

// SetStatus shows text in the status bar. Safe from any goroutine.
func (ui *App) SetStatus(text string) {
	fyne.Do(func() { ui.status.SetText(text) })
}

func (ui *App) addShortcuts() {
	c := ui.win.Canvas()
	mod := fyne.KeyModifierShortcutDefault
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod}, func(fyne.Shortcut) {
		ui.session.Undo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: mod | fyne.KeyModifierShift}, func(fyne.Shortcut) {
		ui.session.Redo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, func(fyne.Shortcut) { ui.save() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { ui.open() })
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			ui.session.Cancel()
			ui.board.Refresh()
		case fyne.KeyP:
			ui.toolbar.SetTool(gesture.ToolPen)
		case fyne.KeyE:
			ui.toolbar.SetTool(gesture.ToolEraser)
		case fyne.KeyS:
			ui.toolbar.SetTool(gesture.ToolSelect)
		}
	})
}

// modal disables drawing while a dialog is up and returns the func that
// turns it back on.
func (ui *App) modal() func() {
	ui.session.SetInteractive(false)
	ui.board.Refresh()
	return func() { ui.session.SetInteractive(true) }
}

func (ui *App) open() {
	openFrom(ui.win, func(doc state.Document, uri fyne.URI) {
		if ui.onOpen != nil {
			path := ""
			if uri.Scheme() == "file" {
				path = uri.Path()
			}
			ui.onOpen(path)
		}
		ui.session.Open(doc)
		ui.toolbar.UpdateSelection()
		ui.SetStatus(fmt.Sprintf("Opened %s (%d strokes)", uri.Name(), len(doc.Strokes)))
	}, ui.modal())
}

func (ui *App) save() {
	doc := ui.session.Store().Document()
	saveTo(ui.win, "board.json", func(w io.Writer) error {
		return state.Encode(w, doc)
	}, ui.saved, ui.modal())
}

func (ui *App) exportPage() {
	doc, logical := ui.session.Store().Document(), ui.board.Logical()
	name := "board" + ui.exporter.format().Ext()
	saveTo(ui.win, name, func(w io.Writer) error {
		return ui.exporter.Page(w, doc, logical)
	}, ui.saved, ui.modal())
}

func (ui *App) exportSelection() {
	sel, ok := ui.session.Selection()
	if !ok {
		dialog.ShowInformation("Export selection", "Drag a selection with the select tool first.", ui.win)
		return
	}
	doc, logical := ui.session.Store().Document(), ui.board.Logical()
	name := "selection" + ui.exporter.format().Ext()
	saveTo(ui.win, name, func(w io.Writer) error {
		return ui.exporter.Selection(w, doc, logical, sel, ok)
	}, ui.saved, ui.modal())
}

func (ui *App) exportPDF() {
	doc, logical := ui.session.Store().Document(), ui.board.Logical()
	saveTo(ui.win, "board.pdf", func(w io.Writer) error {
		return ui.exporter.PDF(w, doc, logical)
	}, ui.saved, ui.modal())
}

func (ui *App) saved(name string) { ui.SetStatus("Saved " + name) }
