package ui

import (
	"errors"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"InkBoard/internal/config"
	"InkBoard/internal/export"
	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

var errNoSelection = errors.New("nothing selected")

// Exporter writes the session's document to files in the configured
// formats.
type Exporter struct {
	Config config.Export
}

func (e Exporter) format() export.Format {
	f, err := export.ParseFormat(e.Config.Format)
	if err != nil {
		return export.FormatPNG
	}
	return f
}

// Page writes the whole page at the canonical resolution for logical.
func (e Exporter) Page(w io.Writer, doc state.Document, logical state.Size) error {
	target := e.Config.Canonical().For(logical)
	data, err := export.FullPage(doc, logical, target, e.Config.Options()...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Selection writes the region under sel.
func (e Exporter) Selection(w io.Writer, doc state.Document, logical state.Size, sel state.Rect, ok bool) error {
	if !ok {
		return errNoSelection
	}
	data, err := export.Region(doc, logical, sel, e.Config.Options()...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (e Exporter) PDF(w io.Writer, doc state.Document, logical state.Size) error {
	return export.PDF(w, doc, logical)
}

// saveTo runs write against a file the user picks, named name by default.
// closed runs when the dialog goes away, whatever the outcome.
func saveTo(win fyne.Window, name string, write func(io.Writer) error, done func(string), closed func()) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		defer closed()
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if wc == nil {
			return
		}
		werr := write(wc)
		if cerr := wc.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			logx.Logger().Warn("[UI] save failed", "uri", wc.URI().String(), "err", werr)
			dialog.ShowError(werr, win)
			return
		}
		done(wc.URI().Name())
	}, win)
	d.SetFileName(name)
	d.Show()
}

// openFrom reads a document from a file the user picks.
func openFrom(win fyne.Window, done func(state.Document, fyne.URI), closed func()) {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		defer closed()
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		doc, err := state.Decode(rc)
		if err != nil {
			logx.Logger().Warn("[UI] open failed", "uri", rc.URI().String(), "err", err)
			dialog.ShowError(fmt.Errorf("open %s: %w", rc.URI().Name(), err), win)
			return
		}
		done(doc, rc.URI())
	}, win)
}
