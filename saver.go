package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// saver writes the latest document to path once changes have been quiet
// for delay. An empty path means nothing is persisted.
type saver struct {
	delay time.Duration

	// held across a whole write so flushes land in order
	writeMu sync.Mutex

	mu      sync.Mutex
	path    string
	timer   *time.Timer
	pending *state.Document
	saves   int
}

func newSaver(path string, delay time.Duration) *saver {
	return &saver{path: path, delay: delay}
}

// Schedule replaces the pending document and restarts the delay.
func (s *saver) Schedule(doc state.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return
	}
	s.pending = &doc
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.Flush)
}

// Retarget writes any pending edits to the current file and sends later
// ones to path instead. It must run before the store switches documents.
func (s *saver) Retarget(path string) {
	s.Flush()
	s.mu.Lock()
	old := s.path
	s.path = path
	s.mu.Unlock()
	logx.Logger().Info("[STORE] autosave target changed", "from", old, "to", path)
}

// Flush writes the pending document now, if there is one. It returns only
// after any write already in progress has finished.
func (s *saver) Flush() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	doc, path := s.pending, s.path
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	if doc == nil || path == "" {
		return
	}
	if err := writeDocument(path, *doc); err != nil {
		logx.Logger().Error("[STORE] save failed", "path", path, "err", err)
		return
	}
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	logx.Logger().Debug("[STORE] saved", "path", path, "strokes", len(doc.Strokes))
}

// writeDocument replaces path atomically.
func writeDocument(path string, doc state.Document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".inkboard-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := state.Encode(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *saver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// autosave keeps docPath in step with store. The returned func is the
// hook to call before another document is opened: path is the opened
// file, or empty when it is not a local file.
func autosave(store *state.Store, docPath string, delay time.Duration) (s *saver, opening func(path string)) {
	s = newSaver(docPath, delay)
	store.Subscribe(func(c state.Change) { s.Schedule(c.Document) })
	return s, s.Retarget
}
