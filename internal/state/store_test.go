package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEmitsChanges(t *testing.T) {
	s := NewStore()
	var got []Change
	unsubscribe := s.Subscribe(func(c Change) { got = append(got, c) })

	s.Add(stroke("A"))
	s.Add(stroke("B"))
	s.Undo()

	require.Len(t, got, 3)
	assert.Equal(t, []string{"A"}, ids(got[2].Document.Strokes))
	assert.Equal(t, DocumentVersion, got[2].Document.Version)
	assert.True(t, got[2].CanUndo)
	assert.True(t, got[2].CanRedo)

	unsubscribe()
	s.Redo()
	assert.Len(t, got, 3)
	assert.Equal(t, []string{"A", "B"}, ids(s.Strokes()))
}

func TestStoreSkipsNoops(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func(Change) { calls++ })

	assert.False(t, s.Undo())
	assert.False(t, s.Redo())
	assert.False(t, s.Clear())
	assert.False(t, s.Erase("nope"))
	assert.Zero(t, calls)
}

func TestStoreOpenAlwaysNotifies(t *testing.T) {
	s := NewStore()
	s.Add(stroke("A"))

	var last Change
	s.Subscribe(func(c Change) { last = c })
	s.Open(Document{Version: 1, Strokes: []Stroke{stroke("P")}})

	assert.Equal(t, []string{"P"}, ids(last.Document.Strokes))
	assert.False(t, last.CanUndo)
	assert.False(t, last.CanRedo)
	assert.False(t, s.CanUndo())
}

func TestStoreMultipleListeners(t *testing.T) {
	s := NewStore()
	var a, b int
	unA := s.Subscribe(func(Change) { a++ })
	s.Subscribe(func(Change) { b++ })

	s.Add(stroke("A"))
	unA()
	s.Clear()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}
