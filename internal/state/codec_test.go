package state

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{Strokes: []Stroke{{
		ID: "s1", Points: []Point{{1, 2}, {3.5, 4}}, Color: "#ff0000", Width: 2, Tool: ToolPen, Timestamp: ts,
	}}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	assert.Contains(t, buf.String(), `"version": 1`)

	got, err := Decode(&buf)
	require.NoError(t, err)
	doc.Version = DocumentVersion
	assert.Equal(t, doc, got)
}

func TestEncodeEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Document{}))
	assert.Contains(t, buf.String(), `"strokes": []`)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"future version", `{"version": 2, "strokes": []}`, ErrUnsupportedVersion},
		{"missing id", `{"strokes": [{"points": [{"x":1,"y":1}], "width": 1}]}`, ErrInvalidDocument},
		{"zero width", `{"strokes": [{"id": "a", "points": [{"x":1,"y":1}], "width": 0}]}`, ErrInvalidDocument},
		{"duplicate", `{"strokes": [{"id": "a", "width": 1}, {"id": "a", "width": 1}]}`, ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Decode(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestDecodeLegacyVersion(t *testing.T) {
	doc, err := Decode(strings.NewReader(`{"strokes": []}`))
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, doc.Version)
}
