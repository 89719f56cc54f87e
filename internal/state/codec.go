package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrInvalidDocument    = errors.New("invalid document")
)

// Encode writes doc as indented JSON, stamping the current schema version.
func Encode(w io.Writer, doc Document) error {
	doc.Version = DocumentVersion
	if doc.Strokes == nil {
		doc.Strokes = []Stroke{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// Decode reads a JSON document and checks it. Documents without a version
// field are read as version 1.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Version > DocumentVersion {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if err := Validate(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks the structural invariants a loaded document must meet.
func Validate(doc Document) error {
	seen := make(map[string]struct{}, len(doc.Strokes))
	for i, s := range doc.Strokes {
		if s.ID == "" {
			return fmt.Errorf("%w: stroke %d has no id", ErrInvalidDocument, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate stroke id %q", ErrInvalidDocument, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Width <= 0 {
			return fmt.Errorf("%w: stroke %q has width %v", ErrInvalidDocument, s.ID, s.Width)
		}
	}
	return nil
}
