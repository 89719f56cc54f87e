package state

import (
	"time"

	"github.com/google/uuid"
)

// IDFunc produces stroke identifiers. NewStrokeID is the default.
type IDFunc func() string

// ClockFunc reports the current instant. time.Now is the default.
type ClockFunc func() time.Time

// NewStrokeID returns a fresh random stroke identifier.
func NewStrokeID() string {
	return uuid.NewString()
}
