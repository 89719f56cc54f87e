package state

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Point is a position in the canvas's logical coordinate space (origin top-left).
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Size is the logical size of a canvas.
type Size struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Tool names the instrument that produced a stroke.
type Tool string

const ToolPen Tool = "pen"

// Stroke is one committed pen gesture. Strokes are never modified after
// creation; erasing removes them whole.
type Stroke struct {
	ID        string    `json:"id"`
	Points    []Point   `json:"points"`
	Color     string    `json:"color"`
	Width     float32   `json:"width"`
	Tool      Tool      `json:"tool"`
	Timestamp time.Time `json:"timestamp"`
}

// DocumentVersion is the schema version written by Encode.
const DocumentVersion = 1

// Document is the serializable drawing state of one page. Stroke order is
// both creation order and render order: later strokes draw on top.
type Document struct {
	Version int      `json:"version"`
	Strokes []Stroke `json:"strokes"`
}

var namedColors = map[string]color.NRGBA{
	"black":  {A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
}

// ParseColor parses a stroke color: "#rgb", "#rrggbb", "#rrggbbaa" or one of
// the named colors black, white, red, green, blue and yellow.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing '#' prefix", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor is the inverse of ParseColor for hex output. Opaque colors
// are written as #rrggbb.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
