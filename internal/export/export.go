// Package export renders documents to fixed-resolution raster images and
// to PDF. Rendering never modifies the document.
package export

import (
	"errors"
	"image/color"

	"github.com/chewxy/math32"

	"InkBoard/internal/state"
)

var (
	ErrInvalidSize      = errors.New("invalid size")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrAllocate         = errors.New("cannot allocate surface")
	ErrEncode           = errors.New("cannot encode image")
)

const (
	// RegionMaxDimension caps the longer side of a region export.
	RegionMaxDimension = 2048
	// RegionMaxScale caps the magnification of a region export.
	RegionMaxScale = 4
	// RegionMinDimension is the smallest side of a region export.
	RegionMinDimension = 100
	// MaxPixels bounds the surface an export may allocate.
	MaxPixels = 64 << 20
)

// Size is a raster resolution in pixels.
type Size struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Canonical holds the two fixed export resolutions.
type Canonical struct {
	Portrait  Size `toml:"portrait"`
	Landscape Size `toml:"landscape"`
}

// DefaultCanonical is A4 at 150 dpi.
var DefaultCanonical = Canonical{
	Portrait:  Size{Width: 1240, Height: 1754},
	Landscape: Size{Width: 1754, Height: 1240},
}

// For picks landscape for canvases wider than tall, portrait otherwise.
func (c Canonical) For(logical state.Size) Size {
	if logical.Width > logical.Height {
		return c.Landscape
	}
	return c.Portrait
}

// TargetSize is DefaultCanonical.For.
func TargetSize(logical state.Size) Size { return DefaultCanonical.For(logical) }

// RegionScale returns the magnification used to export sel: as large as
// possible without the longer side passing RegionMaxDimension, and never
// more than RegionMaxScale.
func RegionScale(sel state.Rect) float32 {
	longest := math32.Max(sel.Width, sel.Height)
	return math32.Min(RegionMaxScale, RegionMaxDimension/longest)
}

// RegionSize returns the output resolution for exporting sel. It keeps the
// aspect ratio of sel except where a side is raised to RegionMinDimension.
func RegionSize(sel state.Rect) Size {
	scale := RegionScale(sel)
	return Size{
		Width:  max(RegionMinDimension, int(math32.Round(sel.Width*scale))),
		Height: max(RegionMinDimension, int(math32.Round(sel.Height*scale))),
	}
}

type options struct {
	format     Format
	background color.Color
}

// Option configures an export.
type Option func(*options)

// WithFormat selects the image container. PNG is the default.
func WithFormat(f Format) Option { return func(o *options) { o.format = f } }

// WithBackground sets the fill drawn before any stroke. White is the default.
func WithBackground(c color.Color) Option { return func(o *options) { o.background = c } }

func buildOptions(opts []Option) options {
	o := options{format: FormatPNG, background: color.White}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
