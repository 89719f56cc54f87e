package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// xform maps logical coordinates to surface pixels: p*scale + offset.
type xform struct {
	scale  float32
	offset state.Point
}

func (t xform) apply(p state.Point) state.Point {
	return state.Point{X: p.X*t.scale + t.offset.X, Y: p.Y*t.scale + t.offset.Y}
}

// visible returns the logical rectangle that lands on a surface of size s.
func (t xform) visible(s Size) state.Rect {
	return state.Rect{
		X:      -t.offset.X / t.scale,
		Y:      -t.offset.Y / t.scale,
		Width:  float32(s.Width) / t.scale,
		Height: float32(s.Height) / t.scale,
	}
}

// FullPage renders every stroke of doc into a target-sized image, fitting
// the logical canvas inside it and centering it, and encodes the result.
func FullPage(doc state.Document, logical state.Size, target Size, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	img, err := renderPage(doc, logical, target, o)
	if err != nil {
		return nil, err
	}
	return encodeBytes(img, o.format)
}

// Region renders the part of doc inside sel, with the selection's top-left
// corner at the image origin, and encodes the result. The output size is
// RegionSize(sel).
func Region(doc state.Document, logical state.Size, sel state.Rect, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	img, err := renderRegion(doc, logical, sel, o)
	if err != nil {
		return nil, err
	}
	return encodeBytes(img, o.format)
}

// RenderPage is FullPage without the encoding step.
func RenderPage(doc state.Document, logical state.Size, target Size, opts ...Option) (*image.RGBA, error) {
	return renderPage(doc, logical, target, buildOptions(opts))
}

// RenderRegion is Region without the encoding step.
func RenderRegion(doc state.Document, logical state.Size, sel state.Rect, opts ...Option) (*image.RGBA, error) {
	return renderRegion(doc, logical, sel, buildOptions(opts))
}

func renderPage(doc state.Document, logical state.Size, target Size, o options) (*image.RGBA, error) {
	if !logical.Valid() {
		return nil, fmt.Errorf("%w: logical canvas %vx%v", ErrInvalidSize, logical.Width, logical.Height)
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidSize, target.Width, target.Height)
	}
	tw, th := float32(target.Width), float32(target.Height)
	scale := math32.Min(tw/logical.Width, th/logical.Height)
	tf := xform{
		scale: scale,
		offset: state.Point{
			X: (tw - logical.Width*scale) / 2,
			Y: (th - logical.Height*scale) / 2,
		},
	}
	return render(doc.Strokes, target, tf, o.background)
}

func renderRegion(doc state.Document, logical state.Size, sel state.Rect, o options) (*image.RGBA, error) {
	if !logical.Valid() {
		return nil, fmt.Errorf("%w: logical canvas %vx%v", ErrInvalidSize, logical.Width, logical.Height)
	}
	if sel.Empty() {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidSelection, sel.Width, sel.Height)
	}
	size := RegionSize(sel)
	scale := RegionScale(sel)
	tf := xform{
		scale:  scale,
		offset: state.Point{X: -sel.X * scale, Y: -sel.Y * scale},
	}
	return render(doc.Strokes, size, tf, o.background)
}

func allocate(size Size) (*image.RGBA, error) {
	if size.Width > MaxPixels || size.Height > MaxPixels || size.Width*size.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocate, size.Width, size.Height, MaxPixels)
	}
	return image.NewRGBA(image.Rect(0, 0, size.Width, size.Height)), nil
}

func render(strokes []state.Stroke, size Size, tf xform, bg color.Color) (*image.RGBA, error) {
	img, err := allocate(size)
	if err != nil {
		return nil, err
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(size.Width, size.Height, img, img.Bounds())
	stroker := rasterx.NewStroker(size.Width, size.Height, scanner)
	view := tf.visible(size)

	drawn := 0
	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		if !state.Bounds(s.Points).Expand(s.Width / 2).Overlaps(view) {
			continue
		}
		drawStroke(stroker, s, tf)
		drawn++
	}
	logx.Logger().Debug("[EXPORT] rendered", "width", size.Width, "height", size.Height,
		"strokes", drawn, "skipped", len(strokes)-drawn)
	return img, nil
}

func drawStroke(r *rasterx.Stroker, s state.Stroke, tf xform) {
	c, err := state.ParseColor(s.Color)
	if err != nil {
		logx.Logger().Warn("[EXPORT] bad stroke color, using black", "id", s.ID, "err", err)
		c = color.NRGBA{A: 255}
	}
	width := s.Width * tf.scale
	pts := make([]state.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = tf.apply(p)
	}

	r.SetColor(c)
	if len(pts) == 1 {
		rasterx.AddCircle(float64(pts[0].X), float64(pts[0].Y), float64(width/2), &r.Filler)
	} else {
		r.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
		state.BuildPolyline(pts).AddTo(r)
	}
	r.Draw()
	r.Clear()
}

func encodeBytes(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
