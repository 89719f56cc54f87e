package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/state"
)

func line(id string, width float32, pts ...state.Point) state.Stroke {
	return state.Stroke{ID: id, Points: pts, Color: "#000000", Width: width, Tool: state.ToolPen}
}

func doc(strokes ...state.Stroke) state.Document {
	return state.Document{Version: state.DocumentVersion, Strokes: strokes}
}

func isInk(c color.RGBA) bool   { return c.R < 64 && c.G < 64 && c.B < 64 }
func isPaper(c color.RGBA) bool { return c.R == 255 && c.G == 255 && c.B == 255 }

func TestTargetSize(t *testing.T) {
	assert.Equal(t, Size{1240, 1754}, TargetSize(state.Size{Width: 1000, Height: 1400}))
	assert.Equal(t, Size{1754, 1240}, TargetSize(state.Size{Width: 1400, Height: 1000}))
	assert.Equal(t, Size{1240, 1754}, TargetSize(state.Size{Width: 800, Height: 800}))
}

func TestRegionSize(t *testing.T) {
	tests := []struct {
		name string
		sel  state.Rect
		want Size
	}{
		{"capped by scale", state.Rect{X: 100, Y: 100, Width: 200, Height: 100}, Size{800, 400}},
		{"capped by dimension", state.Rect{Width: 1000, Height: 500}, Size{2048, 1024}},
		{"tall", state.Rect{Width: 300, Height: 1024}, Size{600, 2048}},
		{"raised to minimum", state.Rect{Width: 10, Height: 10}, Size{100, 100}},
		{"one side raised", state.Rect{Width: 200, Height: 10}, Size{800, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionSize(tt.sel))
		})
	}
}

func TestRenderPageFitsAndCenters(t *testing.T) {
	logical := state.Size{Width: 1000, Height: 1400}
	d := doc(line("h", 10, state.Point{X: 100, Y: 700}, state.Point{X: 900, Y: 700}))

	img, err := RenderPage(d, logical, TargetSize(logical))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1240, 1754), img.Bounds())

	// scale 1.24, vertical offset 9: logical y 700 lands on row 877
	assert.True(t, isInk(img.RGBAAt(620, 877)))
	assert.True(t, isInk(img.RGBAAt(130, 877)))
	assert.True(t, isPaper(img.RGBAAt(620, 860)))
	assert.True(t, isPaper(img.RGBAAt(620, 895)))
	assert.True(t, isPaper(img.RGBAAt(1130, 877)))
	assert.True(t, isPaper(img.RGBAAt(5, 5)))
}

func TestRenderPageSinglePointDot(t *testing.T) {
	logical := state.Size{Width: 1240, Height: 1754}
	img, err := RenderPage(doc(line("dot", 20, state.Point{X: 300, Y: 300})), logical, TargetSize(logical))
	require.NoError(t, err)
	assert.True(t, isInk(img.RGBAAt(300, 300)))
	assert.True(t, isPaper(img.RGBAAt(300, 330)))
}

func TestRenderPageBackgroundAndColor(t *testing.T) {
	logical := state.Size{Width: 1240, Height: 1754}
	s := line("red", 12, state.Point{X: 100, Y: 100}, state.Point{X: 200, Y: 100})
	s.Color = "#ff0000"

	img, err := RenderPage(doc(s), logical, TargetSize(logical), WithBackground(color.Black))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(5, 5))
	got := img.RGBAAt(150, 100)
	assert.Greater(t, got.R, uint8(200))
	assert.Less(t, got.G, uint8(40))
}

func TestRenderRegion(t *testing.T) {
	logical := state.Size{Width: 1000, Height: 1000}
	sel := state.Rect{X: 100, Y: 100, Width: 200, Height: 100}
	d := doc(
		line("in", 4, state.Point{X: 150, Y: 150}, state.Point{X: 250, Y: 150}),
		line("out", 4, state.Point{X: 500, Y: 500}, state.Point{X: 600, Y: 500}),
	)

	img, err := RenderRegion(d, logical, sel)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 800, 400), img.Bounds())

	assert.True(t, isInk(img.RGBAAt(400, 200)))
	assert.True(t, isPaper(img.RGBAAt(400, 100)))
	assert.True(t, isPaper(img.RGBAAt(700, 200)))
}

func TestRenderDoesNotModifyDocument(t *testing.T) {
	logical := state.Size{Width: 1000, Height: 1000}
	d := doc(line("a", 3, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 20}))
	before := d.Strokes[0].Points[0]

	_, err := FullPage(d, logical, TargetSize(logical))
	require.NoError(t, err)
	assert.Equal(t, before, d.Strokes[0].Points[0])
}

func TestInvalidInput(t *testing.T) {
	d := doc()
	_, err := FullPage(d, state.Size{}, Size{100, 100})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = FullPage(d, state.Size{Width: 10, Height: 10}, Size{0, 100})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Region(d, state.Size{Width: 10, Height: 10}, state.Rect{Width: 0, Height: 5})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = FullPage(d, state.Size{Width: 10, Height: 10}, Size{MaxPixels, 2})
	assert.ErrorIs(t, err, ErrAllocate)
}

func TestFormats(t *testing.T) {
	logical := state.Size{Width: 1000, Height: 1400}
	d := doc(line("a", 3, state.Point{X: 10, Y: 10}, state.Point{X: 500, Y: 500}))

	for _, f := range []Format{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF} {
		t.Run(string(f), func(t *testing.T) {
			data, err := FullPage(d, logical, TargetSize(logical), WithFormat(f))
			require.NoError(t, err)

			cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, string(f), name)
			assert.Equal(t, 1240, cfg.Width)
			assert.Equal(t, 1754, cfg.Height)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, ".JPG": FormatJPEG, "jpeg": FormatJPEG, "tif": FormatTIFF, "bmp": FormatBMP} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
	assert.Equal(t, ".jpg", FormatJPEG.Ext())
	assert.Equal(t, ".png", FormatPNG.Ext())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeFailure(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.ErrorIs(t, Encode(failWriter{}, img, FormatPNG), ErrEncode)
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, img, Format("webp")), ErrEncode)
}

func TestPDF(t *testing.T) {
	d := doc(
		line("a", 3, state.Point{X: 10, Y: 10}, state.Point{X: 200, Y: 300}),
		line("dot", 6, state.Point{X: 50, Y: 50}),
		line("empty", 3),
	)
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, d, state.Size{Width: 800, Height: 600}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, PDF(&buf, d, state.Size{Width: -1, Height: 5}), ErrInvalidSize)
}

func TestThumbnail(t *testing.T) {
	logical := state.Size{Width: 1000, Height: 1400}
	d := doc(line("a", 20, state.Point{X: 0, Y: 700}, state.Point{X: 1000, Y: 700}))

	img, err := Thumbnail(d, logical, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dy())
	assert.Equal(t, 141, img.Bounds().Dx())

	big, err := Thumbnail(d, logical, 4000)
	require.NoError(t, err)
	assert.Equal(t, 1754, big.Bounds().Dy())

	_, err = Thumbnail(d, logical, 0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestXformVisibleInvertsApply(t *testing.T) {
	tf := xform{scale: 2, offset: state.Point{X: 10, Y: -20}}
	assert.Equal(t, state.Point{X: 30, Y: 0}, tf.apply(state.Point{X: 10, Y: 10}))

	view := tf.visible(Size{Width: 200, Height: 100})
	assert.Equal(t, state.Rect{X: -5, Y: 10, Width: 100, Height: 50}, view)
	assert.Equal(t, state.Point{}, tf.apply(state.Point{X: view.X, Y: view.Y}))
}
