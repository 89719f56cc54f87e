package export

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"

	"InkBoard/internal/state"
)

// Thumbnail renders the full page and scales it down so its longer side is
// maxSide pixels. Pages already smaller than maxSide are returned as is.
func Thumbnail(doc state.Document, logical state.Size, maxSide int, opts ...Option) (*image.RGBA, error) {
	if maxSide <= 0 {
		return nil, fmt.Errorf("%w: thumbnail side %d", ErrInvalidSize, maxSide)
	}
	page, err := RenderPage(doc, logical, TargetSize(logical), opts...)
	if err != nil {
		return nil, err
	}
	b := page.Bounds()
	longest := max(b.Dx(), b.Dy())
	if longest <= maxSide {
		return page, nil
	}
	w := max(1, b.Dx()*maxSide/longest)
	h := max(1, b.Dy()*maxSide/longest)
	return transform.Resize(page, w, h, transform.Linear), nil
}
