package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"InkBoard/internal/logx"
	"InkBoard/internal/state"
)

// PDF writes doc as a single vector page the size of the logical canvas,
// one PDF point per logical unit.
func PDF(w io.Writer, doc state.Document, logical state.Size) error {
	if !logical.Valid() {
		return fmt.Errorf("%w: logical canvas %vx%v", ErrInvalidSize, logical.Width, logical.Height)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(logical.Width), Ht: float64(logical.Height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, s := range doc.Strokes {
		if len(s.Points) == 0 {
			continue
		}
		c, err := state.ParseColor(s.Color)
		if err != nil {
			logx.Logger().Warn("[EXPORT] bad stroke color, using black", "id", s.ID, "err", err)
			c = color.NRGBA{A: 255}
		}
		p.SetAlpha(float64(c.A)/255, "Normal")

		first := s.Points[0]
		if len(s.Points) == 1 {
			p.SetFillColor(int(c.R), int(c.G), int(c.B))
			p.Circle(float64(first.X), float64(first.Y), float64(s.Width)/2, "F")
			continue
		}
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetLineWidth(float64(s.Width))
		p.MoveTo(float64(first.X), float64(first.Y))
		for _, pt := range s.Points[1:] {
			p.LineTo(float64(pt.X), float64(pt.Y))
		}
		p.DrawPath("D")
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("%w: pdf: %w", ErrEncode, err)
	}
	return nil
}
