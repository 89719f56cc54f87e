package state

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle in logical space. X, Y is the top-left
// corner.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// RectFromPoints returns the rectangle spanning a and b, whichever corners
// they are.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math32.Min(a.X, b.X),
		Y:      math32.Min(a.Y, b.Y),
		Width:  math32.Abs(b.X - a.X),
		Height: math32.Abs(b.Y - a.Y),
	}
}

// Bounds returns the bounding rectangle of points. The zero Rect is
// returned for no points.
func Bounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math32.Min(minX, p.X)
		minY = math32.Min(minY, p.Y)
		maxX = math32.Max(maxX, p.X)
		maxY = math32.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Expand grows r by d on every side.
func (r Rect) Expand(d float32) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Contains reports whether p lies inside r or on its edge.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Overlaps reports whether r and o share at least an edge.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}
