package state

import (
	"github.com/chewxy/math32"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DistanceSquared returns the squared euclidean distance between a and b.
func DistanceSquared(a, b Point) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// DistanceToSegmentSquared returns the squared distance from p to the
// closest point of the segment a-b. A degenerate segment (a == b) is treated
// as the point a.
func DistanceToSegmentSquared(p, a, b Point) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return DistanceSquared(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math32.Max(0, math32.Min(1, t))
	return DistanceSquared(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// DistanceToPolylineSquared returns the minimum squared distance from p to
// the polyline through points. A single point is measured directly. An
// empty polyline is infinitely far away.
func DistanceToPolylineSquared(p Point, points []Point) float32 {
	switch len(points) {
	case 0:
		return math32.Inf(1)
	case 1:
		return DistanceSquared(p, points[0])
	}
	best := math32.Inf(1)
	for i := 1; i < len(points); i++ {
		if d := DistanceToSegmentSquared(p, points[i-1], points[i]); d < best {
			best = d
		}
	}
	return best
}

// ToFixed converts a logical point to rasterizer coordinates.
func ToFixed(p Point) fixed.Point26_6 {
	return rasterx.ToFixedP(float64(p.X), float64(p.Y))
}

// BuildPolyline returns a path that starts at points[0] and draws a
// straight line to every following point in order. No points, no path.
func BuildPolyline(points []Point) rasterx.Path {
	var path rasterx.Path
	if len(points) == 0 {
		return path
	}
	path.Start(ToFixed(points[0]))
	for _, p := range points[1:] {
		path.Line(ToFixed(p))
	}
	return path
}
