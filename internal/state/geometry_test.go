package state

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/math/fixed"
)

func TestDistanceSquared(t *testing.T) {
	assert.Equal(t, float32(25), DistanceSquared(Point{0, 0}, Point{3, 4}))
	assert.Equal(t, float32(0), DistanceSquared(Point{7, 7}, Point{7, 7}))
}

func TestDistanceToSegmentSquared(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	tests := []struct {
		name string
		p    Point
		want float32
	}{
		{"above middle", Point{5, 3}, 9},
		{"on segment", Point{4, 0}, 0},
		{"before start clamps to a", Point{-3, 4}, 25},
		{"past end clamps to b", Point{13, 4}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceToSegmentSquared(tt.p, a, b), 1e-4)
		})
	}
}

func TestDistanceToSegmentSquaredDegenerate(t *testing.T) {
	a := Point{3, 3}
	for _, p := range []Point{{0, 0}, {3, 3}, {10, -2}} {
		assert.Equal(t, DistanceSquared(p, a), DistanceToSegmentSquared(p, a, a))
	}
}

func TestDistanceToPolylineSquared(t *testing.T) {
	assert.True(t, math32.IsInf(DistanceToPolylineSquared(Point{}, nil), 1))
	assert.Equal(t, float32(2), DistanceToPolylineSquared(Point{1, 1}, []Point{{0, 0}}))

	zigzag := []Point{{0, 0}, {10, 0}, {10, 10}}
	assert.InDelta(t, 4, DistanceToPolylineSquared(Point{12, 5}, zigzag), 1e-4)
}

func TestBuildPolyline(t *testing.T) {
	assert.Empty(t, BuildPolyline(nil))

	path := BuildPolyline([]Point{{1, 2}, {3, 4}, {5, 6}})
	want := rasterx.Path{
		fixed.Int26_6(rasterx.PathMoveTo), 64, 128,
		fixed.Int26_6(rasterx.PathLineTo), 192, 256,
		fixed.Int26_6(rasterx.PathLineTo), 320, 384,
	}
	assert.Equal(t, want, path)
}
