package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(NewPoint2D(0, 0), NewPoint2D(3, 4)), 1e-12)
	assert.Equal(t, 0.0, Distance(NewPoint2D(7, -2), NewPoint2D(7, -2)))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Point2D
		want Point2D
	}{
		{"x axis", NewPoint2D(10, 0), NewPoint2D(1, 0)},
		{"negative y", NewPoint2D(0, -3), NewPoint2D(0, -1)},
		{"diagonal", NewPoint2D(3, 4), NewPoint2D(0.6, 0.8)},
		{"zero", Point2D{}, Point2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 10.0, Lerp(10, 50, 0))
	assert.Equal(t, 50.0, Lerp(10, 50, 1))
	assert.Equal(t, 30.0, Lerp(10, 50, 0.5))
	// Not clamped outside [0, 1].
	assert.Equal(t, 90.0, Lerp(10, 50, 2))
	assert.Equal(t, -30.0, Lerp(10, 50, -1))
}

func TestPointsEqual(t *testing.T) {
	a := NewPoint2D(100, 100)
	assert.True(t, PointsEqual(a, NewPoint2D(100.9, 99.1), DefaultPointTolerance))
	assert.False(t, PointsEqual(a, NewPoint2D(101, 100), DefaultPointTolerance), "delta equal to tolerance is not equal")
	assert.False(t, PointsEqual(a, NewPoint2D(100, 98), DefaultPointTolerance))
	assert.True(t, PointsEqual(a, NewPoint2D(100.4, 100), 0.5))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, NewPoint2D(1, 2).IsFinite())
	assert.False(t, NewPoint2D(math.NaN(), 2).IsFinite())
	assert.False(t, NewPoint2D(1, math.Inf(-1)).IsFinite())
}

func TestBoundingBox(t *testing.T) {
	r := BoundingBox([]Point2D{{X: 5, Y: 1}, {X: -2, Y: 4}, {X: 3, Y: -6}})
	assert.Equal(t, Rect{X: -2, Y: -6, Width: 7, Height: 10}, r)
	assert.Equal(t, Rect{}, BoundingBox(nil))
	assert.Equal(t, Rect{X: -3, Y: -7, Width: 9, Height: 12}, r.Inset(1))
}

func TestAffineTransform(t *testing.T) {
	// Scale then translate: world (10, 20) -> (2*10+5, -1*20+100).
	tr := Translation(5, 100).Compose(Scale(2, -1))
	got := tr.Apply(NewPoint2D(10, 20))
	assert.InDelta(t, 25, got.X, 1e-12)
	assert.InDelta(t, 80, got.Y, 1e-12)
}
