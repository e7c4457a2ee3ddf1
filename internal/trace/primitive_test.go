package trace

import (
	"math"
	"testing"

	"pcb-transition/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"TRACK", KindTrack},
		{"Track", KindTrack},
		{"pcb_track", KindTrack},
		{"ARC", KindArc},
		{"ArcTrack", KindArc},
		{"LEAD", KindLead},
		{"Via", KindUnknown},
		{"PAD", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.tag))
			assert.Equal(t, tt.want != KindUnknown, IsTraceLike(tt.tag))
		})
	}
}

func TestCorrectionsWidth(t *testing.T) {
	c := DefaultCorrections()

	assert.Equal(t, 8.0, c.Width(KindTrack, Float(8), nil))
	assert.Equal(t, 6.0, c.Width(KindTrack, nil, Float(6)))
	assert.Equal(t, 6.0, c.Width(KindTrack, Float(0), Float(6)), "zero width falls back to lineWidth")
	assert.Equal(t, 10.0, c.Width(KindLead, nil, nil))
	assert.Equal(t, 80.0, c.Width(KindArc, Float(8), nil))
	assert.Equal(t, 100.0, c.Width(KindArc, nil, nil))
}

func TestCorrectionsArcAngle(t *testing.T) {
	c := DefaultCorrections()

	assert.InDelta(t, 90.0, c.ArcAngle(KindArc, Float(math.Pi/2)), 1e-9)
	assert.Equal(t, 90.0, c.ArcAngle(KindArc, Float(90)))
	assert.InDelta(t, -180.0, c.ArcAngle(KindArc, Float(-math.Pi)), 1e-9)
	assert.Equal(t, 0.0, c.ArcAngle(KindTrack, Float(1)))
	assert.Equal(t, 0.0, c.ArcAngle(KindArc, nil))

	c.RadianThreshold = 0
	assert.Equal(t, 1.5, c.ArcAngle(KindArc, Float(1.5)), "threshold 0 disables the radian guess")
}

func TestCorrectionsInverse(t *testing.T) {
	c := DefaultCorrections()
	for _, deg := range []float64{5, 18, 90, -270, 359} {
		raw := c.RawArcAngle(deg)
		assert.InDelta(t, deg, c.ArcAngle(KindArc, &raw), 1e-9)
	}
	w := c.RawWidth(KindArc, 25)
	assert.Equal(t, 2.5, w)
	assert.Equal(t, 25.0, c.Width(KindArc, &w, nil))
	assert.Equal(t, 25.0, c.RawWidth(KindTrack, 25))

	identity := Corrections{ArcWidthScale: 1, DefaultWidth: 10}
	assert.Equal(t, 5.0, identity.RawArcAngle(5))
}

func TestFromRaw(t *testing.T) {
	raw := NewRaw(7, "TRACK", "1", 12, 0, 0, 100, 0)
	raw.Net = "GND"
	raw.Locked = true

	p, err := FromRaw(raw, DefaultCorrections())
	require.NoError(t, err)
	assert.Equal(t, Primitive{
		Index:  7,
		Kind:   KindTrack,
		Layer:  "1",
		Width:  12,
		Locked: true,
		Net:    "GND",
		Start:  geometry.NewPoint2D(0, 0),
		End:    geometry.NewPoint2D(100, 0),
	}, p)
	assert.Equal(t, "Track#7", p.String())
}

func TestFromRawInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  RawPrimitive
	}{
		{"missing start", RawPrimitive{Type: "TRACK", EndX: Float(1), EndY: Float(1)}},
		{"nan end", NewRaw(1, "TRACK", "1", 10, 0, 0, math.NaN(), 0)},
		{"inf start", NewRaw(1, "ARC", "1", 10, math.Inf(1), 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(tt.raw, DefaultCorrections())
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}

	_, err := FromRaw(NewRaw(1, "VIA", "1", 10, 0, 0, 0, 0), DefaultCorrections())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCoordinate)
}

func TestConvert(t *testing.T) {
	raw := []RawPrimitive{
		NewRaw(1, "TRACK", "1", 10, 0, 0, 100, 0),
		NewRaw(2, "VIA", "1", 10, 5, 5, 5, 5),
		NewRaw(3, "TRACK", "1", 10, math.NaN(), 0, 100, 0),
		NewRaw(4, "ARC", "1", 5, 150, 0, 250, 0),
	}

	sel := Convert(raw, DefaultCorrections())
	assert.Equal(t, 3, sel.TraceLike)
	require.Len(t, sel.Primitives, 2)
	assert.Equal(t, 1, sel.Primitives[0].Index)
	assert.Equal(t, 4, sel.Primitives[1].Index)
	assert.Equal(t, 50.0, sel.Primitives[1].Width)
	require.Len(t, sel.Rejected, 1)
	assert.ErrorIs(t, sel.Rejected[0], ErrInvalidCoordinate)
}

func TestBounds(t *testing.T) {
	p := Primitive{Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(100, 20), Width: 10}
	assert.Equal(t, geometry.Rect{X: -5, Y: -5, Width: 110, Height: 30}, p.Bounds())
}
