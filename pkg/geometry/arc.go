package geometry

import (
	"errors"
	"math"
)

// ErrDegenerateArc is returned when no circular arc joins the given points
// with the requested sweep.
var ErrDegenerateArc = errors.New("degenerate arc")

// Arc describes a circular arc by its center, radius, start angle and signed
// sweep. Angles are in radians; a positive sweep runs counter-clockwise.
type Arc struct {
	Center     Point2D
	Radius     float64
	StartAngle float64
	Sweep      float64
}

// PointAt returns the point on the arc at parameter t in [0, 1].
func (a Arc) PointAt(t float64) Point2D {
	angle := a.StartAngle + a.Sweep*t
	return Point2D{
		X: a.Center.X + a.Radius*math.Cos(angle),
		Y: a.Center.Y + a.Radius*math.Sin(angle),
	}
}

// ArcThroughChord returns the arc that starts at p1, ends at p2 and sweeps
// sweepDeg degrees. The sweep must be non-zero and strictly inside
// (-360, 360).
func ArcThroughChord(p1, p2 Point2D, sweepDeg float64) (Arc, error) {
	chord := p1.Distance(p2)
	if chord == 0 || !p1.IsFinite() || !p2.IsFinite() {
		return Arc{}, ErrDegenerateArc
	}
	if math.Abs(sweepDeg) < 1e-9 || math.Abs(sweepDeg) >= 360 || math.IsNaN(sweepDeg) {
		return Arc{}, ErrDegenerateArc
	}

	theta := sweepDeg * math.Pi / 180
	u := Normalize(p2.Sub(p1))
	left := Point2D{X: -u.Y, Y: u.X}
	mid := p1.Add(p2).Scale(0.5)

	// Signed offset from the chord midpoint to the center along the left normal.
	h := (chord / 2) / math.Tan(theta/2)
	center := mid.Add(left.Scale(h))

	return Arc{
		Center:     center,
		Radius:     center.Distance(p1),
		StartAngle: math.Atan2(p1.Y-center.Y, p1.X-center.X),
		Sweep:      theta,
	}, nil
}

// SegmentQuad returns the four corners of the rectangle covering the segment
// a-b stroked with the given width, in winding order.
func SegmentQuad(a, b Point2D, width float64) [4]Point2D {
	dir := Normalize(b.Sub(a))
	n := Point2D{X: -dir.Y, Y: dir.X}.Scale(width / 2)
	return [4]Point2D{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}
