package transition

import (
	"fmt"
	"math"

	"pcb-transition/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// SegmentKind distinguishes straight and arc step segments.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentArc
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "line"
	case SegmentArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Segment is one generated step of a transition.
type Segment struct {
	Kind  SegmentKind
	Start geometry.Point2D
	End   geometry.Point2D
	Width float64
	Net   string
	Layer string

	// Arc segments only.
	Center     geometry.Point2D
	Radius     float64
	StartAngle float64 // radians
	Sweep      float64 // degrees, this segment only
}

// Length returns the centerline length of the segment.
func (s Segment) Length() float64 {
	if s.Kind == SegmentArc {
		return s.Radius * math.Abs(s.Sweep) * math.Pi / 180
	}
	return s.Start.Distance(s.End)
}

// LineRequest describes a straight stepped transition from P1 (width W1) to
// P2 (width W2).
type LineRequest struct {
	Net      string
	Layer    string
	P1       geometry.Point2D
	W1       float64
	P2       geometry.Point2D
	W2       float64
	Segments int
}

// ArcRequest describes a stepped transition along a circular arc. The arc
// runs from StartAngle through Sweep radians around Center at the radius of
// P1.
type ArcRequest struct {
	Net        string
	Layer      string
	P1         geometry.Point2D
	W1         float64
	P2         geometry.Point2D
	W2         float64
	Segments   int
	Center     geometry.Point2D
	StartAngle float64
	Sweep      float64
}

// stepParams returns n+1 evenly spaced parameters from 0 to 1.
func stepParams(n int) []float64 {
	ts := floats.Span(make([]float64, n+1), 0, 1)
	ts[n] = 1
	return ts
}

// stepWidth samples the linear width ramp at the middle of step i.
func stepWidth(w1, w2 float64, ts []float64, i int) float64 {
	return geometry.Lerp(w1, w2, (ts[i]+ts[i+1])/2)
}

// GenerateLineSteps splits the straight run from P1 to P2 into Segments
// equal steps, ordered from P1 to P2. Each step's width is the linear ramp
// sampled at its midpoint.
func GenerateLineSteps(req LineRequest, cfg Config) ([]Segment, error) {
	if req.Segments < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSegmentCount, req.Segments)
	}
	distance := req.P1.Distance(req.P2)
	if math.IsNaN(distance) || distance < cfg.MinCreateDistance {
		return nil, fmt.Errorf("%w: %.3f mil", ErrPointsTooClose, distance)
	}
	dir := geometry.Normalize(req.P2.Sub(req.P1))
	if dir.IsZero() {
		return nil, ErrDegenerateDirection
	}

	ts := stepParams(req.Segments)
	points := make([]geometry.Point2D, len(ts))
	for i, t := range ts {
		points[i] = req.P1.Add(dir.Scale(distance * t))
	}
	points[len(points)-1] = req.P2

	segments := make([]Segment, req.Segments)
	for i := range segments {
		segments[i] = Segment{
			Kind:  SegmentLine,
			Start: points[i],
			End:   points[i+1],
			Width: stepWidth(req.W1, req.W2, ts, i),
			Net:   req.Net,
			Layer: req.Layer,
		}
	}
	return segments, nil
}

// GenerateArcSteps splits an arc run into Segments equal angular steps at
// constant radius, ordered from the start angle. Widths follow the same
// midpoint-sampled ramp as GenerateLineSteps.
func GenerateArcSteps(req ArcRequest, cfg Config) ([]Segment, error) {
	if req.Segments < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSegmentCount, req.Segments)
	}
	if d := req.P1.Distance(req.P2); math.IsNaN(d) || d < cfg.MinCreateDistance {
		return nil, fmt.Errorf("%w: %.3f mil", ErrPointsTooClose, d)
	}
	radius := req.P1.Distance(req.Center)
	if radius == 0 || req.Sweep == 0 || math.IsNaN(radius) {
		return nil, ErrDegenerateDirection
	}

	arc := geometry.Arc{Center: req.Center, Radius: radius, StartAngle: req.StartAngle, Sweep: req.Sweep}
	ts := stepParams(req.Segments)
	stepSweep := req.Sweep * 180 / math.Pi / float64(req.Segments)

	segments := make([]Segment, req.Segments)
	for i := range segments {
		segments[i] = Segment{
			Kind:       SegmentArc,
			Start:      arc.PointAt(ts[i]),
			End:        arc.PointAt(ts[i+1]),
			Width:      stepWidth(req.W1, req.W2, ts, i),
			Net:        req.Net,
			Layer:      req.Layer,
			Center:     req.Center,
			Radius:     radius,
			StartAngle: req.StartAngle + req.Sweep*ts[i],
			Sweep:      stepSweep,
		}
	}
	return segments, nil
}

// ArcRequestThrough builds an ArcRequest for the arc from P1 to P2 that
// sweeps sweepDeg degrees.
func ArcRequestThrough(line LineRequest, sweepDeg float64) (ArcRequest, error) {
	arc, err := geometry.ArcThroughChord(line.P1, line.P2, sweepDeg)
	if err != nil {
		return ArcRequest{}, fmt.Errorf("arc from %v to %v sweeping %g°: %w", line.P1, line.P2, sweepDeg, err)
	}
	return ArcRequest{
		Net:        line.Net,
		Layer:      line.Layer,
		P1:         line.P1,
		W1:         line.W1,
		P2:         line.P2,
		W2:         line.W2,
		Segments:   line.Segments,
		Center:     arc.Center,
		StartAngle: arc.StartAngle,
		Sweep:      arc.Sweep,
	}, nil
}

// Request builds the LineRequest bridging gap with n segments.
func (g Gap) Request(n int) LineRequest {
	return LineRequest{
		Net:      g.Net(),
		Layer:    g.Layer(),
		P1:       g.P1,
		W1:       g.First.Width,
		P2:       g.P2,
		W2:       g.Second.Width,
		Segments: n,
	}
}
