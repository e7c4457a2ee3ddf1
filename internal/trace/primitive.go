// Package trace models the copper primitives a host PCB editor reports for
// the current selection: straight tracks, arcs and leads.
package trace

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"pcb-transition/pkg/geometry"
)

// ErrInvalidCoordinate is returned when a primitive reports a missing or
// non-finite endpoint coordinate.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Kind identifies the variant of a trace-like primitive.
type Kind int

const (
	KindUnknown Kind = iota
	KindTrack
	KindArc
	KindLead
)

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "Track"
	case KindArc:
		return "Arc"
	case KindLead:
		return "Lead"
	default:
		return "Unknown"
	}
}

// Classify maps a host primitive type tag to a Kind using a case-insensitive
// substring match. Tags that are not trace-like return KindUnknown.
func Classify(typeTag string) Kind {
	tag := strings.ToUpper(typeTag)
	switch {
	case strings.Contains(tag, "ARC"):
		return KindArc
	case strings.Contains(tag, "TRACK"):
		return KindTrack
	case strings.Contains(tag, "LEAD"):
		return KindLead
	default:
		return KindUnknown
	}
}

// IsTraceLike reports whether the type tag names a track, arc or lead.
func IsTraceLike(typeTag string) bool {
	return Classify(typeTag) != KindUnknown
}

// Primitive is a validated, unit-corrected trace primitive.
type Primitive struct {
	Index  int
	Kind   Kind
	Layer  string
	Width  float64 // mils
	Locked bool
	Net    string
	Start  geometry.Point2D
	End    geometry.Point2D

	// ArcAngle is the arc sweep in degrees. Zero for non-arcs.
	ArcAngle float64
}

// Endpoints returns the start and end points in that order.
func (p Primitive) Endpoints() [2]geometry.Point2D {
	return [2]geometry.Point2D{p.Start, p.End}
}

// Bounds returns the bounding rectangle expanded by half the trace width.
func (p Primitive) Bounds() geometry.Rect {
	return geometry.BoundingBox([]geometry.Point2D{p.Start, p.End}).Inset(p.Width / 2)
}

func (p Primitive) String() string {
	return fmt.Sprintf("%s#%d", p.Kind, p.Index)
}

// RawPrimitive is a primitive as reported by the host, before validation and
// unit correction. Optional values are nil when the host did not report them.
type RawPrimitive struct {
	GlobalIndex int      `json:"globalIndex"`
	Type        string   `json:"pcbItemPrimitiveType"`
	Layer       string   `json:"layerId"`
	Width       *float64 `json:"width,omitempty"`
	LineWidth   *float64 `json:"lineWidth,omitempty"`
	Locked      bool     `json:"locked,omitempty"`
	Net         string   `json:"net,omitempty"`
	StartX      *float64 `json:"startX"`
	StartY      *float64 `json:"startY"`
	EndX        *float64 `json:"endX"`
	EndY        *float64 `json:"endY"`
	ArcAngle    *float64 `json:"arcAngle,omitempty"`
}

// Corrections holds the host-specific unit fixes applied while converting a
// RawPrimitive. The defaults match an editor that reports arc widths in
// tenths of the track unit and arc angles in radians.
type Corrections struct {
	// ArcWidthScale multiplies the reported width of arcs.
	ArcWidthScale float64 `yaml:"arc_width_scale"`
	// RadianThreshold: arc angles with a smaller magnitude are taken as
	// radians and converted to degrees.
	RadianThreshold float64 `yaml:"radian_threshold"`
	// DefaultWidth is used when the host reports no usable width, in mils.
	DefaultWidth float64 `yaml:"default_width"`
}

// DefaultCorrections returns the corrections for the reference host.
func DefaultCorrections() Corrections {
	return Corrections{
		ArcWidthScale:   10,
		RadianThreshold: 7, // just above 2*pi
		DefaultWidth:    10,
	}
}

// Width returns the corrected width for a primitive of kind k.
func (c Corrections) Width(k Kind, width, lineWidth *float64) float64 {
	w := c.DefaultWidth
	switch {
	case width != nil && *width != 0 && !math.IsNaN(*width):
		w = *width
	case lineWidth != nil && *lineWidth != 0 && !math.IsNaN(*lineWidth):
		w = *lineWidth
	}
	if k == KindArc {
		w *= c.ArcWidthScale
	}
	return w
}

// ArcAngle returns the corrected arc angle in degrees for kind k.
func (c Corrections) ArcAngle(k Kind, angle *float64) float64 {
	if k != KindArc || angle == nil {
		return 0
	}
	a := *angle
	if math.Abs(a) < c.RadianThreshold {
		return a * 180 / math.Pi
	}
	return a
}

// RawWidth is the inverse of Width: the value the host reports for a
// primitive of kind k that is w mils wide.
func (c Corrections) RawWidth(k Kind, w float64) float64 {
	if k == KindArc && c.ArcWidthScale != 0 {
		return w / c.ArcWidthScale
	}
	return w
}

// RawArcAngle is the inverse of ArcAngle: the value the host reports for an
// arc sweeping deg degrees. Hosts that trigger the radian guess report
// radians.
func (c Corrections) RawArcAngle(deg float64) float64 {
	if c.RadianThreshold > 0 {
		return deg * math.Pi / 180
	}
	return deg
}

// FromRaw validates raw and converts it into a Primitive.
func FromRaw(raw RawPrimitive, c Corrections) (Primitive, error) {
	kind := Classify(raw.Type)
	if kind == KindUnknown {
		return Primitive{}, fmt.Errorf("primitive %d: type %q is not trace-like", raw.GlobalIndex, raw.Type)
	}

	start, err := point(raw.StartX, raw.StartY)
	if err != nil {
		return Primitive{}, fmt.Errorf("%s %d start: %w", raw.Type, raw.GlobalIndex, err)
	}
	end, err := point(raw.EndX, raw.EndY)
	if err != nil {
		return Primitive{}, fmt.Errorf("%s %d end: %w", raw.Type, raw.GlobalIndex, err)
	}

	return Primitive{
		Index:    raw.GlobalIndex,
		Kind:     kind,
		Layer:    raw.Layer,
		Width:    c.Width(kind, raw.Width, raw.LineWidth),
		Locked:   raw.Locked,
		Net:      raw.Net,
		Start:    start,
		End:      end,
		ArcAngle: c.ArcAngle(kind, raw.ArcAngle),
	}, nil
}

func point(x, y *float64) (geometry.Point2D, error) {
	if x == nil || y == nil {
		return geometry.Point2D{}, fmt.Errorf("%w: missing", ErrInvalidCoordinate)
	}
	p := geometry.NewPoint2D(*x, *y)
	if !p.IsFinite() {
		return geometry.Point2D{}, fmt.Errorf("%w: %v, %v", ErrInvalidCoordinate, *x, *y)
	}
	return p, nil
}

// Selection is the result of converting a host selection.
type Selection struct {
	// Primitives are the valid trace-like primitives in selection order.
	Primitives []Primitive
	// TraceLike counts selected trace-like primitives, valid or not.
	TraceLike int
	// Rejected holds one error per trace-like primitive that failed validation.
	Rejected []error
}

// Convert filters raw to trace-like primitives and converts each one.
// Primitives with invalid coordinates are reported in Rejected and left out.
func Convert(raw []RawPrimitive, c Corrections) Selection {
	var sel Selection
	for _, r := range raw {
		if !IsTraceLike(r.Type) {
			continue
		}
		sel.TraceLike++
		p, err := FromRaw(r, c)
		if err != nil {
			sel.Rejected = append(sel.Rejected, err)
			continue
		}
		sel.Primitives = append(sel.Primitives, p)
	}
	return sel
}

// Float returns a pointer to v, for populating optional RawPrimitive fields.
func Float(v float64) *float64 {
	return &v
}

// NewRaw builds a RawPrimitive with the given endpoints and width.
func NewRaw(index int, typeTag, layer string, width, x1, y1, x2, y2 float64) RawPrimitive {
	return RawPrimitive{
		GlobalIndex: index,
		Type:        typeTag,
		Layer:       layer,
		Width:       Float(width),
		StartX:      Float(x1),
		StartY:      Float(y1),
		EndX:        Float(x2),
		EndY:        Float(y2),
	}
}
