package transition

import (
	"fmt"
	"math"

	"pcb-transition/internal/trace"
	"pcb-transition/pkg/geometry"
)

// Endpoint pairs a coordinate with the index of its owning primitive in the
// resolver input.
type Endpoint struct {
	Point geometry.Point2D
	Owner int
}

// Gap is the pair of dangling endpoints a transition bridges.
type Gap struct {
	P1, P2        geometry.Point2D
	First, Second trace.Primitive
	Distance      float64
}

// Net returns the net the transition belongs to: the first primitive's net,
// else the second's.
func (g Gap) Net() string {
	if g.First.Net != "" {
		return g.First.Net
	}
	return g.Second.Net
}

// Layer returns the layer shared by both primitives.
func (g Gap) Layer() string {
	return g.First.Layer
}

// WidthDelta returns the width change across the gap.
func (g Gap) WidthDelta() float64 {
	return g.Second.Width - g.First.Width
}

// Endpoints lists both endpoints of every primitive, start before end, in
// input order.
func Endpoints(prims []trace.Primitive) []Endpoint {
	eps := make([]Endpoint, 0, 2*len(prims))
	for i, p := range prims {
		eps = append(eps, Endpoint{Point: p.Start, Owner: i}, Endpoint{Point: p.End, Owner: i})
	}
	return eps
}

// Dangling returns the endpoints not within tolerance of an endpoint of any
// other primitive. Endpoints of the same primitive are never compared.
func Dangling(eps []Endpoint, tolerance float64) []Endpoint {
	var out []Endpoint
	for i, ep := range eps {
		connected := false
		for j, other := range eps {
			if i == j || ep.Owner == other.Owner {
				continue
			}
			if ep.Point.Distance(other.Point) < tolerance {
				connected = true
				break
			}
		}
		if !connected {
			out = append(out, ep)
		}
	}
	return out
}

// Groups labels every primitive with the smallest index of the chain of
// connected primitives it belongs to.
func Groups(eps []Endpoint, count int, tolerance float64) []int {
	parent := make([]int, count)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for i, a := range eps {
		for _, b := range eps[i+1:] {
			if a.Owner == b.Owner || a.Point.Distance(b.Point) >= tolerance {
				continue
			}
			ra, rb := find(a.Owner), find(b.Owner)
			if ra == rb {
				continue
			}
			if ra < rb {
				parent[rb] = ra
			} else {
				parent[ra] = rb
			}
		}
	}

	groups := make([]int, count)
	for i := range groups {
		groups[i] = find(i)
	}
	return groups
}

// ResolveGap finds the closest pair of dangling endpoints belonging to
// different primitives. Endpoints already joined through a chain of
// connected primitives are never paired, so a selection forming one chain
// has no gap. Among equidistant pairs the first one encountered in input
// order wins.
func ResolveGap(prims []trace.Primitive, cfg Config) (Gap, error) {
	if len(prims) < 2 {
		return Gap{}, fmt.Errorf("%w: got %d", ErrInsufficientSelection, len(prims))
	}

	eps := Endpoints(prims)
	dangling := Dangling(eps, cfg.ConnectTolerance)
	if len(dangling) < 2 {
		return Gap{}, ErrNoGapFound
	}

	groups := Groups(eps, len(prims), cfg.ConnectTolerance)
	candidates := false
	best := -1
	var bestJ int
	minGap := math.Inf(1)
	for i := 0; i < len(dangling); i++ {
		for j := i + 1; j < len(dangling); j++ {
			if groups[dangling[i].Owner] == groups[dangling[j].Owner] {
				continue
			}
			candidates = true
			d := dangling[i].Point.Distance(dangling[j].Point)
			if d < minGap {
				minGap = d
				best, bestJ = i, j
			}
		}
	}
	if !candidates {
		return Gap{}, fmt.Errorf("%w: selection forms a single chain", ErrNoGapFound)
	}
	if best < 0 {
		return Gap{}, ErrAmbiguousGap
	}

	a, b := dangling[best], dangling[bestJ]
	gap := Gap{
		P1:       a.Point,
		P2:       b.Point,
		First:    prims[a.Owner],
		Second:   prims[b.Owner],
		Distance: minGap,
	}
	if gap.First.Layer != gap.Second.Layer {
		return Gap{}, fmt.Errorf("%w: %s is on %q, %s is on %q",
			ErrLayerMismatch, gap.First, gap.First.Layer, gap.Second, gap.Second.Layer)
	}
	return gap, nil
}

// ResolvePair joins exactly two primitives at their closest endpoints,
// without the dangling-endpoint analysis. The layer check comes first.
func ResolvePair(a, b trace.Primitive, cfg Config) (Gap, error) {
	if a.Layer != b.Layer {
		return Gap{}, fmt.Errorf("%w: %s is on %q, %s is on %q", ErrLayerMismatch, a, a.Layer, b, b.Layer)
	}

	gap := Gap{First: a, Second: b, Distance: math.Inf(1)}
	for _, pa := range a.Endpoints() {
		for _, pb := range b.Endpoints() {
			if d := pa.Distance(pb); d < gap.Distance {
				gap.P1, gap.P2, gap.Distance = pa, pb, d
			}
		}
	}
	if math.IsInf(gap.Distance, 1) {
		return Gap{}, ErrAmbiguousGap
	}
	if gap.Distance < cfg.MinCreateDistance {
		return Gap{}, ErrAlreadyConnected
	}
	return gap, nil
}
