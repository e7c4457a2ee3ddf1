// Package transition computes stepped width transitions between two traces:
// it finds the gap to bridge, estimates how many steps to use and generates
// the step segments.
package transition

import (
	"fmt"
	"math"

	"pcb-transition/internal/units"
)

// Config bounds the segment-count estimate and the accepted user input.
// Lengths are in the unit named by the field; tolerances are in mils.
type Config struct {
	MaxSegments               int     `yaml:"max_segments"`
	MinSegmentLengthMM        float64 `yaml:"min_segment_length_mm"`
	MinWidthChangeMM          float64 `yaml:"min_width_change_mm"`
	DefaultTransitionLengthMM float64 `yaml:"default_transition_length_mm"`
	DefaultTargetWidthMM      float64 `yaml:"default_target_width_mm"`

	// ConnectTolerance is the distance below which two endpoints of
	// different primitives count as connected.
	ConnectTolerance float64 `yaml:"connect_tolerance_mil"`
	// MinCreateDistance is the shortest gap a transition is generated for.
	MinCreateDistance float64 `yaml:"min_create_distance_mil"`
}

// DefaultConfig returns the stock limits.
func DefaultConfig() Config {
	return Config{
		MaxSegments:               50,
		MinSegmentLengthMM:        0.2,
		MinWidthChangeMM:          0.05,
		DefaultTransitionLengthMM: 5,
		DefaultTargetWidthMM:      0.5,
		ConnectTolerance:          0.5,
		MinCreateDistance:         1,
	}
}

// Validate rejects limits the estimator cannot work with.
func (c Config) Validate() error {
	if c.MaxSegments < 1 {
		return fmt.Errorf("max_segments must be at least 1, got %d", c.MaxSegments)
	}
	if c.MinSegmentLengthMM <= 0 {
		return fmt.Errorf("min_segment_length_mm must be positive, got %g", c.MinSegmentLengthMM)
	}
	if c.MinWidthChangeMM <= 0 {
		return fmt.Errorf("min_width_change_mm must be positive, got %g", c.MinWidthChangeMM)
	}
	if c.ConnectTolerance < 0 {
		return fmt.Errorf("connect_tolerance_mil must not be negative, got %g", c.ConnectTolerance)
	}
	if c.MinCreateDistance < 0 {
		return fmt.Errorf("min_create_distance_mil must not be negative, got %g", c.MinCreateDistance)
	}
	return nil
}

// EstimateSegments returns the default number of steps for a gap of
// gapMil with a width change of widthDeltaMil. The result never produces
// steps shorter than MinSegmentLengthMM or width changes finer than
// MinWidthChangeMM, and is clamped to [1, MaxSegments].
func (c Config) EstimateSegments(gapMil, widthDeltaMil float64) int {
	gapMM := units.MilToMM(gapMil)
	deltaMM := math.Abs(units.MilToMM(widthDeltaMil))

	byLength := math.Floor(gapMM / c.MinSegmentLengthMM)
	byWidth := math.Floor(deltaMM / c.MinWidthChangeMM)

	n := math.Min(byLength, byWidth)
	if math.IsNaN(n) || n < 1 {
		return 1
	}
	if n > float64(c.MaxSegments) {
		return c.MaxSegments
	}
	return int(n)
}

// ValidSegmentCount reports whether n is an accepted user-entered count.
func (c Config) ValidSegmentCount(n int) bool {
	return n >= 1 && n <= c.MaxSegments
}
