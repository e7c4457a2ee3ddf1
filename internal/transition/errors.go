package transition

import "errors"

var (
	// ErrInsufficientSelection means fewer than two trace-like primitives
	// were selected.
	ErrInsufficientSelection = errors.New("at least two traces must be selected")
	// ErrNoGapFound means every selected endpoint is connected to another
	// selected primitive.
	ErrNoGapFound = errors.New("selected traces are already connected")
	// ErrAmbiguousGap means dangling endpoints exist but no pair spans two
	// different primitives.
	ErrAmbiguousGap = errors.New("could not find a valid connection gap")
	// ErrLayerMismatch means the gap endpoints are on different layers.
	ErrLayerMismatch = errors.New("traces must be on the same layer")
	// ErrAlreadyConnected means the closest endpoints of a pair touch.
	ErrAlreadyConnected = errors.New("traces are already connected")
	// ErrPointsTooClose means the endpoints are closer than the minimum
	// creation distance.
	ErrPointsTooClose = errors.New("endpoints are too close to create a transition")
	// ErrDegenerateDirection means the endpoints give no usable direction.
	ErrDegenerateDirection = errors.New("endpoints give no usable direction")
	// ErrInvalidSegmentCount means the segment count is outside the
	// accepted range or not a number.
	ErrInvalidSegmentCount = errors.New("invalid segment count")
)
