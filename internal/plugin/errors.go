package plugin

import (
	"errors"
	"fmt"

	"pcb-transition/internal/transition"
	"pcb-transition/pkg/geometry"
)

var (
	// ErrPartialCreation means some segments failed to create.
	ErrPartialCreation = errors.New("some transition segments were not created")
	// ErrCreationFailed means no segment was created.
	ErrCreationFailed = errors.New("no transition segments were created")
	// ErrUnexpected wraps host failures and panics caught at the command
	// boundary.
	ErrUnexpected = errors.New("unexpected error")
)

// message returns the user-facing text and title for err.
func (p *Plugin) message(err error) (content, title string) {
	limit := p.cfg.MaxSegments
	switch {
	case errors.Is(err, errNothingSelected):
		return "Select two traces (Track/Arc) and run this command again.", "No Traces Selected"
	case errors.Is(err, transition.ErrInsufficientSelection):
		return "Select at least 2 traces and run this command again.", "Not Enough Traces"
	case errors.Is(err, transition.ErrNoGapFound):
		return "All selected traces are already connected; there are no dangling endpoints.\n\n" +
			"Select traces that leave an open gap.", "No Dangling Endpoints"
	case errors.Is(err, transition.ErrAmbiguousGap):
		return "Could not find a valid connection gap in the selected traces.\n\n" +
			"Make sure the selection contains an open gap and valid coordinates.", "No Gap Found"
	case errors.Is(err, transition.ErrLayerMismatch):
		return "Both traces must be on the same layer to create a transition.", "Layer Mismatch"
	case errors.Is(err, transition.ErrAlreadyConnected):
		return "The two traces are already connected; no transition is needed.", "Nothing To Do"
	case errors.Is(err, transition.ErrPointsTooClose),
		errors.Is(err, transition.ErrDegenerateDirection),
		errors.Is(err, geometry.ErrDegenerateArc):
		return "The start and end points are too close to create a transition.", "Warning"
	case errors.Is(err, transition.ErrInvalidSegmentCount):
		return fmt.Sprintf("Enter an integer between 1 and %d.", limit), "Input Error"
	case errors.Is(err, ErrCreationFailed):
		return "No transition segments were created. Check the log for details.", "Failed"
	default:
		return fmt.Sprintf("An error occurred: %v", err), "Error"
	}
}
