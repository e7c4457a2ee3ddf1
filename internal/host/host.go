// Package host defines the services a PCB editor provides to the transition
// commands, and the commit loop that submits generated segments to it.
package host

import (
	"context"

	"pcb-transition/internal/trace"
	"pcb-transition/pkg/geometry"
)

// Selection returns the primitives currently selected in the editor. A nil
// and an empty result both mean nothing is selected.
type Selection interface {
	SelectedPrimitives(ctx context.Context) ([]trace.RawPrimitive, error)
}

// LineSpec is one straight trace to create.
type LineSpec struct {
	Net    string
	Layer  string
	Start  geometry.Point2D
	End    geometry.Point2D
	Width  float64
	Locked bool
}

// InteractionMode controls how the editor treats a newly created arc.
type InteractionMode int

// InteractionNone creates the arc without entering interactive editing.
const InteractionNone InteractionMode = 0

// ArcSpec is one arc trace to create.
type ArcSpec struct {
	Net   string
	Layer string
	Start geometry.Point2D
	End   geometry.Point2D
	// Sweep is the arc angle in degrees.
	Sweep  float64
	Width  float64
	Mode   InteractionMode
	Locked bool
}

// Creator creates trace primitives. A false result without an error means
// the editor declined the primitive.
type Creator interface {
	CreateLine(ctx context.Context, spec LineSpec) (bool, error)
	CreateArc(ctx context.Context, spec ArcSpec) (bool, error)
}

// Prompt describes a numeric input request.
type Prompt struct {
	Title   string
	Label   string
	Details string
	Default string
	Min     int
	Max     int
	Step    int
}

// Dialog asks the user for input. ok is false when the user cancels.
type Dialog interface {
	PromptInt(ctx context.Context, p Prompt) (value string, ok bool, err error)
}

// Messenger shows a titled informational message.
type Messenger interface {
	ShowMessage(content, title string)
}

// Services bundles everything a command needs from the editor.
type Services struct {
	Selection Selection
	Creator   Creator
	Dialog    Dialog
	Messenger Messenger
}
