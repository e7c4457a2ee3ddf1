// Package plugin implements the editor commands: activation, unit toggle,
// stepped transition creation and the about box.
package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"pcb-transition/internal/host"
	"pcb-transition/internal/trace"
	"pcb-transition/internal/transition"
	"pcb-transition/internal/units"
	"pcb-transition/internal/version"

	"github.com/google/uuid"
)

// Name is the display name of the plugin.
const Name = "Uniform Width Transition"

var errNothingSelected = fmt.Errorf("%w: nothing selected", transition.ErrInsufficientSelection)

// Options configures a Plugin. Zero values select the defaults.
type Options struct {
	Config      *transition.Config
	Corrections *trace.Corrections
	Unit        units.Unit
	Logger      *slog.Logger
	// PairMode joins exactly two selected traces at their closest endpoints
	// instead of searching dangling endpoints.
	PairMode bool
}

// Plugin runs commands against one editor. Commands are not safe for
// concurrent use; the editor runs one command at a time.
type Plugin struct {
	svc      host.Services
	cfg      transition.Config
	corr     trace.Corrections
	unit     units.Unit
	log      *slog.Logger
	pairMode bool
}

// New creates a plugin bound to the editor services.
func New(svc host.Services, opts Options) *Plugin {
	p := &Plugin{
		svc:      svc,
		cfg:      transition.DefaultConfig(),
		corr:     trace.DefaultCorrections(),
		unit:     units.MM,
		log:      slog.Default(),
		pairMode: opts.PairMode,
	}
	if opts.Config != nil {
		p.cfg = *opts.Config
	}
	if opts.Corrections != nil {
		p.corr = *opts.Corrections
	}
	if opts.Unit != "" {
		p.unit = opts.Unit
	}
	if opts.Logger != nil {
		p.log = opts.Logger
	}
	return p
}

// Unit returns the current display unit.
func (p *Plugin) Unit() units.Unit {
	return p.unit
}

// Outcome describes what a transition command did.
type Outcome struct {
	Gap       *transition.Gap
	Requested int
	Created   int
	Cancelled bool
	// Segments are the generated steps, whether or not all were created.
	Segments []transition.Segment
	// Err is the error reported to the user, if any.
	Err error
}

// Activate is called once when the editor loads the plugin.
func (p *Plugin) Activate() {
	p.log.Info("plugin activated", "name", Name, "version", version.Version, "unit", p.unit)
}

// ToggleUnit switches between mm and mil and tells the user.
func (p *Plugin) ToggleUnit() units.Unit {
	p.unit = p.unit.Toggle()
	p.show(fmt.Sprintf("Unit switched to: %s", p.unit), "Unit Setting")
	return p.unit
}

// About shows the plugin description and the current unit.
func (p *Plugin) About() {
	p.show(fmt.Sprintf("%s v%s\n\n", Name, version.Version)+
		"Creates a stepped width transition across the gap between two traces.\n"+
		"Straight and arc transitions are supported.\n\n"+
		fmt.Sprintf("Current unit: %s", p.unit), "About")
}

// CreateSteppedTransition bridges the gap in the current selection with
// straight steps.
func (p *Plugin) CreateSteppedTransition(ctx context.Context) Outcome {
	return p.run(ctx, "createSteppedTransition", func(gap transition.Gap, n int) ([]transition.Segment, error) {
		return transition.GenerateLineSteps(gap.Request(n), p.cfg)
	})
}

// CreateArcTransition bridges the gap in the current selection with arc
// steps along the circle through both endpoints that sweeps sweepDeg
// degrees.
func (p *Plugin) CreateArcTransition(ctx context.Context, sweepDeg float64) Outcome {
	return p.run(ctx, "createArcTransition", func(gap transition.Gap, n int) ([]transition.Segment, error) {
		req, err := transition.ArcRequestThrough(gap.Request(n), sweepDeg)
		if err != nil {
			return nil, err
		}
		return transition.GenerateArcSteps(req, p.cfg)
	})
}

type generateFunc func(gap transition.Gap, n int) ([]transition.Segment, error)

func (p *Plugin) run(ctx context.Context, command string, generate generateFunc) (out Outcome) {
	log := p.log.With("op", uuid.NewString(), "command", command)

	defer func() {
		if r := recover(); r != nil {
			log.Error("command panicked", "panic", r)
			out.Err = fmt.Errorf("%w: %v", ErrUnexpected, r)
			p.show(fmt.Sprintf("An error occurred: %v", r), "Error")
		}
	}()

	gap, err := p.resolve(ctx, log)
	if err != nil {
		return p.fail(log, out, err)
	}
	out.Gap = &gap

	if gap.Distance < p.cfg.MinCreateDistance {
		return p.fail(log, out, fmt.Errorf("%w: %.3f mil", transition.ErrPointsTooClose, gap.Distance))
	}

	n, ok, err := p.askSegments(ctx, gap)
	if err != nil {
		return p.fail(log, out, err)
	}
	if !ok {
		log.Info("segment prompt cancelled")
		out.Cancelled = true
		return out
	}

	segments, err := generate(gap, n)
	if err != nil {
		return p.fail(log, out, err)
	}
	out.Requested = len(segments)
	out.Segments = segments

	res := host.Commit(ctx, p.svc.Creator, segments, log)
	out.Created = res.Created

	switch {
	case res.Created == 0:
		return p.fail(log, out, ErrCreationFailed)
	case res.Created < res.Requested:
		out.Err = fmt.Errorf("%w: %d of %d failed", ErrPartialCreation, res.Requested-res.Created, res.Requested)
		log.Warn("transition partially created", "created", res.Created, "requested", res.Requested)
		p.show(fmt.Sprintf("Created %d of %d transition segments; %d failed.",
			res.Created, res.Requested, res.Requested-res.Created), "Partially Done")
	default:
		log.Info("transition created", "segments", res.Created, "gap_mil", gap.Distance)
		p.show(fmt.Sprintf("Created %d transition segments.", res.Created), "Done")
	}
	return out
}

// resolve reads the selection and finds the gap to bridge.
func (p *Plugin) resolve(ctx context.Context, log *slog.Logger) (transition.Gap, error) {
	raw, err := p.svc.Selection.SelectedPrimitives(ctx)
	if err != nil {
		return transition.Gap{}, fmt.Errorf("%w: read selection: %v", ErrUnexpected, err)
	}
	if len(raw) == 0 {
		return transition.Gap{}, errNothingSelected
	}

	sel := trace.Convert(raw, p.corr)
	for _, rej := range sel.Rejected {
		log.Warn("ignoring primitive with invalid coordinates", "error", rej)
	}
	if sel.TraceLike < 2 {
		return transition.Gap{}, fmt.Errorf("%w: %d trace-like primitives", transition.ErrInsufficientSelection, sel.TraceLike)
	}
	log.Debug("selection converted", "selected", len(raw), "traces", len(sel.Primitives), "rejected", len(sel.Rejected))

	if p.pairMode && len(sel.Primitives) == 2 {
		return transition.ResolvePair(sel.Primitives[0], sel.Primitives[1], p.cfg)
	}
	return transition.ResolveGap(sel.Primitives, p.cfg)
}

// askSegments prompts for the segment count, defaulting to the estimate.
// ok is false when the user cancels.
func (p *Plugin) askSegments(ctx context.Context, gap transition.Gap) (n int, ok bool, err error) {
	w1, w2 := gap.First.Width, gap.Second.Width
	estimate := p.cfg.EstimateSegments(gap.Distance, math.Abs(gap.WidthDelta()))

	prompt := host.Prompt{
		Title: "Segment Count",
		Label: fmt.Sprintf("Enter the number of steps (1-%d):", p.cfg.MaxSegments),
		Details: fmt.Sprintf("Width: %s → %s\nGap: %s\nEndpoints: (%s) <-- %.2fmm --> (%s)",
			units.Format(w1, p.unit), units.Format(w2, p.unit), units.Format(gap.Distance, p.unit),
			units.FormatPoint(gap.P1.X, gap.P1.Y, p.unit), units.MilToMM(gap.Distance),
			units.FormatPoint(gap.P2.X, gap.P2.Y, p.unit)),
		Default: strconv.Itoa(estimate),
		Min:     1,
		Max:     p.cfg.MaxSegments,
		Step:    1,
	}

	value, ok, err := p.svc.Dialog.PromptInt(ctx, prompt)
	if errors.Is(err, context.Canceled) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: segment prompt: %v", ErrUnexpected, err)
	}
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return 0, false, nil
	}

	n, convErr := strconv.Atoi(value)
	if convErr != nil || !p.cfg.ValidSegmentCount(n) {
		return 0, false, fmt.Errorf("%w: %q", transition.ErrInvalidSegmentCount, value)
	}
	return n, true, nil
}

func (p *Plugin) fail(log *slog.Logger, out Outcome, err error) Outcome {
	out.Err = err
	level := slog.LevelWarn
	if errors.Is(err, ErrUnexpected) {
		level = slog.LevelError
	}
	log.Log(context.Background(), level, "transition not created", "error", err)
	p.show(p.message(err))
	return out
}

func (p *Plugin) show(content, title string) {
	if p.svc.Messenger == nil {
		return
	}
	p.svc.Messenger.ShowMessage(content, title)
}
