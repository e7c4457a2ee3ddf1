package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pcb-transition/internal/board"
	"pcb-transition/internal/console"
	"pcb-transition/internal/host"
	"pcb-transition/internal/plugin"
	"pcb-transition/internal/preview"
	"pcb-transition/internal/trace"
	"pcb-transition/ui/prefs"
)

// ErrNotCreated is returned when a transition command ends without creating
// every segment. The reason has already been shown on the console.
var ErrNotCreated = errors.New("transition not created")

type transitionFlags struct {
	board    string
	selected []int
	segments string
	pair     bool
	preview  string
}

func (f *transitionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.board, "board", "b", "", "board file (required)")
	cmd.Flags().IntSliceVarP(&f.selected, "select", "s", nil, "globalIndex values to select, replacing the saved selection")
	cmd.Flags().StringVarP(&f.segments, "segments", "n", "", "answer the segment prompt with this value instead of asking")
	cmd.Flags().BoolVar(&f.pair, "pair", false, "join exactly two selected traces at their closest endpoints")
	cmd.Flags().StringVar(&f.preview, "preview", "", "write a preview image (.png or .tiff) of the result")
	_ = cmd.MarkFlagRequired("board")
}

func (a *App) createCmd() *cobra.Command {
	var flags transitionFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Bridge the selected gap with straight stepped segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTransition(cmd, &flags, func(p *plugin.Plugin) plugin.Outcome {
				return p.CreateSteppedTransition(cmd.Context())
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *App) arcCmd() *cobra.Command {
	var (
		flags transitionFlags
		sweep float64
	)
	cmd := &cobra.Command{
		Use:   "arc",
		Short: "Bridge the selected gap with stepped arc segments",
		Long: `Bridge the selected gap with stepped arc segments on the circle through
both gap endpoints. Positive sweeps bulge to the left of the direction from
the first endpoint to the second.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTransition(cmd, &flags, func(p *plugin.Plugin) plugin.Outcome {
				return p.CreateArcTransition(cmd.Context(), sweep)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&sweep, "sweep", 90, "total arc sweep in degrees")
	return cmd
}

func (a *App) runTransition(cmd *cobra.Command, flags *transitionFlags, run func(*plugin.Plugin) plugin.Outcome) error {
	file, err := board.Load(flags.board)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	if cmd.Flags().Changed("select") {
		file.Select(flags.selected...)
	}

	editor := board.NewEditor(file, a.cfg.Corrections)
	p, err := a.newPlugin(editor, flags)
	if err != nil {
		return err
	}
	p.Activate()

	out := run(p)
	if out.Created > 0 {
		if err := file.Save(flags.board); err != nil {
			return fmt.Errorf("save board: %w", err)
		}
		a.prefs.SetString(prefs.KeyLastBoard, flags.board)
		if err := a.prefs.Save(); err != nil {
			a.log.Warn("failed to save preferences", "error", err)
		}
	}

	if flags.preview != "" && len(out.Segments) > 0 {
		if err := a.writePreview(flags.preview, file, editor.CreatedIndices, out); err != nil {
			return err
		}
	}

	if out.Err != nil {
		return fmt.Errorf("%w: %v", ErrNotCreated, out.Err)
	}
	return nil
}

func (a *App) newPlugin(editor *board.Editor, flags *transitionFlags) (*plugin.Plugin, error) {
	u, err := a.unit()
	if err != nil {
		return nil, err
	}

	var dialog host.Dialog = a.con
	if flags != nil && flags.segments != "" {
		dialog = console.Fixed{Console: a.con, Value: flags.segments}
	}

	svc := host.Services{Dialog: dialog, Messenger: a.con}
	if editor != nil {
		svc.Selection = editor
		svc.Creator = editor
	}
	opts := plugin.Options{
		Config:      &a.cfg.Transition,
		Corrections: &a.cfg.Corrections,
		Unit:        u,
		Logger:      a.log,
	}
	if flags != nil {
		opts.PairMode = flags.pair
	}
	return plugin.New(svc, opts), nil
}

// writePreview renders the board without the new primitives, overlaid with
// the generated segments.
func (a *App) writePreview(path string, file *board.File, created []int, out plugin.Outcome) error {
	skip := make(map[int]bool, len(created))
	for _, idx := range created {
		skip[idx] = true
	}
	var existing []trace.RawPrimitive
	for _, p := range file.Primitives {
		if !skip[p.GlobalIndex] {
			existing = append(existing, p)
		}
	}

	scene := preview.Scene{
		Primitives: trace.Convert(existing, a.cfg.Corrections).Primitives,
		Segments:   out.Segments,
	}
	img, err := preview.Render(scene, preview.DefaultOptions())
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	if err := preview.Save(path, img); err != nil {
		return err
	}
	a.log.Info("preview written", "path", path)
	return nil
}
