package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"pcb-transition/internal/board"
	"pcb-transition/internal/preview"
	"pcb-transition/internal/trace"
	"pcb-transition/internal/units"
	"pcb-transition/internal/version"
)

func (a *App) toggleUnitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-unit",
		Short: "Switch the saved display unit between mm and mil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPlugin(nil, nil)
			if err != nil {
				return err
			}
			a.prefs.SetUnit(p.ToggleUnit())
			if err := a.prefs.Save(); err != nil {
				return fmt.Errorf("save preferences: %w", err)
			}
			return nil
		},
	}
}

func (a *App) aboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show what the tool does and the current unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPlugin(nil, nil)
			if err != nil {
				return err
			}
			p.About()
			return nil
		},
	}
}

func (a *App) estimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate GAP WIDTH_DELTA",
		Short: "Print the default segment count for a gap and width change",
		Long: `Print the default segment count for a gap and width change, both given
in the display unit.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.unit()
			if err != nil {
				return err
			}
			gap, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("gap: %w", err)
			}
			delta, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("width delta: %w", err)
			}
			if gap < 0 || math.IsNaN(gap) || math.IsNaN(delta) {
				return fmt.Errorf("gap must be a non-negative number, got %s", args[0])
			}

			n := a.cfg.Transition.EstimateSegments(units.ToMil(gap, u), units.ToMil(math.Abs(delta), u))
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", n)
			return nil
		},
	}
}

func (a *App) previewCmd() *cobra.Command {
	var (
		boardPath string
		outPath   string
		size      int
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a board to a PNG or TIFF image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := board.Load(boardPath)
			if err != nil {
				return fmt.Errorf("load board: %w", err)
			}
			sel := trace.Convert(file.Primitives, a.cfg.Corrections)
			for _, rej := range sel.Rejected {
				a.log.Warn("skipping primitive", "error", rej)
			}

			opts := preview.DefaultOptions()
			opts.Size = size
			img, err := preview.Render(preview.Scene{Primitives: sel.Primitives}, opts)
			if err != nil {
				return fmt.Errorf("render preview: %w", err)
			}
			if err := preview.Save(outPath, img); err != nil {
				return err
			}
			b := img.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %d traces)\n", outPath, b.Dx(), b.Dy(), len(sel.Primitives))
			return nil
		},
	}
	cmd.Flags().StringVarP(&boardPath, "board", "b", "", "board file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "preview.png", "output image (.png or .tiff)")
	cmd.Flags().IntVar(&size, "size", preview.DefaultOptions().Size, "length of the longer image side in pixels")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pcbt %s\n", version.String())
		},
	}
}
