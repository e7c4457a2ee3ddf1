// Package cli provides the pcbt command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pcb-transition/internal/config"
	"pcb-transition/internal/console"
	"pcb-transition/internal/units"
	"pcb-transition/internal/version"
	"pcb-transition/ui/prefs"
)

// App holds the streams and per-run state shared by the commands.
type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Logger, when set, replaces the logger built from the configuration.
	Logger *slog.Logger
	// PrefsPath, when set, replaces the default preferences file.
	PrefsPath string

	// Global flags
	configPath string
	unitFlag   string

	cfg     config.Config
	prefs   *prefs.Prefs
	log     *slog.Logger
	cleanup func() error
	con     *console.Console
}

// NewApp returns an App on the process streams.
func NewApp() *App {
	return &App{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Execute runs the root command with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.RootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// RootCmd builds the command tree.
func (a *App) RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pcbt",
		Short: "Stepped uniform width transitions between PCB traces",
		Long: `pcbt bridges the gap between two traces of different widths with a run
of short segments whose widths step linearly from one trace to the other.

Boards are JSON files holding trace primitives and a selection. The create
and arc commands read the selection, prompt for the number of steps and
append the generated segments to the board.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.cleanup != nil {
				if err := a.cleanup(); err != nil {
					fmt.Fprintf(a.Err, "Warning: failed to close log file: %v\n", err)
				}
			}
		},
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().StringVar(&a.unitFlag, "unit", "", "display unit for this run (mm or mil)")

	root.AddCommand(a.createCmd())
	root.AddCommand(a.arcCmd())
	root.AddCommand(a.toggleUnitCmd())
	root.AddCommand(a.aboutCmd())
	root.AddCommand(a.estimateCmd())
	root.AddCommand(a.previewCmd())
	root.AddCommand(a.versionCmd())
	return root
}

func (a *App) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.Logger != nil {
		a.log = a.Logger
	} else {
		a.log, a.cleanup = cfg.NewLogger(a.Err)
	}

	path := a.PrefsPath
	if path == "" {
		path = prefs.DefaultPath()
	}
	a.prefs, err = prefs.LoadFrom(path)
	if err != nil {
		a.log.Warn("ignoring unreadable preferences", "error", err)
	}

	a.con = console.New(a.In, a.Out)
	return nil
}

// unit resolves the display unit: flag, then saved preference, then config.
func (a *App) unit() (units.Unit, error) {
	if a.unitFlag != "" {
		return units.Parse(a.unitFlag)
	}
	return a.prefs.Unit(a.cfg.DisplayUnit()), nil
}
