package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-lineup-timeline/internal/analyzer"
	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/data/watcher"
	"github.com/penwyp/go-lineup-timeline/internal/presentation/display"
	"github.com/penwyp/go-lineup-timeline/internal/util"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var watchClear bool

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Render lineups and re-render whenever a lineup file changes",
	Args:  cobra.ArbitraryArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchClear, "clear", true,
		"Clear the terminal before each render")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	a, err := analyzer.New(analyzerConfig(cfg))
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(cfg.Paths)
	if err != nil {
		return fmt.Errorf("failed to watch %v: %w", cfg.Paths, err)
	}
	defer fw.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	td := display.NewTerminalDisplay(out)
	if watchClear && isTerminal(out) {
		td.EnterAlternateScreen()
		defer td.ExitAlternateScreen()
	}

	changes := watcher.Debounce(ctx, fw.Events(), constants.WatchDebounce)
	return watchLoop(ctx, a, td, changes)
}

// watchLoop renders once and then again for every batch of changed files
// until ctx is done or changes is closed. Render errors are reported and
// do not stop the loop.
func watchLoop(ctx context.Context, a *analyzer.Analyzer, td *display.TerminalDisplay, changes <-chan []string) error {
	out := td.Writer()
	render := func() {
		td.ClearScreen()
		if err := a.Run(ctx, out); err != nil && ctx.Err() == nil {
			util.LogError(fmt.Sprintf("Render failed: %v", err))
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if td.InAlternateScreen() {
			fmt.Fprintf(out, "\nUpdated %s, watching for changes. Press Ctrl+C to exit.\n",
				util.GetTimeProvider().FormatNow(constants.WatchClockFormat))
		}
	}

	render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths, ok := <-changes:
			if !ok {
				return nil
			}
			util.LogDebug(fmt.Sprintf("Lineup files changed: %v", paths))
			a.Forget(paths)
			render()
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
