package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Molkars/aio/pkg/types"
)

// debounceDelay coalesces bursts of filesystem events into one
// re-validation.
const debounceDelay = 100 * time.Millisecond

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the project's schema and queries",
		Long: `Parse the project configuration and every QQL file in the db
directory, then validate all models and queries project-wide.`,
		Example: `  # Validate the project in the current directory
  aio check

  # Re-validate whenever a QQL file changes
  aio check --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := RuntimeFrom(cmd.Context())
			if !watch {
				return runCheck(cmd, rt)
			}
			return runCheckWatch(cmd, rt)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate when project files change")
	return cmd
}

func runCheck(cmd *cobra.Command, rt *Runtime) error {
	p, err := rt.LoadProject()
	if err != nil {
		return err
	}

	registry, err := p.Check(types.NewStore())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Project OK: %d models validated\n", registry.Len())
	return nil
}

func runCheckWatch(cmd *cobra.Command, rt *Runtime) error {
	// The first run may fail; in watch mode that is reported, not
	// fatal.
	reportCheck(cmd, rt)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(rt.Config.ProjectDir); err != nil {
		return fmt.Errorf("failed to watch project dir: %w", err)
	}
	dbDir := filepath.Join(rt.Config.ProjectDir, rt.Config.DBDir)
	if err := watcher.Add(dbDir); err != nil {
		return fmt.Errorf("failed to watch db dir: %w", err)
	}

	rt.Logger.Info("watching for changes", slog.String("dir", dbDir))

	var debounce *time.Timer
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			name := filepath.Base(event.Name)
			debounce = time.AfterFunc(debounceDelay, func() {
				rt.Logger.Info("change detected", slog.String("file", name))
				reportCheck(cmd, rt)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rt.Logger.Error("watch error", slog.String("error", err.Error()))
		}
	}
}

func reportCheck(cmd *cobra.Command, rt *Runtime) {
	if err := runCheck(cmd, rt); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
}
