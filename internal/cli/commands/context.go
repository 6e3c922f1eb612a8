// Package commands implements the aio subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/Molkars/aio/internal/cli/config"
	"github.com/Molkars/aio/internal/project"
	"github.com/Molkars/aio/pkg/conf"
)

// Runtime carries the loaded tool settings and logger from the root
// command into subcommands.
type Runtime struct {
	Config *config.Config
	Logger *slog.Logger
}

type runtimeKey struct{}

// WithRuntime stores the runtime in a context.
func WithRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// RuntimeFrom retrieves the runtime from a context, falling back to
// defaults when none is stored.
func RuntimeFrom(ctx context.Context) *Runtime {
	if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok {
		return rt
	}
	return &Runtime{
		Config: &config.Config{
			ProjectDir: config.DefaultProjectDir,
			DBDir:      config.DefaultDBDir,
		},
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LoadProject loads the project named by the tool settings.
func (rt *Runtime) LoadProject() (*project.Project, error) {
	p, err := project.Load(conf.NewContext(), rt.Config.ProjectDir, rt.Logger)
	if err != nil {
		return nil, err
	}
	if rt.Config.DBDir != "" {
		p.DBDirName = rt.Config.DBDir
	}
	return p, nil
}
