// Package project loads an aio project from disk: the root `project`
// configuration file and the QQL schema files under the db directory.
package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/Molkars/aio/pkg/conf"
	"github.com/Molkars/aio/pkg/qql"
	"github.com/Molkars/aio/pkg/types"
	"github.com/Molkars/aio/pkg/validate"
)

// ConfigFileName is the project configuration file at the project root.
const ConfigFileName = "project"

// DefaultDBDir is the directory of QQL files, relative to the root.
const DefaultDBDir = "db"

// Project is a loaded project: its root directory and parsed
// configuration.
type Project struct {
	Root   string
	Config *conf.Group

	// DBDirName is the QQL directory name under Root. Defaults to
	// DefaultDBDir.
	DBDirName string

	logger *slog.Logger
}

// Load reads and parses `<root>/project` using ctx for deferred
// function calls. If logger is nil a discard logger is used.
func Load(ctx *conf.Context, root string, logger *slog.Logger) (*Project, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path := filepath.Join(root, ConfigFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	config, err := conf.Parse(ctx, string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("loaded project config", slog.String("path", path), slog.Int("entries", config.Len()))
	return &Project{Root: root, Config: config, DBDirName: DefaultDBDir, logger: logger}, nil
}

// DBDir returns the directory holding the project's QQL files.
func (p *Project) DBDir() string {
	return filepath.Join(p.Root, p.DBDirName)
}

// LoadQQL parses every regular file in the db directory, in name order.
func (p *Project) LoadQQL() ([]*qql.File, error) {
	entries, err := os.ReadDir(p.DBDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read db directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]*qql.File, 0, len(names))
	for _, name := range names {
		path := filepath.Join(p.DBDir(), name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		file, err := qql.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		p.logger.Debug("parsed qql file",
			slog.String("path", path),
			slog.Int("models", len(file.Models)),
			slog.Int("queries", len(file.Queries)))
		files = append(files, file)
	}
	return files, nil
}

// Check parses and validates the whole project against store, returning
// the completed model registry.
func (p *Project) Check(store *types.Store) (*validate.Registry, error) {
	files, err := p.LoadQQL()
	if err != nil {
		return nil, err
	}
	return validate.Validate(store, files)
}
