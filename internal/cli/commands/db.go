package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Molkars/aio/internal/driver"
	"github.com/Molkars/aio/internal/driver/postgres"
	"github.com/Molkars/aio/pkg/types"
	"github.com/Molkars/aio/pkg/validate"
)

// NewDBCommand creates the db command group.
func NewDBCommand() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database operations",
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the project's schema to the database",
	}
	migrateCmd.AddCommand(newMigrateCommand("up", "Create tables for every validated model", driver.MigrateUp))
	migrateCmd.AddCommand(newMigrateCommand("down", "Drop every validated model's table", driver.MigrateDown))

	dbCmd.AddCommand(migrateCmd)
	return dbCmd
}

func newMigrateCommand(direction, short string, migrate func(ctx context.Context, d driver.Driver, registry *validate.Registry) error) *cobra.Command {
	return &cobra.Command{
		Use:   direction,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := RuntimeFrom(cmd.Context())

			p, err := rt.LoadProject()
			if err != nil {
				return err
			}
			registry, err := p.Check(types.NewStore())
			if err != nil {
				return err
			}

			dbGroup, err := p.Config.GetGroup("database")
			if err != nil {
				return fmt.Errorf("project config: %w", err)
			}
			cfg, err := postgres.ConfigFromProject(dbGroup)
			if err != nil {
				return err
			}

			d, err := postgres.Connect(cmd.Context(), cfg, rt.Logger)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := migrate(cmd.Context(), d, registry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d models %s\n", registry.Len(), direction)
			return nil
		},
	}
}
