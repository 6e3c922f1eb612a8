// Package driver defines the interface database backends implement to
// materialize validated models.
package driver

import (
	"context"

	"github.com/Molkars/aio/pkg/validate"
)

// Driver materializes validated models in a database backend.
type Driver interface {
	// MigrateUp creates storage for the model if it does not exist.
	MigrateUp(ctx context.Context, model *validate.Model) error
	// MigrateDown removes the model's storage if it exists.
	MigrateDown(ctx context.Context, model *validate.Model) error
	// Close releases the backend connection.
	Close() error
}

// MigrateUp migrates every model in the registry up, in name order.
func MigrateUp(ctx context.Context, d Driver, registry *validate.Registry) error {
	for _, model := range registry.Models() {
		if err := d.MigrateUp(ctx, model); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown migrates every model in the registry down, in name order.
func MigrateDown(ctx context.Context, d Driver, registry *validate.Registry) error {
	for _, model := range registry.Models() {
		if err := d.MigrateDown(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
