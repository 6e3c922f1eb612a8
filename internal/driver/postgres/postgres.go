// Package postgres implements the database driver for PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Molkars/aio/internal/driver"
	"github.com/Molkars/aio/pkg/types"
	"github.com/Molkars/aio/pkg/validate"
)

// Config holds PostgreSQL connection settings.
type Config struct {
	Host     string
	Port     int64
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN renders the config as a key=value connection string.
func (c Config) DSN() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", host, port, c.Database, sslmode)
	if c.User != "" {
		dsn += fmt.Sprintf(" user=%s", c.User)
	}
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// Driver is the PostgreSQL implementation of driver.Driver.
type Driver struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ driver.Driver = (*Driver)(nil)

// Connect opens and pings a PostgreSQL connection. If logger is nil a
// discard logger is used.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return &Driver{db: db, logger: logger}, nil
}

// MigrateUp creates the model's table if it does not exist.
func (d *Driver) MigrateUp(ctx context.Context, model *validate.Model) error {
	ddl, err := CreateTableDDL(model)
	if err != nil {
		return err
	}

	d.logger.Info("migrating up", slog.String("model", model.Name))
	d.logger.Debug("executing ddl", slog.String("sql", ddl))
	if _, err := d.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table for model %s: %w", model.Name, err)
	}
	return nil
}

// MigrateDown drops the model's table if it exists.
func (d *Driver) MigrateDown(ctx context.Context, model *validate.Model) error {
	ddl := DropTableDDL(model)

	d.logger.Info("migrating down", slog.String("model", model.Name))
	d.logger.Debug("executing ddl", slog.String("sql", ddl))
	if _, err := d.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to drop table for model %s: %w", model.Name, err)
	}
	return nil
}

// Close releases the connection.
func (d *Driver) Close() error {
	return d.db.Close()
}

// CreateTableDDL renders the create-table statement for a validated
// model.
func CreateTableDDL(model *validate.Model) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "create table if not exists %s (", quoteIdent(model.Name))
	for i := range model.Fields {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n")

		def, err := columnDefinition(&model.Fields[i])
		if err != nil {
			return "", fmt.Errorf("model %s: %w", model.Name, err)
		}
		fmt.Fprintf(&b, "  %s %s", model.Fields[i].Name, def)
	}
	b.WriteString("\n)")
	return b.String(), nil
}

// DropTableDDL renders the drop-table statement for a validated model.
func DropTableDDL(model *validate.Model) string {
	return fmt.Sprintf("drop table if exists %s;", quoteIdent(model.Name))
}

func columnDefinition(field *validate.Field) (string, error) {
	var b strings.Builder
	switch field.Type.Kind() {
	case types.KindUUID:
		b.WriteString("UUID DEFAULT gen_random_uuid()")
	case types.KindString:
		b.WriteString("varchar")
		if field.Arg != nil {
			fmt.Fprintf(&b, "(%d)", *field.Arg)
		}
	case types.KindDateTime:
		b.WriteString("timestamp")
	default:
		return "", fmt.Errorf("field %q has invalid type %s", field.Name, field.Type.Kind())
	}

	if !field.Optional {
		b.WriteString(" NOT NULL")
	}
	return b.String(), nil
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
