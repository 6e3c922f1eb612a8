package postgres

import (
	"fmt"

	"github.com/Molkars/aio/pkg/conf"
)

// ConfigFromProject builds a connection config from a project's
// `database` group. Every value is evaluated, so entries may use
// deferred calls such as Env("PGPASSWORD"). The database name is
// required; the rest fall back to the DSN defaults.
func ConfigFromProject(db *conf.Group) (Config, error) {
	var cfg Config
	var err error

	cfg.Database, err = db.GetString("database")
	if err != nil {
		return Config{}, fmt.Errorf("database config: %w", err)
	}

	if _, ok := db.Get("host"); ok {
		if cfg.Host, err = db.GetString("host"); err != nil {
			return Config{}, fmt.Errorf("database config: %w", err)
		}
	}
	if _, ok := db.Get("port"); ok {
		if cfg.Port, err = db.GetInt("port"); err != nil {
			return Config{}, fmt.Errorf("database config: %w", err)
		}
	}
	if _, ok := db.Get("user"); ok {
		if cfg.User, err = db.GetString("user"); err != nil {
			return Config{}, fmt.Errorf("database config: %w", err)
		}
	}
	if _, ok := db.Get("password"); ok {
		if cfg.Password, err = db.GetString("password"); err != nil {
			return Config{}, fmt.Errorf("database config: %w", err)
		}
	}
	if _, ok := db.Get("sslmode"); ok {
		if cfg.SSLMode, err = db.GetString("sslmode"); err != nil {
			return Config{}, fmt.Errorf("database config: %w", err)
		}
	}

	return cfg, nil
}
