// Package config loads the tool's own settings. These configure the aio
// binary (where the project lives, how chatty it is); the project's
// data-layer configuration is the `project` file parsed by pkg/conf.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the tool settings.
type Config struct {
	ProjectDir string `koanf:"project_dir"`
	DBDir      string `koanf:"db_dir"`
	Verbose    bool   `koanf:"verbose"`
}

// Default values.
const (
	DefaultProjectDir = "."
	DefaultDBDir      = "db"
)

// findConfigFile returns the settings file to use. Priority: explicit
// path > aio.yaml > aio.yml. Empty means no file.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"aio.yaml", "aio.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads settings from defaults, an optional yaml file, AIO_
// environment variables, and flags, in ascending precedence.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"project_dir": DefaultProjectDir,
		"db_dir":      DefaultDBDir,
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// AIO_PROJECT_DIR -> project_dir
	if err := k.Load(env.Provider("AIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "AIO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
