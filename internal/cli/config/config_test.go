package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project-dir", "", "")
	flags.String("db-dir", "", "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultProjectDir, cfg.ProjectDir)
	assert.Equal(t, DefaultDBDir, cfg.DBDir)
	assert.False(t, cfg.Verbose)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project_dir: /srv/app\nverbose: true\n"), 0o644))

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", cfg.ProjectDir)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, DefaultDBDir, cfg.DBDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_dir: from_file\n"), 0o644))
	t.Setenv("AIO_DB_DIR", "from_env")

	cfg, err := Load(path, newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.DBDir)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("AIO_PROJECT_DIR", "from_env")

	cfg, err := Load("", newFlags(t, "--project-dir", "from_flag"))
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.ProjectDir)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	t.Setenv("AIO_PROJECT_DIR", "from_env")

	cfg, err := Load("", newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.ProjectDir)
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
