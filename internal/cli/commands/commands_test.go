package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Molkars/aio/internal/cli/config"
	"github.com/Molkars/aio/internal/testutil"
)

func writeProject(t *testing.T, configSrc string, qqlFiles map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "project"), []byte(configSrc), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "db"), 0o755))
	for name, content := range qqlFiles {
		require.NoError(t, os.WriteFile(filepath.Join(root, "db", name), []byte(content), 0o644))
	}
	return root
}

func execute(t *testing.T, cmd *cobra.Command, root string, args ...string) (string, error) {
	t.Helper()
	rt := &Runtime{
		Config: &config.Config{ProjectDir: root, DBDir: "db"},
		Logger: testutil.NewTestLogger(t),
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(WithRuntime(context.Background(), rt))
	return out.String(), err
}

func TestNewCheckCommand(t *testing.T) {
	cmd := NewCheckCommand()
	assert.Equal(t, "check", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("watch"))
}

func TestCheckCommand(t *testing.T) {
	root := writeProject(t, `name "demo"`, map[string]string{
		"models.qql": `model User { id: UUID, name: String(64) }`,
		"queries.qql": `
			query GetUser(id) {
				select one User(id, name) where id == #id
			}
		`,
	})

	out, err := execute(t, NewCheckCommand(), root)
	require.NoError(t, err)
	assert.Contains(t, out, "Project OK: 1 models validated")
}

func TestCheckCommandReportsErrors(t *testing.T) {
	root := writeProject(t, `name "demo"`, map[string]string{
		"models.qql": `model User { id: Snowflake }`,
	})

	_, err := execute(t, NewCheckCommand(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `User.id has unknown type "Snowflake"`)
}

func TestModelsCommand(t *testing.T) {
	root := writeProject(t, `name "demo"`, map[string]string{
		"models.qql": `model User { id: UUID, bio: String(280)? }`,
	})

	out, err := execute(t, NewModelsCommand(), root)
	require.NoError(t, err)
	assert.Contains(t, out, "User")
	assert.Contains(t, out, "bio")
	assert.Contains(t, out, "280")
}

func TestNewDBCommand(t *testing.T) {
	cmd := NewDBCommand()
	assert.Equal(t, "db", cmd.Use)

	migrate, _, err := cmd.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", migrate.Use)
	down, _, err := cmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "down", down.Use)
}

// syncBuffer guards a buffer written by the watch goroutine and read
// by the test.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func startWatch(t *testing.T, root string) (*syncBuffer, context.CancelFunc, chan error) {
	t.Helper()
	rt := &Runtime{
		Config: &config.Config{ProjectDir: root, DBDir: "db"},
		Logger: testutil.NewTestLogger(t),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	out := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetOut(out)
	cmd.SetErr(out)

	done := make(chan error, 1)
	go func() { done <- runCheckWatch(cmd, rt) }()
	return out, cancel, done
}

func TestCheckWatchRevalidatesOnChange(t *testing.T) {
	root := writeProject(t, `name "demo"`, map[string]string{
		"models.qql": `model User { id: UUID }`,
	})

	out, cancel, done := startWatch(t, root)

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Project OK") == 1
	}, 5*time.Second, 20*time.Millisecond, "initial check should run")

	// Rewrite on every poll: the watcher may not be registered yet
	// when the initial check prints. The poll interval stays above the
	// debounce delay so a queued re-check can fire between writes.
	path := filepath.Join(root, "db", "models.qql")
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, []byte(`model User { id: UUID, name: String }`), 0o644))
		return strings.Count(out.String(), "Project OK") >= 2
	}, 5*time.Second, 250*time.Millisecond, "a change should trigger a re-check")

	cancel()
	require.NoError(t, <-done)
}

func TestCheckWatchInitialFailureIsNotFatal(t *testing.T) {
	root := writeProject(t, `name "demo"`, map[string]string{
		"models.qql": `model User { id: Snowflake }`,
	})

	out, cancel, done := startWatch(t, root)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `unknown type "Snowflake"`)
	}, 5*time.Second, 20*time.Millisecond, "the failing initial check should be reported")

	path := filepath.Join(root, "db", "models.qql")
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, []byte(`model User { id: UUID }`), 0o644))
		return strings.Contains(out.String(), "Project OK")
	}, 5*time.Second, 250*time.Millisecond, "fixing the file should produce a passing re-check")

	cancel()
	require.NoError(t, <-done)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCommand("1.2.3")
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "aio v1.2.3\n", out.String())
}

func TestRuntimeFromDefaults(t *testing.T) {
	rt := RuntimeFrom(context.Background())
	require.NotNil(t, rt.Config)
	assert.Equal(t, config.DefaultProjectDir, rt.Config.ProjectDir)
	assert.Equal(t, config.DefaultDBDir, rt.Config.DBDir)
	require.NotNil(t, rt.Logger)
}
