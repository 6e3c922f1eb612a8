package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "aio", cmd.Use)
	assert.Equal(t, Version, cmd.Version)

	for _, flag := range []string{"config", "project-dir", "db-dir", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	for _, sub := range []string{"check", "models", "db", "version"} {
		found, _, err := cmd.Find([]string{sub})
		require.NoError(t, err)
		assert.Equal(t, sub, found.Name())
	}
}
