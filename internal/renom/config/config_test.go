package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ziyabahceci/renom/internal/renom/config"
)

func TestLoadAppliesEmbeddedDefaults(t *testing.T) {
	t.Parallel()

	resolved, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "info", resolved.LogLevel)
	require.Equal(t, "console", resolved.LogFormat)
	require.Equal(t, 20, resolved.Identifier.ProjectMaxLength)
	require.Equal(t, 30, resolved.Identifier.EntityMaxLength)
	require.Equal(t, ".renom/backup", resolved.BackupDirectoryName)
}

func TestLoadOverlaysConfigurationFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	configPath := filepath.Join(root, "renom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: debug\nassume_yes: true\n"), 0o644))

	resolved, err := config.Load(configPath)
	require.NoError(t, err)
	require.Equal(t, "debug", resolved.LogLevel)
	require.True(t, resolved.AssumeYes)
	require.Equal(t, "console", resolved.LogFormat)
}

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("RENOM_LOG_LEVEL", "warn")

	resolved, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "warn", resolved.LogLevel)
}
