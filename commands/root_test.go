package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/logs/app.log")
	assert.Equal(t, filepath.Join(home, "logs/app.log"), expanded)

	abs := expandPath("/var/log/app.log")
	assert.Equal(t, "/var/log/app.log", abs)

	rel := expandPath("app.log")
	assert.True(t, filepath.IsAbs(rel), "relative paths become absolute")
}

func TestRootCommandFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.Flags().Lookup("id"))
	assert.NotNil(t, rootCmd.Flags().Lookup("limit"))
	assert.NotNil(t, rootCmd.Flags().Lookup("watch"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("path"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("output"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("summarize"))
}

func TestScanSubcommandRegistered(t *testing.T) {
	sub, _, err := rootCmd.Find([]string{"scan"})
	require.NoError(t, err)
	assert.Equal(t, "scan", sub.Name())
	assert.Nil(t, sub.Flags().Lookup("id"), "full scan takes no identifier")
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg := buildConfig()
	assert.True(t, filepath.IsAbs(cfg.Path))
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.True(t, cfg.Recursive)
	assert.False(t, cfg.Summarize)
}
