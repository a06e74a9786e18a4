package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullScanConfig(path string) *Config {
	return &Config{
		Path:         path,
		Recursive:    true,
		OutputFormat: "summary",
	}
}

func TestNewFullScanNeedsNoIdentifier(t *testing.T) {
	a, err := NewFullScan(fullScanConfig(t.TempDir()))
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestFullScanSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "app.log", strings.Join([]string{
		"2024-01-15 10:00:01 ERROR NullPointerException: a",
		"\tat com.example.A.a(A.java:1)",
		"2024-01-15 10:00:02 ERROR NullPointerException: b",
		"2024-01-15 10:00:03 ERROR NullPointerException: c",
		"2024-01-15 10:00:04 ERROR TimeoutException: d",
		"2024-01-15 10:00:05 INFO all quiet",
	}, "\n"))

	a, err := NewFullScan(fullScanConfig(path))
	require.NoError(t, err)

	assert.NoError(t, a.Run(context.Background()))
}

func TestFullScanDirectoryMergesGroups(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "svc-a/app.log", "ERROR NullPointerException: from a\n")
	writeLog(t, dir, "svc-b/app.log", strings.Join([]string{
		"ERROR NullPointerException: from b",
		"ERROR TimeoutException: from b",
	}, "\n"))

	a, err := NewFullScan(fullScanConfig(dir))
	require.NoError(t, err)

	assert.NoError(t, a.Run(context.Background()))
}

func TestFullScanNonExistentRoot(t *testing.T) {
	a, err := NewFullScan(fullScanConfig("/path/that/does/not/exist"))
	require.NoError(t, err)

	assert.Error(t, a.Run(context.Background()))
}
