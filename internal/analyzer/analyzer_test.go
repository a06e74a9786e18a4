package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracewell/tracewell/internal/core/model"
)

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func traceConfig(path, id string) *Config {
	return &Config{
		Identifier:   id,
		Path:         path,
		Recursive:    true,
		OutputFormat: "summary",
	}
}

func TestNewRejectsEmptyIdentifier(t *testing.T) {
	_, err := New(traceConfig(t.TempDir(), ""))
	assert.ErrorIs(t, err, ErrEmptyIdentifier)
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New(traceConfig("", "x"))
	assert.Error(t, err)
}

func TestBuildTimelineNonExistentRootIsFatal(t *testing.T) {
	a, err := New(traceConfig("/path/that/does/not/exist", "x"))
	require.NoError(t, err)

	_, _, _, err = a.BuildTimeline(context.Background())
	assert.Error(t, err, "missing root aborts before any scanning")
}

func TestBuildTimelineMergedOrdering(t *testing.T) {
	// file A matches at 10:00:01 and 10:00:03; file B at 10:00:02 plus one
	// undated line. Expected: A, B, A, B(undated); 4 entries, 2 files.
	dir := t.TempDir()
	writeLog(t, dir, "a.log", strings.Join([]string{
		"2024-01-15 10:00:01 INFO traceId=X step one",
		"2024-01-15 10:00:02 INFO traceId=other noise",
		"2024-01-15 10:00:03 INFO traceId=X step three",
	}, "\n"))
	writeLog(t, dir, "b.log", strings.Join([]string{
		"2024-01-15 10:00:02 WARN traceId=X step two",
		"note for traceId=X without any date",
	}, "\n"))

	a, err := New(traceConfig(dir, "X"))
	require.NoError(t, err)

	tl, scanErrors, filesScanned, err := a.BuildTimeline(context.Background())

	require.NoError(t, err)
	assert.Empty(t, scanErrors)
	assert.Equal(t, 2, filesScanned)
	require.Len(t, tl.Entries, 4)
	assert.Contains(t, tl.Entries[0].Raw(), "step one")
	assert.Contains(t, tl.Entries[1].Raw(), "step two")
	assert.Contains(t, tl.Entries[2].Raw(), "step three")
	assert.Contains(t, tl.Entries[3].Raw(), "without any date")
	assert.False(t, tl.Entries[3].HasTimestamp())
	assert.Equal(t, 4, tl.Stats.Total)
	assert.Len(t, tl.Stats.SourceFiles, 2)
}

func TestBuildTimelineIdentifierNotFound(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "a.log", "2024-01-15 10:00:01 INFO traceId=other\n")

	a, err := New(traceConfig(dir, "Y"))
	require.NoError(t, err)

	tl, scanErrors, filesScanned, err := a.BuildTimeline(context.Background())

	require.NoError(t, err, "absent identifier is a success, not an error")
	assert.Empty(t, scanErrors)
	assert.Equal(t, 1, filesScanned)
	assert.Equal(t, 0, tl.Stats.Total)
	assert.Empty(t, tl.Stats.SourceFiles)
}

func TestBuildTimelineDirectoryEquivalence(t *testing.T) {
	// Scanning the directory must yield the union of per-file scans.
	dir := t.TempDir()
	fileA := writeLog(t, dir, "svc-a/app.log", strings.Join([]string{
		"2024-01-15 10:00:01 INFO traceId=X in a",
		"2024-01-15 10:00:04 ERROR traceId=X a failed",
	}, "\n"))
	fileB := writeLog(t, dir, "svc-b/app.log",
		"2024-01-15 10:00:02 INFO traceId=X in b\n")

	dirAnalyzer, err := New(traceConfig(dir, "X"))
	require.NoError(t, err)
	dirTimeline, _, _, err := dirAnalyzer.BuildTimeline(context.Background())
	require.NoError(t, err)

	var union []model.LogEntry
	for _, single := range []string{fileA, fileB} {
		sa, err := New(traceConfig(single, "X"))
		require.NoError(t, err)
		tl, _, _, err := sa.BuildTimeline(context.Background())
		require.NoError(t, err)
		union = append(union, tl.Entries...)
	}

	require.Equal(t, len(union), len(dirTimeline.Entries))
	raws := make(map[string]bool)
	for i := range dirTimeline.Entries {
		raws[dirTimeline.Entries[i].Raw()] = true
	}
	for i := range union {
		assert.True(t, raws[union[i].Raw()], "missing entry: %s", union[i].Raw())
	}
}

func TestBuildTimelineIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "a.log", strings.Join([]string{
		"2024-01-15 10:00:01 ERROR traceId=X boom",
		"\tat com.example.A.a(A.java:1)",
		"undated mention of traceId=X",
	}, "\n"))

	a, err := New(traceConfig(dir, "X"))
	require.NoError(t, err)

	first, _, _, err := a.BuildTimeline(context.Background())
	require.NoError(t, err)

	b, err := New(traceConfig(dir, "X"))
	require.NoError(t, err)
	second, _, _, err := b.BuildTimeline(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildTimelineSkipsUnreadableFiles(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}
	dir := t.TempDir()
	writeLog(t, dir, "ok.log", "2024-01-15 10:00:01 INFO traceId=X fine\n")
	locked := writeLog(t, dir, "locked.log", "2024-01-15 10:00:02 INFO traceId=X hidden\n")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0644) })

	a, err := New(traceConfig(dir, "X"))
	require.NoError(t, err)

	tl, scanErrors, filesScanned, err := a.BuildTimeline(context.Background())

	require.NoError(t, err, "per-file failures never abort the scan")
	assert.Equal(t, 2, filesScanned)
	require.Len(t, scanErrors, 1)
	assert.Equal(t, locked, scanErrors[0].File)
	assert.Equal(t, 1, tl.Stats.Total)
}

func TestBuildTimelineMultiLineLowerBound(t *testing.T) {
	// The timeline holds at least as many entries as matching lines, and a
	// stack trace folds into its anchor entry rather than multiplying them.
	dir := t.TempDir()
	writeLog(t, dir, "a.log", strings.Join([]string{
		"2024-01-15 10:00:01 ERROR traceId=X request failed",
		"java.lang.NullPointerException: boom",
		"\tat com.example.A.a(A.java:1)",
		"\tat com.example.B.b(B.java:2)",
	}, "\n"))

	a, err := New(traceConfig(dir, "X"))
	require.NoError(t, err)
	tl, _, _, err := a.BuildTimeline(context.Background())
	require.NoError(t, err)

	require.Len(t, tl.Entries, 1)
	assert.Len(t, tl.Entries[0].Lines, 4)
}

func TestRunRendersWithoutError(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "a.log", "2024-01-15 10:00:01 INFO traceId=X hello\n")

	for _, format := range []string{"table", "json", "summary"} {
		cfg := traceConfig(dir, "X")
		cfg.OutputFormat = format
		a, err := New(cfg)
		require.NoError(t, err)
		assert.NoError(t, a.Run(context.Background()), "format %s", format)
	}
}

func TestRunUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "a.log", "x\n")
	cfg := traceConfig(dir, "X")
	cfg.OutputFormat = "xml"
	a, err := New(cfg)
	require.NoError(t, err)

	assert.Error(t, a.Run(context.Background()))
}
