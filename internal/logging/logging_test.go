package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warning ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesLibraryAndErrorLogs(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := New(Config{Dir: dir, Level: "info", BackupCount: 5})
	require.NoError(t, err)

	logger.Debug("hidden debug line")
	logger.Info("book added", "isbn", "abcde")
	logger.Error("storage failed", "err", "disk full")
	require.NoError(t, closer.Close())

	today := time.Now().Format("2006-01-02")

	library, err := os.ReadFile(filepath.Join(dir, "library-"+today+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(library), "book added")
	assert.Contains(t, string(library), "storage failed")
	assert.NotContains(t, string(library), "hidden debug line")

	errorsLog, err := os.ReadFile(filepath.Join(dir, "error-"+today+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(errorsLog), "storage failed")
	assert.NotContains(t, string(errorsLog), "book added")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Config{Dir: t.TempDir(), Level: "loud"})
	assert.Error(t, err)
}

func TestDailyLog_PathIfShouldRotate(t *testing.T) {
	d := dailyLog{dir: "/var/log/lms", prefix: "library-"}
	morning := time.Date(2024, 3, 1, 1, 0, 0, 0, time.Local)

	assert.Equal(t, filepath.Join("/var/log/lms", "library-2024-03-01.log"),
		d.pathIfShouldRotate(time.Time{}, morning), "first open")
	assert.Empty(t, d.pathIfShouldRotate(morning, morning.Add(20*time.Hour)), "same day")
	assert.Equal(t, filepath.Join("/var/log/lms", "library-2024-03-02.log"),
		d.pathIfShouldRotate(morning, morning.Add(23*time.Hour)))
	assert.Equal(t, filepath.Join("/var/log/lms", "library-2025-03-01.log"),
		d.pathIfShouldRotate(morning, morning.AddDate(1, 0, 0)), "same day of year, next year")
}

func TestDailyLog_Prune(t *testing.T) {
	dir := t.TempDir()
	d := dailyLog{dir: dir, prefix: "library-", keep: 2}

	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(d.path(day.AddDate(0, 0, i)), []byte("line\n"), 0644))
	}
	// Not a dated file of this log.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "library-notes.log"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error-2024-03-01.log"), nil, 0644))

	current := d.path(day.AddDate(0, 0, 4))
	require.NoError(t, d.prune(current))

	matches, err := filepath.Glob(filepath.Join(dir, "library-2024-*.log"))
	require.NoError(t, err)
	// current file plus two backups
	assert.Equal(t, []string{
		d.path(day.AddDate(0, 0, 2)),
		d.path(day.AddDate(0, 0, 3)),
		current,
	}, matches)

	assert.FileExists(t, filepath.Join(dir, "library-notes.log"))
	assert.FileExists(t, filepath.Join(dir, "error-2024-03-01.log"))
}

func TestOpenDaily_AppendsAndPrunesOnOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")
	d := dailyLog{dir: dir, prefix: "error-", keep: 1}

	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, day := range []string{"2020-01-01", "2020-01-02", "2020-01-03"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "error-"+day+".log"), nil, 0644))
	}

	f, err := openDaily(dir, "error-", 1)
	require.NoError(t, err)
	assert.Equal(t, d.path(time.Now()), f.Path)
	_, err = f.Write([]byte("one\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	f, err = openDaily(dir, "error-", 1)
	require.NoError(t, err)
	_, err = f.Write([]byte("two\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(d.path(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))

	matches, err := filepath.Glob(filepath.Join(dir, "error-*.log"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "error-2020-01-03.log"), d.path(time.Now())}, matches)
}
