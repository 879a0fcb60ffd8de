package logfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayFilename(t *testing.T) {
	ts := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "stdout_3-7-26.log", TodayFilename(ts))
}

func TestResolveDir_EnvWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogDir, dir)
	assert.Equal(t, dir, ResolveDir("/somewhere/else"))
}

func TestResolveDir_ConfiguredAbsolute(t *testing.T) {
	t.Setenv(EnvLogDir, "")
	dir := t.TempDir()
	assert.Equal(t, dir, ResolveDir(dir))
}

func TestWriter_AppendsToDailyFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	_, err = w.Write([]byte("line one\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("line two\n"))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, TodayFilename(time.Now())))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(raw))
}

func TestNewZapLogger(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewZapLogger(dir)
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync() // stdout sync can fail in test environments

	raw, err := os.ReadFile(filepath.Join(dir, TodayFilename(time.Now())))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello")
}
