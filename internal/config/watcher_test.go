package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func newTestWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w := NewWatcher(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.SetPollInterval(10 * time.Millisecond)
	return w
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	base := time.Now().Add(-time.Hour)
	writeConfig(t, path, "[tui]\ndays = 7\n", base)

	reloaded := make(chan *Config, 1)
	w := newTestWatcher(t, path)
	w.SetReloadCallback(func(cfg *Config) { reloaded <- cfg })

	initial, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	writeConfig(t, path, "[tui]\ndays = 30\n", base.Add(time.Minute))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 30, cfg.TUI.Days)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	assert.Equal(t, 30, w.Current().TUI.Days)
}

func TestWatcher_KeepsLastValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	base := time.Now().Add(-time.Hour)
	writeConfig(t, path, "[theme]\naccent = \"rose\"\n", base)

	failed := make(chan error, 1)
	w := newTestWatcher(t, path)
	w.SetErrorCallback(func(err error) { failed <- err })

	initial, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	writeConfig(t, path, "[theme]\naccent = \"teal\"\n", base.Add(time.Minute))

	select {
	case err := <-failed:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	assert.Equal(t, "rose", w.Current().Theme.Accent)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := newTestWatcher(t, filepath.Join(t.TempDir(), "missing.toml"))

	w.Stop() // not started

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, DefaultConfig()))
	require.NoError(t, w.Start(ctx, DefaultConfig()))
	w.Stop()
	w.Stop()
	assert.Equal(t, DefaultConfig(), w.Current())
}
