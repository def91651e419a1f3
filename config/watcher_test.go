package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, path, address string) {
	t.Helper()
	content := "server:\n  address: \"" + address + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWatcherDeliversInitialConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":7070")

	configs := make(chan *Config, 4)
	watcher, err := NewWatcher(path, func(cfg *Config) { configs <- cfg })
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	select {
	case cfg := <-configs:
		assert.Equal(t, ":7070", cfg.Server.Address)
	default:
		t.Fatal("expected initial configuration")
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":7070")

	configs := make(chan *Config, 4)
	watcher, err := NewWatcher(path, func(cfg *Config) { configs <- cfg },
		WithDebounceDelay(10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	<-configs // initial load

	writeConfigFile(t, path, ":7171")

	select {
	case cfg := <-configs:
		assert.Equal(t, ":7171", cfg.Server.Address)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsReloadErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":7070")

	configs := make(chan *Config, 4)
	errs := make(chan error, 4)
	watcher, err := NewWatcher(path, func(cfg *Config) { configs <- cfg },
		WithDebounceDelay(10*time.Millisecond),
		WithErrorCallback(func(err error) { errs <- err }))
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	<-configs // initial load

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o600))

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "logging.format")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}
}

func TestWatcherRestartsAfterStop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":7070")

	configs := make(chan *Config, 4)
	watcher, err := NewWatcher(path, func(cfg *Config) { configs <- cfg },
		WithDebounceDelay(10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	<-configs // initial load
	watcher.Stop()

	// A second run must deliver the configuration and reloads again.
	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	select {
	case cfg := <-configs:
		assert.Equal(t, ":7070", cfg.Server.Address)
	case <-time.After(5 * time.Second):
		t.Fatal("expected initial configuration on restart")
	}

	writeConfigFile(t, path, ":7171")

	select {
	case cfg := <-configs:
		assert.Equal(t, ":7171", cfg.Server.Address)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload after restart")
	}
}

func TestWatcherStartFailsOnMissingFile(t *testing.T) {
	t.Parallel()

	watcher, err := NewWatcher(filepath.Join(t.TempDir(), "missing.yaml"), func(*Config) {})
	require.NoError(t, err)

	assert.Error(t, watcher.Start(context.Background()))
}

func TestWatcherStopIsIdempotentBeforeStart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, path, ":7070")

	watcher, err := NewWatcher(path, func(*Config) {})
	require.NoError(t, err)

	// Stop before Start must not block or panic.
	watcher.Stop()
}
