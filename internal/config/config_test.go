// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.Model)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-9)
	assert.Equal(t, 30, cfg.Gemini.RequestsPerMinute)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Gemini.APIKey = "secret-key"
	cfg.Gemini.Model = "gemini-other"
	cfg.Storage.Backend = "sqlite"
	cfg.UI.Theme = "dark"
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := Default()
	require.NoError(t, LoadTOML(loaded, path))
	assert.Equal(t, "secret-key", loaded.Gemini.APIKey)
	assert.Equal(t, "gemini-other", loaded.Gemini.Model)
	assert.Equal(t, "sqlite", loaded.Storage.Backend)
	assert.Equal(t, "dark", loaded.UI.Theme)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Gemini.APIKey = "json-key"
	require.NoError(t, SaveJSON(cfg, path))

	loaded := Default()
	require.NoError(t, LoadJSON(loaded, path))
	assert.Equal(t, "json-key", loaded.Gemini.APIKey)
}

func TestLoadFromPathFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	partial := "[ui]\ntheme = \"dark\"\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Gemini.Model, "missing fields filled from defaults")
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestLoadFromPathRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := "[storage]\nbackend = \"redis\"\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("ULTRACHAT_MODEL", "env-model")
	t.Setenv("ULTRACHAT_STORAGE", "sqlite")
	t.Setenv("ULTRACHAT_THEME", "dark")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "env-model", cfg.Gemini.Model)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"temperature too high", func(c *Config) { c.Gemini.Temperature = 3.0 }, "gemini.temperature"},
		{"negative rpm", func(c *Config) { c.Gemini.RequestsPerMinute = -1 }, "gemini.requests_per_minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestGetSetDotNotation(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("ui.theme", "dark"))
	assert.Equal(t, "dark", cfg.UI.Theme)

	require.NoError(t, cfg.Set("gemini.requests_per_minute", "60"))
	assert.Equal(t, 60, cfg.Gemini.RequestsPerMinute)

	val, err := cfg.Get("gemini.model")
	require.NoError(t, err)
	assert.Equal(t, "gemini-3-pro-preview", val)

	_, err = cfg.Get("gemini.nonexistent")
	assert.Error(t, err)
}

func TestStringRedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "super-secret"

	out := cfg.String()
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Equal(t, "super-secret", cfg.Gemini.APIKey, "redaction must not mutate the original")
}

func TestDataDir(t *testing.T) {
	cfg := Default()
	cfg.Storage.Dir = "/tmp/custom"

	dir, err := cfg.DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", dir)
}

func TestGetAllKeysResolvable(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "key %q", key)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600))

	changed := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch())

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"dark\"\n"), 0600))

	select {
	case cfg := <-changed:
		assert.Equal(t, "dark", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}
}

func TestWatcherIgnoresInvalidChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600))

	changed := make(chan *Config, 4)
	w, err := NewWatcher(path, func(cfg *Config) { changed <- cfg })
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch())

	// Invalid content never reaches the callback.
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"redis\"\n"), 0600))
	time.Sleep(time.Second)

	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"dark\"\n"), 0600))

	select {
	case cfg := <-changed:
		assert.Equal(t, "dark", cfg.UI.Theme)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not recover after an invalid write")
	}
}
