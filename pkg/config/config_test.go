package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucheSir/mal/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "user> ", cfg.Prompt)
	assert.Equal(t, 1000, cfg.HistoryLimit)
	assert.Empty(t, cfg.Source)
}

func TestLoadProjectFileWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".mal", "config.toml"), `prompt = "home> "`)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, config.ProjectFile), `
prompt = "proj> "
stats = true
preload = ["~/lib.mal", "/abs/core.mal"]
`)

	cfg, err := config.Load(project)
	require.NoError(t, err)
	assert.Equal(t, "proj> ", cfg.Prompt)
	assert.True(t, cfg.Stats)
	assert.Equal(t, 1000, cfg.HistoryLimit, "unset keys keep defaults")
	assert.Equal(t, []string{filepath.Join(home, "lib.mal"), "/abs/core.mal"}, cfg.Preload)
	assert.Equal(t, filepath.Join(project, config.ProjectFile), cfg.Source)
}

func TestLoadUserFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".mal", "config.toml"), `
history_file = "~/.custom_history"
history_limit = 50
`)

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "user> ", cfg.Prompt)
	assert.Equal(t, filepath.Join(home, ".custom_history"), cfg.HistoryFile)
	assert.Equal(t, 50, cfg.HistoryLimit)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	writeFile(t, filepath.Join(project, config.ProjectFile), `prompt = `)

	_, err := config.Load(project)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, config.ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "x"), config.ExpandHome("~/x"))
	assert.Equal(t, "/tmp/x", config.ExpandHome("/tmp/x"))
	assert.Equal(t, "~user/x", config.ExpandHome("~user/x"))
}
