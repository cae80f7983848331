package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", DefaultConfigFileName)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "config file must not be created")
}

func TestLoadOverridesKeepDefaults(t *testing.T) {
	path := writeConfig(t, `
store = "sqlite"
color = false

[keys]
quit = "q"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, UIAuto, cfg.UI)
	assert.False(t, cfg.Color)
	assert.Equal(t, "q", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.ViewAll)
	assert.Equal(t, "v", cfg.Keys.ViewDone)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown store":   `store = "redis"`,
		"unknown ui":      `ui = "gui"`,
		"duplicate token": "[keys]\nremove = \"d\"",
		"quit clash":      "[keys]\nquit = \"a\"",
		"empty token":     "[keys]\nview_done = \"\"",
		"bad toml":        `store = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestResolveConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, AppName, DefaultConfigFileName), ResolveConfigPath())
}
