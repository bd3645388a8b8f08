package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsForLinuxWithXDG(t *testing.T) {
	p, err := PathsFor("linux", map[string]string{
		"XDG_CONFIG_HOME": "/xdg/config",
		"XDG_DATA_HOME":   "/xdg/data",
	}, "/fallback/config", "/fallback/data", "taskflow")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/xdg/config", "taskflow", "config.toml"), p.ConfigPath)
	assert.Equal(t, filepath.Join("/xdg/data", "taskflow"), p.DataDir)
	assert.Equal(t, filepath.Join("/xdg/data", "taskflow", "taskflow.db"), p.DBPath)
	assert.Equal(t, filepath.Join("/xdg/data", "taskflow", "taskflow.log"), p.LogPath)
}

func TestPathsForWindowsUsesAppData(t *testing.T) {
	p, err := PathsFor("windows", map[string]string{
		"APPDATA":      `C:\Users\me\AppData\Roaming`,
		"LOCALAPPDATA": `C:\Users\me\AppData\Local`,
	}, `C:\fallback\config`, `C:\fallback\data`, "taskflow")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(`C:\Users\me\AppData\Roaming`, "taskflow", "config.toml"), p.ConfigPath)
	assert.Equal(t, filepath.Join(`C:\Users\me\AppData\Local`, "taskflow", "taskflow.db"), p.DBPath)
}

func TestPathsForDarwinIgnoresXDG(t *testing.T) {
	base := "/Users/me/Library/Application Support"
	p, err := PathsFor("darwin", map[string]string{
		"XDG_CONFIG_HOME": "/ignored",
	}, base, base, "taskflow-dev")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "taskflow-dev", "config.toml"), p.ConfigPath)
}

func TestPathsForRejectsEmptyInputs(t *testing.T) {
	_, err := PathsFor("darwin", nil, "", "/tmp/data", "taskflow")
	assert.Error(t, err)
	_, err = PathsFor("linux", nil, "/c", "/d", "  ")
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	got, err := ExpandHome("~/data/x.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", "data", "x.db"), got)

	got, err = ExpandHome("/abs/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/x.db", got)
}
