package db

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "nested", "taskflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestSettings(t *testing.T) {
	d := openTestDB(t)

	v, err := d.GetSetting(SettingLastUsername)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, d.SetSetting(SettingLastUsername, "alice"))
	require.NoError(t, d.SetSetting(SettingLastUsername, "bob"))
	v, err = d.GetSetting(SettingLastUsername)
	require.NoError(t, err)
	assert.Equal(t, "bob", v)

	require.NoError(t, d.DeleteSetting(SettingLastUsername))
	v, err = d.GetSetting(SettingLastUsername)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")
	d, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, d.SetSetting(SettingFilter, "created"))
	require.NoError(t, d.Close())

	d, err = Open(path)
	require.NoError(t, err)
	defer d.Close()
	v, err := d.GetSetting(SettingFilter)
	require.NoError(t, err)
	assert.Equal(t, "created", v)
}

func TestCookiesRoundTrip(t *testing.T) {
	d := openTestDB(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, d.SaveCookies("localhost:5000", []*http.Cookie{
		{Name: "session", Value: "abc", HttpOnly: true},
		{Name: "remember", Value: "1", Path: "/auth", MaxAge: 3600},
	}, now))

	got, err := d.LoadCookies(now)
	require.NoError(t, err)
	require.Len(t, got["localhost:5000"], 2)

	byName := map[string]*http.Cookie{}
	for _, c := range got["localhost:5000"] {
		byName[c.Name] = c
	}
	assert.Equal(t, "abc", byName["session"].Value)
	assert.Equal(t, "/", byName["session"].Path)
	assert.True(t, byName["session"].HttpOnly)
	assert.True(t, byName["session"].Expires.IsZero())
	assert.Equal(t, "/auth", byName["remember"].Path)
	assert.Equal(t, now.Add(time.Hour).Unix(), byName["remember"].Expires.Unix())

	// an hour later the remember cookie is gone
	later, err := d.LoadCookies(now.Add(2 * time.Hour))
	require.NoError(t, err)
	require.Len(t, later["localhost:5000"], 1)
	assert.Equal(t, "session", later["localhost:5000"][0].Name)
}

func TestSaveCookiesDeletesExpired(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()

	require.NoError(t, d.SaveCookies("h", []*http.Cookie{{Name: "session", Value: "abc"}}, now))
	require.NoError(t, d.SaveCookies("h", []*http.Cookie{{Name: "session", Value: "", MaxAge: -1}}, now))

	got, err := d.LoadCookies(now)
	require.NoError(t, err)
	assert.Empty(t, got["h"])

	require.NoError(t, d.SaveCookies("h", []*http.Cookie{{Name: "session", Value: "x"}}, now))
	require.NoError(t, d.SaveCookies("h", []*http.Cookie{{Name: "session", Expires: now.Add(-time.Minute)}}, now))
	got, err = d.LoadCookies(now)
	require.NoError(t, err)
	assert.Empty(t, got["h"])
}

func TestClearCookies(t *testing.T) {
	d := openTestDB(t)
	now := time.Now()
	require.NoError(t, d.SaveCookies("a", []*http.Cookie{{Name: "s", Value: "1"}}, now))
	require.NoError(t, d.SaveCookies("b", []*http.Cookie{{Name: "s", Value: "2"}}, now))

	require.NoError(t, d.ClearCookies())
	got, err := d.LoadCookies(now)
	require.NoError(t, err)
	assert.Empty(t, got)
}
