package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/taskflow/internal/ui"
	"github.com/tgienger/taskflow/internal/ui/views"
)

type fakeProgram struct {
	model tea.Model
	runFn func(*fakeProgram) error
	sent  chan tea.Msg
}

func (p *fakeProgram) Run() (tea.Model, error) {
	if p.runFn == nil {
		return p.model, nil
	}
	return p.model, p.runFn(p)
}

func (p *fakeProgram) Send(msg tea.Msg) {
	select {
	case p.sent <- msg:
	default:
	}
}

// isolate points every per-user directory at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("TASKFLOW_CONFIG", "")
	t.Setenv("TASKFLOW_SERVER", "")
	return home
}

func useProgram(t *testing.T, runFn func(*fakeProgram) error) *fakeProgram {
	t.Helper()
	fp := &fakeProgram{runFn: runFn, sent: make(chan tea.Msg, 8)}
	orig := programFactory
	t.Cleanup(func() { programFactory = orig })
	programFactory = func(m tea.Model) program {
		fp.model = m
		return fp
	}
	return fp
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taskflow dev")
}

func TestPathsCommand(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "--dev", "paths")
	require.NoError(t, err)
	assert.Contains(t, out, "dev_mode: true")
	assert.Contains(t, out, "taskflow-dev")
}

func TestPathsHonoursConfigEnv(t *testing.T) {
	home := isolate(t)
	cfgPath := filepath.Join(home, "custom.toml")
	t.Setenv("TASKFLOW_CONFIG", cfgPath)

	out, _, err := execute(t, "paths")
	require.NoError(t, err)
	assert.Contains(t, out, "config: "+cfgPath)

	out, _, err = execute(t, "--config", "/elsewhere.toml", "paths")
	require.NoError(t, err)
	assert.Contains(t, out, "config: /elsewhere.toml", "flag wins over env")
}

func TestStatusCommand(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_authenticated":true,"username":"alice"}`))
	}))
	defer srv.Close()

	out, _, err := execute(t, "--server", srv.URL, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "logged in as alice")
}

func TestStatusCommandUsesServerEnv(t *testing.T) {
	isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"is_authenticated":false}`))
	}))
	defer srv.Close()
	t.Setenv("TASKFLOW_SERVER", srv.URL)

	out, _, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestLogoutCommand(t *testing.T) {
	isolate(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	out, _, err := execute(t, "--server", srv.URL, "logout")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, out, "Logged out.")
}

func TestInvalidServerURL(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--server", "ftp://example.com", "status")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--log-level", "loud", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configure logger")
}

func TestRunStartsProgram(t *testing.T) {
	isolate(t)
	fp := useProgram(t, nil)

	_, stderr, err := execute(t)
	require.NoError(t, err)
	assert.IsType(t, &ui.App{}, fp.model)
	assert.Empty(t, stderr, "console logging is muted while the TUI runs")
}

func TestRunReportsProgramError(t *testing.T) {
	isolate(t)
	useProgram(t, func(*fakeProgram) error { return errors.New("tty gone") })

	_, _, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestRunForwardsConfigReloads(t *testing.T) {
	home := isolate(t)
	cfgPath := filepath.Join(home, "taskflow.toml")

	var got views.ConfigReloadedMsg
	useProgram(t, func(p *fakeProgram) error {
		// let the watcher register before the write
		time.Sleep(100 * time.Millisecond)
		if err := os.WriteFile(cfgPath, []byte("[ui]\nnotification_seconds = 9\n"), 0o644); err != nil {
			return err
		}
		select {
		case msg := <-p.sent:
			got = msg.(views.ConfigReloadedMsg)
			return nil
		case <-time.After(3 * time.Second):
			return errors.New("no reload received")
		}
	})

	_, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 9, got.UI.NotificationSeconds)
}
