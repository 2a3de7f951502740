package ipc

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matjam/photoframe/internal/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	mu       sync.Mutex
	status   display.Status
	commands []display.Command
	err      error
}

func (f *fakeController) Status() display.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeController) EnqueueCommand(cmd display.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, cmd)
	return nil
}

func (f *fakeController) received() []display.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]display.Command(nil), f.commands...)
}

func newTestClient(t *testing.T, c Controller) *Client {
	t.Helper()
	ts := httptest.NewServer(NewServer(c, "/run/test.sock").Handler())
	t.Cleanup(ts.Close)
	return newClient(ts.URL, ts.Client())
}

func TestStatus(t *testing.T) {
	c := &fakeController{status: display.Status{
		State:    "waiting",
		Picture:  "beach.jpg",
		Pictures: 12,
		Frames:   42,
		Width:    800,
		Height:   480,
	}}
	client := newTestClient(t, c)

	res, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, os.Getpid(), res.PID)
	assert.Equal(t, "/run/test.sock", res.Socket)
	assert.NotEmpty(t, res.Version)
	assert.Equal(t, c.status, res.Display)
}

func TestCommands(t *testing.T) {
	c := &fakeController{}
	client := newTestClient(t, c)

	require.NoError(t, client.Next())
	require.NoError(t, client.Stop())

	assert.Equal(t, []display.Command{
		{Type: display.CommandNext},
		{Type: display.CommandStop},
	}, c.received())
}

func TestCommandQueueFull(t *testing.T) {
	c := &fakeController{err: display.ErrCommandQueueFull}
	ts := httptest.NewServer(NewServer(c, "").Handler())
	defer ts.Close()

	res, err := http.Post(ts.URL+"/next", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	err = newClient(ts.URL, ts.Client()).Next()
	assert.ErrorContains(t, err, "503")
}

func TestUnknownRoute(t *testing.T) {
	ts := httptest.NewServer(NewServer(&fakeController{}, "").Handler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/load")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestServeOverSocket(t *testing.T) {
	// unix socket paths are limited in length, keep it short
	dir, err := os.MkdirTemp("", "pf")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, socketName)

	// a stale socket file from a previous run is replaced
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	c := &fakeController{status: display.Status{State: "waiting"}}
	server := NewServer(c, path)
	done := make(chan error, 1)
	go func() { done <- server.Serve() }()

	client := NewClient(path)
	require.Eventually(t, func() bool {
		_, err := client.Status()
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Next())
	assert.Equal(t, []display.Command{{Type: display.CommandNext}}, c.received())

	require.NoError(t, server.Close())
	require.NoError(t, <-done)
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/photoframe.sock", SocketPath())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Equal(t, filepath.Join(os.TempDir(), "photoframe.sock"), SocketPath())
}
