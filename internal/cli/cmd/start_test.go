package cmd

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoop struct {
	err error
	ran bool
}

func (l *fakeLoop) Run(ctx context.Context) error {
	l.ran = true
	return l.err
}

// fakeServer blocks in Serve until it is closed, like a listening socket.
type fakeServer struct {
	done   chan struct{}
	closed atomic.Bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{done: make(chan struct{})}
}

func (s *fakeServer) Serve() error {
	<-s.done
	return nil
}

func (s *fakeServer) Close() error {
	if !s.closed.Swap(true) {
		close(s.done)
	}
	return nil
}

func TestRunWithControl(t *testing.T) {
	t.Run("loop failure is returned after the socket closes", func(t *testing.T) {
		boom := errors.New("surface lost")
		l := &fakeLoop{err: boom}
		server := newFakeServer()

		err := runWithControl(context.Background(), l, server)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "display stopped")
		assert.True(t, server.closed.Load())
	})

	t.Run("clean exit", func(t *testing.T) {
		l := &fakeLoop{}
		server := newFakeServer()

		require.NoError(t, runWithControl(context.Background(), l, server))
		assert.True(t, l.ran)
		assert.True(t, server.closed.Load())
	})
}
