package glfwwindow

import (
	"testing"
	"time"

	"github.com/matjam/photoframe/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePump stands in for the window system. onPoll and onWait run where
// GLFW would invoke the window callbacks.
type fakePump struct {
	polls  int
	waits  []time.Duration
	posts  int
	onPoll func(n int)
	onWait func()
}

func (p *fakePump) Poll() {
	p.polls++
	if p.onPoll != nil {
		p.onPoll(p.polls)
	}
}

func (p *fakePump) WaitTimeout(d time.Duration) {
	p.waits = append(p.waits, d)
	if p.onWait != nil {
		p.onWait()
	}
}

func (p *fakePump) Post() {
	p.posts++
}

func TestWaitPollsEveryCall(t *testing.T) {
	p := &fakePump{}
	w := newWindow(p)
	past := time.Now().Add(-time.Second)

	// frames slower than the redraw interval: the deadline has always passed
	// and a redraw is always pending
	p.onPoll = func(n int) {
		if n == 5 {
			w.push(window.Event{Kind: window.KindCloseRequested})
		}
	}

	var kinds []window.Kind
	for i := 0; i < 5; i++ {
		w.RequestRedraw()
		ev := w.Wait(past)
		kinds = append(kinds, ev.Kind)
		if ev.Kind == window.KindCloseRequested {
			break
		}
	}

	assert.Equal(t, 5, p.polls)
	assert.Empty(t, p.waits)
	require.Len(t, kinds, 5)
	assert.Equal(t, window.KindCloseRequested, kinds[4])
}

func TestWaitOrder(t *testing.T) {
	p := &fakePump{}
	w := newWindow(p)
	past := time.Now().Add(-time.Second)

	w.RequestRedraw()
	w.RequestRedraw()
	w.RequestRedraw()
	w.push(window.Event{Kind: window.KindResized, Width: 640, Height: 480})
	w.Wake()
	assert.Equal(t, 1, p.posts)

	ev := w.Wait(past)
	assert.Equal(t, window.KindResized, ev.Kind)
	assert.Equal(t, w.ID(), ev.Window)
	assert.Equal(t, 640, ev.Width)

	// redraw requests collapse into one
	assert.Equal(t, window.KindRedrawDue, w.Wait(past).Kind)
	assert.Equal(t, window.KindWake, w.Wait(past).Kind)
	assert.Equal(t, window.KindTimerFired, w.Wait(past).Kind)
}

func TestWaitBlocksUntilEvent(t *testing.T) {
	p := &fakePump{}
	w := newWindow(p)
	p.onWait = func() {
		w.push(window.Event{Kind: window.KindScaleChanged, Width: 1600, Height: 960})
	}

	ev := w.Wait(time.Now().Add(time.Hour))

	assert.Equal(t, window.KindScaleChanged, ev.Kind)
	require.Len(t, p.waits, 1)
	assert.Greater(t, p.waits[0], 59*time.Minute)
	assert.Equal(t, 1, p.polls)
}
