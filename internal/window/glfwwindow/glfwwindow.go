// Package glfwwindow provides the application window on top of GLFW. A
// Window is both the surface target for the GPU backend and the event source
// for the display loop, and must only be used from the main OS thread.
package glfwwindow

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/matjam/photoframe/internal/window"
)

var nextID atomic.Uint64

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	HideCursor bool
}

// pump drives the window system's event queue. Callbacks only run from
// inside these calls.
type pump interface {
	Poll()
	WaitTimeout(d time.Duration)
	Post()
}

type glfwPump struct{}

func (glfwPump) Poll()                       { glfw.PollEvents() }
func (glfwPump) WaitTimeout(d time.Duration) { glfw.WaitEventsTimeout(d.Seconds()) }
func (glfwPump) Post()                       { glfw.PostEmptyEvent() }

type Window struct {
	id   window.ID
	win  *glfw.Window
	pump pump

	// pending holds events collected by GLFW callbacks during a wait.
	pending       []window.Event
	redrawPending bool
	woken         atomic.Bool
	destroyed     atomic.Bool
}

// New initializes GLFW and opens the window with an OpenGL 2.1 context. The
// caller must have locked the main goroutine to its OS thread.
func New(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}
	log.Debugf("GLFW %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	width, height := opts.Width, opts.Height
	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		vidMode := monitor.GetVideoMode()
		width, height = vidMode.Width, vidMode.Height
	}

	win, err := glfw.CreateWindow(width, height, opts.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window failed: %w", err)
	}
	if opts.HideCursor {
		win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}

	w := newWindow(glfwPump{})
	w.win = win
	w.installCallbacks()
	return w, nil
}

func newWindow(p pump) *Window {
	return &Window{
		id:   window.ID(nextID.Add(1)),
		pump: p,
	}
}

func (w *Window) installCallbacks() {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(window.Event{Kind: window.KindResized, Width: width, Height: height})
	})
	w.win.SetContentScaleCallback(func(gw *glfw.Window, _, _ float32) {
		width, height := gw.GetFramebufferSize()
		w.push(window.Event{Kind: window.KindScaleChanged, Width: width, Height: height})
	})
	w.win.SetCloseCallback(func(gw *glfw.Window) {
		// The loop decides when to close; keep GLFW from acting on its own.
		gw.SetShouldClose(false)
		w.push(window.Event{Kind: window.KindCloseRequested})
	})
	w.win.SetRefreshCallback(func(_ *glfw.Window) {
		w.redrawPending = true
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape, glfw.KeyQ:
			w.push(window.Event{Kind: window.KindCloseRequested})
		}
	})
}

func (w *Window) push(ev window.Event) {
	ev.Window = w.id
	w.pending = append(w.pending, ev)
}

func (w *Window) ID() window.ID {
	return w.id
}

// RequestRedraw schedules a KindRedrawDue event. Requests made before the
// event is delivered collapse into one.
func (w *Window) RequestRedraw() {
	w.redrawPending = true
}

// Wait delivers queued window events first, then a pending redraw, then a
// wake-up, and finally KindTimerFired once deadline is reached. The window
// system is polled on every call, so input keeps flowing even when frames
// take longer than the redraw interval.
func (w *Window) Wait(deadline time.Time) window.Event {
	w.pump.Poll()
	for {
		if len(w.pending) > 0 {
			ev := w.pending[0]
			w.pending = w.pending[1:]
			return ev
		}
		if w.redrawPending {
			w.redrawPending = false
			return window.Event{Kind: window.KindRedrawDue, Window: w.id}
		}
		if w.woken.Swap(false) {
			return window.Event{Kind: window.KindWake, Window: w.id}
		}

		timeout := time.Until(deadline)
		if timeout <= 0 {
			return window.Event{Kind: window.KindTimerFired, Window: w.id}
		}
		w.pump.WaitTimeout(timeout)
	}
}

func (w *Window) Wake() {
	w.woken.Store(true)
	if !w.destroyed.Load() {
		w.pump.Post()
	}
}

func (w *Window) MakeContextCurrent() {
	w.win.MakeContextCurrent()
}

func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *Window) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// Destroy closes the window and shuts GLFW down.
func (w *Window) Destroy() {
	if w.destroyed.Swap(true) {
		return
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}
