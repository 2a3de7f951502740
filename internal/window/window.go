package window

import (
	"fmt"
	"time"
)

// ID identifies a window for the lifetime of the process.
type ID uint64

type Kind int

const (
	KindOther Kind = iota
	// KindTimerFired is delivered when the wait deadline passes with no
	// other event pending.
	KindTimerFired
	// KindRedrawDue is the paint opportunity that follows one or more redraw
	// requests.
	KindRedrawDue
	KindResized
	KindScaleChanged
	KindCloseRequested
	// KindWake is delivered after Wake is called from another goroutine.
	KindWake
)

func (k Kind) String() string {
	switch k {
	case KindTimerFired:
		return "timer-fired"
	case KindRedrawDue:
		return "redraw-due"
	case KindResized:
		return "resized"
	case KindScaleChanged:
		return "scale-changed"
	case KindCloseRequested:
		return "close-requested"
	case KindWake:
		return "wake"
	default:
		return "other"
	}
}

// Event is a window system event. Width and Height carry the new framebuffer
// size for KindResized and KindScaleChanged.
type Event struct {
	Kind   Kind
	Window ID
	Width  int
	Height int
}

func (e Event) String() string {
	switch e.Kind {
	case KindResized, KindScaleChanged:
		return fmt.Sprintf("%v(window=%d, %dx%d)", e.Kind, e.Window, e.Width, e.Height)
	default:
		return fmt.Sprintf("%v(window=%d)", e.Kind, e.Window)
	}
}

// EventSource delivers window system events to a single consumer goroutine.
type EventSource interface {
	// Wait blocks until an event is available and returns it. It returns a
	// KindTimerFired event once deadline has passed and nothing else is
	// pending.
	Wait(deadline time.Time) Event
	// Wake interrupts a blocked Wait. Safe to call from any goroutine.
	Wake()
}
