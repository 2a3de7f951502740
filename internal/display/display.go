// Package display runs the event loop that drives the renderer: a redraw
// timer, a picture rotation timer, window events and control commands, all
// handled one at a time on the thread that owns the window.
package display

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/matjam/photoframe/internal/gpu"
	"github.com/matjam/photoframe/internal/pictures"
	"github.com/matjam/photoframe/internal/window"
)

const commandQueueSize = 4

// Renderer is the part of renderer.Renderer the driver uses.
type Renderer interface {
	RequestRedraw()
	Draw() error
	SetPicture(buf []byte) error
	Resize(width, height int)
	MatchesWindow(id window.ID) bool
	Config() gpu.SurfaceConfig
	Release()
}

type Config struct {
	RedrawInterval   time.Duration
	RotationInterval time.Duration
}

func (c Config) Validate() error {
	if c.RedrawInterval <= 0 {
		return fmt.Errorf("redraw interval must be positive, got %v", c.RedrawInterval)
	}
	if c.RotationInterval <= 0 {
		return fmt.Errorf("rotation interval must be positive, got %v", c.RotationInterval)
	}
	return nil
}

type Option func(*Driver)

func WithClock(clock clockwork.Clock) Option {
	return func(d *Driver) { d.clock = clock }
}

// WithPicker replaces the uniform random choice of the next picture. pick
// gets the number of pictures and returns an index.
func WithPicker(pick func(n int) int) Option {
	return func(d *Driver) { d.pick = pick }
}

type Driver struct {
	renderer Renderer
	events   window.EventSource
	set      *pictures.Set
	clock    clockwork.Clock
	pick     func(n int) int

	redraw   *RedrawTimer
	rotation *RotationTimer
	cmds     chan Command

	mu     sync.Mutex
	state  State
	status Status
}

func NewDriver(r Renderer, events window.EventSource, set *pictures.Set, cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if set == nil || set.Len() == 0 {
		return nil, pictures.ErrNoPictures
	}

	d := &Driver{
		renderer: r,
		events:   events,
		set:      set,
		clock:    clockwork.NewRealClock(),
		pick:     rand.Intn,
		redraw:   NewRedrawTimer(cfg.RedrawInterval),
		rotation: NewRotationTimer(cfg.RotationInterval),
		cmds:     make(chan Command, commandQueueSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.status.Pictures = set.Len()
	return d, nil
}

// Run blocks until the window is closed, a stop command arrives or ctx is
// cancelled. The renderer is released before Run returns. Run must be called
// from the thread that owns the window.
func (d *Driver) Run(ctx context.Context) error {
	defer d.renderer.Release()
	defer d.setState(StateTerminal)

	stop := context.AfterFunc(ctx, d.events.Wake)
	defer stop()

	if err := d.init(); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			log.Info("context cancelled, stopping display")
			return nil
		}

		if cmd, ok := d.nextCommand(); ok {
			if d.handleCommand(cmd) {
				return nil
			}
			continue
		}

		ev := d.events.Wait(d.redraw.Deadline())
		done, err := d.handleEvent(ev)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (d *Driver) init() error {
	now := d.clock.Now()
	if err := d.rotate(now); err != nil {
		return err
	}
	d.redraw.Arm(now)
	d.renderer.RequestRedraw()

	cfg := d.renderer.Config()
	d.mu.Lock()
	d.status.Width = cfg.Width
	d.status.Height = cfg.Height
	d.mu.Unlock()

	d.setState(StateWaiting)
	return nil
}

// handleEvent processes one window event and reports whether the loop should
// end.
func (d *Driver) handleEvent(ev window.Event) (bool, error) {
	if ev.Kind == window.KindTimerFired {
		d.renderer.RequestRedraw()
		d.redraw.Arm(d.clock.Now())
		return false, nil
	}
	if ev.Kind == window.KindWake || ev.Kind == window.KindOther {
		return false, nil
	}
	if !d.renderer.MatchesWindow(ev.Window) {
		log.Debugf("ignoring %v for another window", ev)
		return false, nil
	}

	switch ev.Kind {
	case window.KindRedrawDue:
		return false, d.drawFrame()
	case window.KindResized, window.KindScaleChanged:
		log.Debugf("%v", ev)
		d.renderer.Resize(ev.Width, ev.Height)
		cfg := d.renderer.Config()
		d.mu.Lock()
		d.status.Width = cfg.Width
		d.status.Height = cfg.Height
		d.mu.Unlock()
	case window.KindCloseRequested:
		log.Info("window closed")
		return true, nil
	}
	return false, nil
}

func (d *Driver) drawFrame() error {
	now := d.clock.Now()
	if d.rotation.Due(now) {
		if err := d.rotate(now); err != nil {
			return err
		}
	}
	if err := d.renderer.Draw(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	d.mu.Lock()
	d.status.Frames++
	d.mu.Unlock()
	return nil
}

// rotate shows a randomly chosen picture and restarts the rotation interval.
// Repeats are allowed.
func (d *Driver) rotate(now time.Time) error {
	idx := d.pick(d.set.Len())
	p := d.set.At(idx)
	log.Infof("showing %s", p.Name)

	if err := d.renderer.SetPicture(p.Pix); err != nil {
		return fmt.Errorf("set picture %s: %w", p.Name, err)
	}
	d.rotation.Reset(now)

	d.mu.Lock()
	d.status.Picture = p.Name
	d.status.Swaps++
	d.status.LastSwap = now
	d.status.NextSwap = d.rotation.Next()
	d.mu.Unlock()
	return nil
}

func (d *Driver) nextCommand() (Command, bool) {
	select {
	case cmd := <-d.cmds:
		return cmd, true
	default:
		return Command{}, false
	}
}

// handleCommand runs a control command and reports whether the loop should
// end.
func (d *Driver) handleCommand(cmd Command) bool {
	switch cmd.Type {
	case CommandStop:
		log.Info("received stop command")
		return true
	case CommandNext:
		log.Info("received next command")
		d.rotation.Force()
		d.renderer.RequestRedraw()
	default:
		log.Errorf("unknown command: %q", cmd.Type)
	}
	return false
}

// EnqueueCommand queues cmd for the loop thread and wakes it. It never
// blocks; ErrCommandQueueFull is returned when the loop is not keeping up.
// Safe to call from any goroutine.
func (d *Driver) EnqueueCommand(cmd Command) error {
	select {
	case d.cmds <- cmd:
		d.events.Wake()
		return nil
	default:
		return fmt.Errorf("%s: %w", cmd.Type, ErrCommandQueueFull)
	}
}

// Status returns a snapshot of the driver. Safe to call from any goroutine.
func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.status
	s.State = d.state.String()
	return s
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Driver) setState(s State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = s
}

