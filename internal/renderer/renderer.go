// Package renderer owns every GPU resource of the application: the surface
// bound to the window, the device and queue, the surface configuration and
// the two draw layers. Callers only see redraw, resize and picture swaps.
//
// A Renderer is not safe for concurrent use; it belongs to the thread that
// runs the event loop.
package renderer

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/matjam/photoframe/internal/gpu"
	"github.com/matjam/photoframe/internal/window"
)

const maxReconfigures = 3

// Window is the window a Renderer presents to.
type Window interface {
	gpu.SurfaceTarget
	ID() window.ID
	RequestRedraw()
}

type PictureLayer interface {
	Draw(device gpu.Device, view gpu.TextureView, enc gpu.CommandEncoder) error
	SetPicture(queue gpu.Queue, data []byte) error
	Release()
}

type TextLayer interface {
	Draw(device gpu.Device, view gpu.TextureView, enc gpu.CommandEncoder) error
	Resize(width, height int)
	Release()
}

type (
	PictureLayerFunc func(device gpu.Device, format gpu.TextureFormat, width, height int) (PictureLayer, error)
	TextLayerFunc    func(device gpu.Device, format gpu.TextureFormat, width, height int) (TextLayer, error)
)

type Option func(*options)

type options struct {
	newPicture PictureLayerFunc
	newText    TextLayerFunc
	power      gpu.PowerPreference
}

func WithPictureLayer(f PictureLayerFunc) Option {
	return func(o *options) { o.newPicture = f }
}

func WithTextLayer(f TextLayerFunc) Option {
	return func(o *options) { o.newText = f }
}

// WithPowerPreference overrides the default low-power adapter preference.
func WithPowerPreference(p gpu.PowerPreference) Option {
	return func(o *options) { o.power = p }
}

type Renderer struct {
	window  Window
	surface gpu.Surface
	device  gpu.Device
	queue   gpu.Queue
	config  gpu.SurfaceConfig
	adapter gpu.AdapterInfo

	picture       PictureLayer
	text          TextLayer
	pictureWidth  int
	pictureHeight int
}

// New acquires the GPU for win and builds both layers. The picture layer is
// sized pictureWidth x pictureHeight for its whole life; the text layer
// follows the window.
func New(ctx context.Context, instance gpu.Instance, win Window, pictureWidth, pictureHeight int, opts ...Option) (*Renderer, error) {
	o := options{power: gpu.PowerPreferenceLowPower}
	for _, opt := range opts {
		opt(&o)
	}
	if o.newPicture == nil || o.newText == nil {
		return nil, errors.New("renderer: picture and text layer constructors are required")
	}

	log.Debug("create surface")
	surface, err := instance.CreateSurface(win)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}

	log.Debug("request adapter")
	adapter, err := instance.RequestAdapter(ctx, gpu.AdapterOptions{
		PowerPreference:   o.power,
		CompatibleSurface: surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	log.Infof("using adapter %v", adapter.Info())

	log.Debug("request device")
	device, queue, err := adapter.RequestDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	width, height := win.FramebufferSize()
	config, err := surface.DefaultConfig(adapter, width, height)
	if err != nil {
		device.Destroy()
		return nil, fmt.Errorf("derive surface configuration for %dx%d: %w", width, height, err)
	}
	log.Debugf("configure surface %dx%d %v", config.Width, config.Height, config.Format)
	if err := surface.Configure(device, config); err != nil {
		device.Destroy()
		return nil, fmt.Errorf("configure surface: %w", err)
	}

	r := &Renderer{
		window:        win,
		surface:       surface,
		device:        device,
		queue:         queue,
		config:        config,
		adapter:       adapter.Info(),
		pictureWidth:  pictureWidth,
		pictureHeight: pictureHeight,
	}

	log.Debug("create layers")
	r.picture, err = o.newPicture(device, config.Format, pictureWidth, pictureHeight)
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("create picture layer: %w", err)
	}
	r.text, err = o.newText(device, config.Format, config.Width, config.Height)
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("create text layer: %w", err)
	}

	return r, nil
}

func (r *Renderer) RequestRedraw() {
	r.window.RequestRedraw()
}

// Draw composes one frame: the picture pass, then the text pass over it, in
// a single submission.
func (r *Renderer) Draw() error {
	frame, err := r.acquire()
	if errors.Is(err, gpu.ErrSurfaceTimeout) {
		log.Warn("no frame available, skipping redraw")
		return nil
	}
	if err != nil {
		return err
	}

	view := frame.View()
	enc := r.device.CreateCommandEncoder("frame")

	if err := r.picture.Draw(r.device, view, enc); err != nil {
		return fmt.Errorf("draw picture: %w", err)
	}
	if err := r.text.Draw(r.device, view, enc); err != nil {
		return fmt.Errorf("draw text: %w", err)
	}

	if err := r.queue.Submit(enc.Finish()); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	if err := frame.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// acquire gets the next frame, reconfiguring the surface from the window's
// current size when it was lost or outdated.
func (r *Renderer) acquire() (gpu.SurfaceTexture, error) {
	for attempt := 0; ; attempt++ {
		frame, err := r.surface.CurrentTexture()
		if err == nil {
			return frame, nil
		}
		if !errors.Is(err, gpu.ErrSurfaceLost) && !errors.Is(err, gpu.ErrSurfaceOutdated) {
			return nil, fmt.Errorf("acquire frame: %w", err)
		}
		if attempt == maxReconfigures {
			return nil, fmt.Errorf("acquire frame after %d reconfigures: %w", attempt, err)
		}

		log.Warnf("acquire frame: %v, reconfiguring surface", err)
		width, height := r.window.FramebufferSize()
		if width > 0 && height > 0 {
			r.config.Width = width
			r.config.Height = height
			r.text.Resize(width, height)
		}
		if err := r.surface.Configure(r.device, r.config); err != nil {
			return nil, fmt.Errorf("reconfigure surface: %w", err)
		}
	}
}

// SetPicture uploads a new picture, shown from the next Draw. buf must hold
// exactly width*height*4 bytes for the picture size given to New.
func (r *Renderer) SetPicture(buf []byte) error {
	if want := r.pictureWidth * r.pictureHeight * 4; len(buf) != want {
		panic(fmt.Sprintf("renderer: picture buffer has %d bytes, want %d", len(buf), want))
	}
	return r.picture.SetPicture(r.queue, buf)
}

// Resize applies a new window size. Zero-sized windows (minimized, or not
// yet mapped) are ignored and the current configuration is kept.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		log.Debugf("ignoring resize to %dx%d", width, height)
		return
	}

	cfg := r.config
	cfg.Width = width
	cfg.Height = height
	if err := r.surface.Configure(r.device, cfg); err != nil {
		// Only reachable with an invalid config, which the guard above
		// excludes. Keep the old configuration.
		log.Errorf("resize surface to %dx%d: %v", width, height, err)
		return
	}
	r.config = cfg
	r.text.Resize(width, height)
}

func (r *Renderer) MatchesWindow(id window.ID) bool {
	return r.window.ID() == id
}

func (r *Renderer) Config() gpu.SurfaceConfig {
	return r.config
}

func (r *Renderer) AdapterInfo() gpu.AdapterInfo {
	return r.adapter
}

// Release frees the layers and the device. The Renderer must not be used
// afterwards.
func (r *Renderer) Release() {
	if r.text != nil {
		r.text.Release()
		r.text = nil
	}
	if r.picture != nil {
		r.picture.Release()
		r.picture = nil
	}
	if r.device != nil {
		r.device.Destroy()
		r.device = nil
	}
}
