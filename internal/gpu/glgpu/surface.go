package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/matjam/photoframe/internal/gpu"
)

// surface presents through the default framebuffer of the window context.
type surface struct {
	target     gpu.SurfaceTarget
	config     gpu.SurfaceConfig
	configured bool
}

func (s *surface) DefaultConfig(a gpu.Adapter, width, height int) (gpu.SurfaceConfig, error) {
	if ad, ok := a.(*adapter); !ok || ad.surface != s {
		return gpu.SurfaceConfig{}, gpu.ErrIncompatibleSurface
	}

	cfg := gpu.SurfaceConfig{
		Format:      gpu.FormatRGBA8Unorm,
		Width:       width,
		Height:      height,
		PresentMode: gpu.PresentModeFifo,
	}
	if err := cfg.Validate(); err != nil {
		return gpu.SurfaceConfig{}, err
	}
	return cfg, nil
}

func (s *surface) Configure(d gpu.Device, cfg gpu.SurfaceConfig) error {
	if _, ok := d.(*device); !ok {
		return fmt.Errorf("configure surface: foreign device %T", d)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.target.MakeContextCurrent()
	switch cfg.PresentMode {
	case gpu.PresentModeImmediate:
		s.target.SwapInterval(0)
	default:
		s.target.SwapInterval(1)
	}
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	s.config = cfg
	s.configured = true
	return nil
}

func (s *surface) CurrentTexture() (gpu.SurfaceTexture, error) {
	if !s.configured {
		return nil, fmt.Errorf("%w: not configured", gpu.ErrSurfaceLost)
	}

	w, h := s.target.FramebufferSize()
	if w == 0 || h == 0 {
		// minimized
		return nil, gpu.ErrSurfaceTimeout
	}
	if w != s.config.Width || h != s.config.Height {
		return nil, fmt.Errorf("%w: framebuffer %dx%d, configured %dx%d",
			gpu.ErrSurfaceOutdated, w, h, s.config.Width, s.config.Height)
	}

	return &frame{surface: s, view: framebufferView{width: w, height: h}}, nil
}

type frame struct {
	surface   *surface
	view      framebufferView
	presented bool
}

func (f *frame) View() gpu.TextureView {
	return f.view
}

func (f *frame) Present() error {
	if f.presented {
		return fmt.Errorf("frame already presented")
	}
	f.presented = true
	f.surface.target.SwapBuffers()
	return nil
}

// framebufferView targets the window's default framebuffer.
type framebufferView struct {
	width, height int
}

func (v framebufferView) Size() (int, int) {
	return v.width, v.height
}
