// Package gpu defines the small GPU vocabulary the renderer is written
// against: an instance hands out a surface and an adapter, the adapter hands
// out a device and its queue, and frames are recorded into command encoders
// as render passes and submitted to the queue in one piece.
package gpu

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoAdapter           = errors.New("no compatible adapter")
	ErrNoDevice            = errors.New("device request failed")
	ErrIncompatibleSurface = errors.New("surface not supported by adapter")
	ErrInvalidConfig       = errors.New("invalid surface configuration")
	ErrSizeMismatch        = errors.New("texture data size mismatch")

	// Surface acquisition errors. Lost and outdated surfaces recover after a
	// reconfigure; a timeout means no frame is available right now.
	ErrSurfaceLost     = errors.New("surface lost")
	ErrSurfaceOutdated = errors.New("surface outdated")
	ErrSurfaceTimeout  = errors.New("surface timeout")
)

type TextureFormat int

const (
	FormatUndefined TextureFormat = iota
	FormatRGBA8Unorm
	FormatBGRA8Unorm
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8Unorm:
		return "rgba8unorm"
	case FormatBGRA8Unorm:
		return "bgra8unorm"
	default:
		return "undefined"
	}
}

// BytesPerPixel returns 0 for FormatUndefined.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA8Unorm, FormatBGRA8Unorm:
		return 4
	default:
		return 0
	}
}

type PowerPreference int

const (
	PowerPreferenceNone PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

type PresentMode int

const (
	PresentModeFifo PresentMode = iota // vsync
	PresentModeImmediate
)

// SurfaceConfig describes how frames are presented to a window.
type SurfaceConfig struct {
	Format      TextureFormat
	Width       int
	Height      int
	PresentMode PresentMode
}

func (c SurfaceConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("%w: format %v", ErrInvalidConfig, c.Format)
	}
	return nil
}

// SurfaceTarget is the window side of a surface.
type SurfaceTarget interface {
	MakeContextCurrent()
	SwapBuffers()
	SwapInterval(interval int)
	FramebufferSize() (width, height int)
}

type AdapterOptions struct {
	PowerPreference      PowerPreference
	CompatibleSurface    Surface
	ForceFallbackAdapter bool
}

type AdapterInfo struct {
	Name    string
	Vendor  string
	Driver  string
	Backend string
}

func (i AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, %s, %s)", i.Name, i.Vendor, i.Driver, i.Backend)
}

type Instance interface {
	CreateSurface(target SurfaceTarget) (Surface, error)
	RequestAdapter(ctx context.Context, opts AdapterOptions) (Adapter, error)
}

type Adapter interface {
	Info() AdapterInfo
	RequestDevice(ctx context.Context) (Device, Queue, error)
}

type Surface interface {
	// DefaultConfig derives a configuration for the given framebuffer size.
	DefaultConfig(adapter Adapter, width, height int) (SurfaceConfig, error)
	Configure(device Device, cfg SurfaceConfig) error
	// CurrentTexture acquires the next presentable frame. It may block on
	// presentation backpressure.
	CurrentTexture() (SurfaceTexture, error)
}

type SurfaceTexture interface {
	View() TextureView
	Present() error
}

type TextureView interface {
	Size() (width, height int)
}

type TextureDescriptor struct {
	Label  string
	Width  int
	Height int
	Format TextureFormat
}

type Texture interface {
	Size() (width, height int)
	Format() TextureFormat
	Destroy()
}

type Device interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
	CreateCommandEncoder(label string) CommandEncoder
	Destroy()
}

type Queue interface {
	// WriteTexture replaces the full contents of tex immediately.
	WriteTexture(tex Texture, data []byte) error
	Submit(buffers ...CommandBuffer) error
}

type CommandBuffer interface {
	Label() string
}

type CommandEncoder interface {
	// WriteTexture records a full texture upload ahead of later passes. data
	// must not change until the buffer is submitted.
	WriteTexture(tex Texture, data []byte)
	BeginRenderPass(desc RenderPassDescriptor) RenderPass
	Finish() CommandBuffer
}

type LoadOp int

const (
	LoadOpClear LoadOp = iota
	LoadOpLoad
)

type Color struct {
	R, G, B, A float64
}

var Black = Color{A: 1}

type RenderPassDescriptor struct {
	Label      string
	Target     TextureView
	Load       LoadOp
	ClearColor Color
}

type BlendMode int

const (
	BlendReplace BlendMode = iota
	BlendPremultipliedAlpha
)

// Quad is a destination rectangle in normalized device coordinates, where
// (-1,-1) is the bottom left corner of the target and (1,1) the top right.
type Quad struct {
	X0, Y0, X1, Y1 float32
}

var FullQuad = Quad{X0: -1, Y0: -1, X1: 1, Y1: 1}

type RenderPass interface {
	// DrawTexture samples the whole texture into dst; the first texture row
	// lands at the top of dst.
	DrawTexture(tex Texture, dst Quad, blend BlendMode)
	End()
}

// CheckTextureData reports whether data fills tex exactly.
func CheckTextureData(tex Texture, data []byte) error {
	w, h := tex.Size()
	want := w * h * tex.Format().BytesPerPixel()
	if len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d %v", ErrSizeMismatch, len(data), want, w, h, tex.Format())
	}
	return nil
}
