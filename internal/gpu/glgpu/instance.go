// Package glgpu implements the gpu contracts on top of a legacy OpenGL 2.1
// context owned by a window. Every call must happen on the thread that owns
// the context.
package glgpu

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/matjam/photoframe/internal/gpu"
)

const backendName = "OpenGL 2.1"

type Instance struct {
	initialized bool
}

func NewInstance() *Instance {
	return &Instance{}
}

// CreateSurface makes the target's context current; the surface and every
// resource created later belong to that context.
func (i *Instance) CreateSurface(target gpu.SurfaceTarget) (gpu.Surface, error) {
	if target == nil {
		return nil, fmt.Errorf("create surface: nil target")
	}
	target.MakeContextCurrent()
	return &surface{target: target}, nil
}

func (i *Instance) RequestAdapter(ctx context.Context, opts gpu.AdapterOptions) (gpu.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, ok := opts.CompatibleSurface.(*surface)
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: surface was not created by this instance", gpu.ErrIncompatibleSurface)
	}
	s.target.MakeContextCurrent()

	if !i.initialized {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("%w: %v", gpu.ErrNoAdapter, err)
		}
		i.initialized = true
	}

	info := gpu.AdapterInfo{
		Name:    gl.GoStr(gl.GetString(gl.RENDERER)),
		Vendor:  gl.GoStr(gl.GetString(gl.VENDOR)),
		Driver:  gl.GoStr(gl.GetString(gl.VERSION)),
		Backend: backendName,
	}

	if opts.ForceFallbackAdapter && !isSoftware(info.Name) {
		return nil, fmt.Errorf("%w: fallback adapter requested, context renderer is %q", gpu.ErrNoAdapter, info.Name)
	}

	// The context is created by the window; there is only ever one adapter
	// to choose from, so the preference is informational.
	log.Debugf("adapter power preference %d, using %v", opts.PowerPreference, info)

	return &adapter{info: info, surface: s}, nil
}

func isSoftware(renderer string) bool {
	r := strings.ToLower(renderer)
	return strings.Contains(r, "llvmpipe") ||
		strings.Contains(r, "softpipe") ||
		strings.Contains(r, "software")
}

type adapter struct {
	info    gpu.AdapterInfo
	surface *surface
}

func (a *adapter) Info() gpu.AdapterInfo {
	return a.info
}

func (a *adapter) RequestDevice(ctx context.Context) (gpu.Device, gpu.Queue, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var major, minor int
	if _, err := fmt.Sscanf(a.info.Driver, "%d.%d", &major, &minor); err != nil {
		return nil, nil, fmt.Errorf("%w: unrecognised GL version %q", gpu.ErrNoDevice, a.info.Driver)
	}
	if major < 2 || (major == 2 && minor < 1) {
		return nil, nil, fmt.Errorf("%w: need OpenGL 2.1, have %d.%d", gpu.ErrNoDevice, major, minor)
	}

	var maxTexture int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTexture)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.Disable(gl.DEPTH_TEST)

	d := &device{maxTextureSize: int(maxTexture)}
	return d, &queue{device: d}, nil
}
