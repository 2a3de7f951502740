package glgpu

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/matjam/photoframe/internal/gpu"
)

type device struct {
	maxTextureSize int
	destroyed      bool
}

// texture is an OpenGL texture ID and its size.
type texture struct {
	id     uint32
	width  int
	height int
	format gpu.TextureFormat
}

func (t *texture) Size() (int, int) {
	return t.width, t.height
}

func (t *texture) Format() gpu.TextureFormat {
	return t.format
}

func (t *texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

func (d *device) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	if d.destroyed {
		return nil, fmt.Errorf("create texture %q: device destroyed", desc.Label)
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	if desc.Width > d.maxTextureSize || desc.Height > d.maxTextureSize {
		return nil, fmt.Errorf("create texture %q: %dx%d exceeds max texture size %d",
			desc.Label, desc.Width, desc.Height, d.maxTextureSize)
	}
	pixelFormat, err := glFormat(desc.Format)
	if err != nil {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	tex := &texture{width: desc.Width, height: desc.Height, format: desc.Format}

	gl.GenTextures(1, &tex.id)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Allocate storage only; contents arrive through WriteTexture.
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(desc.Width), int32(desc.Height), 0,
		pixelFormat, gl.UNSIGNED_BYTE, nil)

	if err := glError("create texture " + desc.Label); err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

func (d *device) CreateCommandEncoder(label string) gpu.CommandEncoder {
	return &encoder{label: label}
}

func (d *device) Destroy() {
	d.destroyed = true
}

type queue struct {
	device *device
}

func (q *queue) WriteTexture(t gpu.Texture, data []byte) error {
	tex, ok := t.(*texture)
	if !ok {
		return fmt.Errorf("write texture: foreign texture %T", t)
	}
	if err := gpu.CheckTextureData(tex, data); err != nil {
		return err
	}
	upload(tex, data)
	return glError("write texture")
}

func (q *queue) Submit(buffers ...gpu.CommandBuffer) error {
	for _, b := range buffers {
		cb, ok := b.(*commandBuffer)
		if !ok {
			return fmt.Errorf("submit: foreign command buffer %T", b)
		}
		for _, cmd := range cb.cmds {
			cmd()
		}
		if err := glError("submit " + cb.label); err != nil {
			return err
		}
	}
	return nil
}

func upload(tex *texture, data []byte) {
	pixelFormat, _ := glFormat(tex.format)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
		int32(tex.width), int32(tex.height),
		pixelFormat, gl.UNSIGNED_BYTE, gl.Ptr(data))
}

func glFormat(f gpu.TextureFormat) (uint32, error) {
	switch f {
	case gpu.FormatRGBA8Unorm:
		return gl.RGBA, nil
	case gpu.FormatBGRA8Unorm:
		return gl.BGRA, nil
	default:
		return 0, fmt.Errorf("unsupported texture format %v", f)
	}
}

func glError(op string) error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	// drain any queued flags so the next check starts clean
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%s: GL error 0x%04x", op, code)
}
