// Package picture draws the background picture. It owns one texture of a
// fixed size and places it in whatever view it is asked to draw into.
package picture

import (
	"fmt"

	"github.com/matjam/photoframe/internal/gpu"
	"github.com/matjam/photoframe/internal/types"
)

type Layer struct {
	width   int
	height  int
	mode    types.ScalingMode
	texture gpu.Texture
	loaded  bool
}

func New(device gpu.Device, format gpu.TextureFormat, width, height int, mode types.ScalingMode) (*Layer, error) {
	// Picture data is always RGBA8 regardless of the surface format.
	tex, err := device.CreateTexture(gpu.TextureDescriptor{
		Label:  "picture",
		Width:  width,
		Height: height,
		Format: gpu.FormatRGBA8Unorm,
	})
	if err != nil {
		return nil, fmt.Errorf("picture layer: %w", err)
	}
	return &Layer{
		width:   width,
		height:  height,
		mode:    mode,
		texture: tex,
	}, nil
}

func (l *Layer) Size() (int, int) {
	return l.width, l.height
}

// SetPicture replaces the texture contents. The new picture shows from the
// next Draw.
func (l *Layer) SetPicture(queue gpu.Queue, data []byte) error {
	if err := queue.WriteTexture(l.texture, data); err != nil {
		return fmt.Errorf("picture layer: %w", err)
	}
	l.loaded = true
	return nil
}

// Draw records one pass that clears view to black and draws the picture.
func (l *Layer) Draw(device gpu.Device, view gpu.TextureView, enc gpu.CommandEncoder) error {
	pass := enc.BeginRenderPass(gpu.RenderPassDescriptor{
		Label:      "picture",
		Target:     view,
		Load:       gpu.LoadOpClear,
		ClearColor: gpu.Black,
	})
	if l.loaded {
		vw, vh := view.Size()
		pass.DrawTexture(l.texture, placement(l.mode, l.width, l.height, vw, vh), gpu.BlendReplace)
	}
	pass.End()
	return nil
}

func (l *Layer) Release() {
	if l.texture != nil {
		l.texture.Destroy()
		l.texture = nil
	}
}

// placement returns where a tw x th picture lands in a sw x sh view.
func placement(mode types.ScalingMode, tw, th, sw, sh int) gpu.Quad {
	if tw <= 0 || th <= 0 || sw <= 0 || sh <= 0 {
		return gpu.FullQuad
	}

	tAspect := float32(tw) / float32(th)
	sAspect := float32(sw) / float32(sh)

	var hx, hy float32
	switch mode {
	case types.ScalingModeFitHorizontal:
		hx = 1.0
		// height scaled proportionally to width
		hy = sAspect / tAspect
	case types.ScalingModeFitVertical:
		hy = 1.0
		// width scaled proportionally to height
		hx = tAspect / sAspect
	case types.ScalingModeCenter:
		// fit inside without cropping or stretching
		if tAspect > sAspect {
			hx, hy = 1.0, sAspect/tAspect
		} else {
			hx, hy = tAspect/sAspect, 1.0
		}
	default:
		hx, hy = 1.0, 1.0
	}

	return gpu.Quad{X0: -hx, Y0: -hy, X1: hx, Y1: hy}
}
