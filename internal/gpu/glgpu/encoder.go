package glgpu

import (
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/matjam/photoframe/internal/gpu"
)

// encoder records GL calls as closures. Nothing touches the context until the
// finished buffer is submitted.
type encoder struct {
	label string
	cmds  []func()
}

type commandBuffer struct {
	label string
	cmds  []func()
}

func (b *commandBuffer) Label() string {
	return b.label
}

func (e *encoder) WriteTexture(t gpu.Texture, data []byte) {
	tex, ok := t.(*texture)
	if !ok {
		panic("glgpu: foreign texture in WriteTexture")
	}
	e.cmds = append(e.cmds, func() {
		upload(tex, data)
	})
}

func (e *encoder) BeginRenderPass(desc gpu.RenderPassDescriptor) gpu.RenderPass {
	w, h := desc.Target.Size()
	clearFirst := desc.Load == gpu.LoadOpClear
	c := desc.ClearColor
	e.cmds = append(e.cmds, func() {
		gl.Viewport(0, 0, int32(w), int32(h))
		if clearFirst {
			gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
			gl.Clear(gl.COLOR_BUFFER_BIT)
		}
	})
	return &renderPass{encoder: e}
}

func (e *encoder) Finish() gpu.CommandBuffer {
	cb := &commandBuffer{label: e.label, cmds: e.cmds}
	e.cmds = nil
	return cb
}

type renderPass struct {
	encoder *encoder
	ended   bool
}

func (p *renderPass) DrawTexture(t gpu.Texture, dst gpu.Quad, blend gpu.BlendMode) {
	if p.ended {
		panic("glgpu: draw after End")
	}
	tex, ok := t.(*texture)
	if !ok {
		panic("glgpu: foreign texture in DrawTexture")
	}
	p.encoder.cmds = append(p.encoder.cmds, func() {
		switch blend {
		case gpu.BlendPremultipliedAlpha:
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
		default:
			gl.Disable(gl.BLEND)
		}
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Color4f(1, 1, 1, 1)
		drawQuad(dst)
		gl.Disable(gl.TEXTURE_2D)
		gl.Disable(gl.BLEND)
	})
}

func (p *renderPass) End() {
	p.ended = true
}

// drawQuad maps texture row 0 to the top edge of q.
func drawQuad(q gpu.Quad) {
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(q.X0, q.Y0)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(q.X1, q.Y0)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(q.X1, q.Y1)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(q.X0, q.Y1)
	gl.End()
}
