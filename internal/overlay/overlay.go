// Package overlay draws the clock text on top of the picture. The text is
// rasterized on the CPU into a window-sized canvas that is uploaded only when
// the text or the window size changes.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/matjam/photoframe/internal/gpu"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultFormat = "15:04"
	minFontSize   = 8.0
)

var parseFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

type Options struct {
	// Format is a Go time layout.
	Format string
	// FontSize in pixels. Zero sizes the text from the window height.
	FontSize float64
	Color    color.Color
	Shadow   bool
	Clock    clockwork.Clock
}

func (o *Options) setDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Color == nil {
		o.Color = color.White
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
}

type Layer struct {
	opts Options

	width   int
	height  int
	canvas  *image.RGBA
	texture gpu.Texture

	font     *opentype.Font
	face     font.Face
	faceSize float64

	text  string
	dirty bool
}

func New(device gpu.Device, format gpu.TextureFormat, width, height int, opts Options) (*Layer, error) {
	opts.setDefaults()

	f, err := parseFont()
	if err != nil {
		return nil, fmt.Errorf("text layer: parse font: %w", err)
	}

	l := &Layer{opts: opts, font: f}
	l.Resize(width, height)
	if err := l.allocate(device); err != nil {
		return nil, err
	}
	return l, nil
}

// Resize adopts a new window size. Storage is reallocated on the next Draw.
func (l *Layer) Resize(width, height int) {
	if width == l.width && height == l.height {
		return
	}
	l.width = width
	l.height = height
	l.dirty = true
}

func (l *Layer) Size() (int, int) {
	return l.width, l.height
}

// Text returns the most recently rasterized text.
func (l *Layer) Text() string {
	return l.text
}

// Draw records the upload of changed text, then one pass that blends the
// canvas over what is already in view.
func (l *Layer) Draw(device gpu.Device, view gpu.TextureView, enc gpu.CommandEncoder) error {
	if err := l.allocate(device); err != nil {
		return err
	}

	text := l.opts.Clock.Now().Format(l.opts.Format)
	if text != l.text || l.dirty {
		if err := l.rasterize(text); err != nil {
			return err
		}
		enc.WriteTexture(l.texture, l.canvas.Pix)
		l.text = text
		l.dirty = false
	}

	pass := enc.BeginRenderPass(gpu.RenderPassDescriptor{
		Label:  "text",
		Target: view,
		Load:   gpu.LoadOpLoad,
	})
	pass.DrawTexture(l.texture, gpu.FullQuad, gpu.BlendPremultipliedAlpha)
	pass.End()
	return nil
}

func (l *Layer) Release() {
	if l.texture != nil {
		l.texture.Destroy()
		l.texture = nil
	}
	if l.face != nil {
		l.face.Close()
		l.face = nil
	}
}

func (l *Layer) allocate(device gpu.Device) error {
	if l.texture != nil {
		tw, th := l.texture.Size()
		if tw == l.width && th == l.height {
			return nil
		}
		l.texture.Destroy()
		l.texture = nil
	}

	tex, err := device.CreateTexture(gpu.TextureDescriptor{
		Label:  "text",
		Width:  l.width,
		Height: l.height,
		Format: gpu.FormatRGBA8Unorm,
	})
	if err != nil {
		return fmt.Errorf("text layer: %w", err)
	}
	l.texture = tex
	l.canvas = image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	l.dirty = true
	return nil
}

func (l *Layer) fontSize() float64 {
	size := l.opts.FontSize
	if size <= 0 {
		size = float64(l.height) / 6
	}
	return max(size, minFontSize)
}

func (l *Layer) ensureFace() error {
	size := l.fontSize()
	if l.face != nil && l.faceSize == size {
		return nil
	}
	face, err := opentype.NewFace(l.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("text layer: font face: %w", err)
	}
	if l.face != nil {
		l.face.Close()
	}
	l.face = face
	l.faceSize = size
	return nil
}

// rasterize draws text into the bottom right corner of a cleared canvas.
func (l *Layer) rasterize(text string) error {
	if err := l.ensureFace(); err != nil {
		return err
	}
	clear(l.canvas.Pix)

	d := &font.Drawer{Dst: l.canvas, Face: l.face}
	margin := fixed.I(int(l.faceSize / 3))
	advance := d.MeasureString(text)
	descent := l.face.Metrics().Descent

	origin := fixed.Point26_6{
		X: fixed.I(l.width) - margin - advance,
		Y: fixed.I(l.height) - margin - descent,
	}

	if l.opts.Shadow {
		offset := fixed.I(max(1, int(l.faceSize/24)))
		d.Src = image.NewUniform(color.RGBA{A: 160})
		d.Dot = fixed.Point26_6{X: origin.X + offset, Y: origin.Y + offset}
		d.DrawString(text)
	}

	d.Src = image.NewUniform(l.opts.Color)
	d.Dot = origin
	d.DrawString(text)
	return nil
}
