// Package gputest provides recording fakes of the gpu contracts.
package gputest

import (
	"context"
	"fmt"
	"slices"

	"github.com/matjam/photoframe/internal/gpu"
)

// Instance hands out a single Surface, Device and Queue. Set the *Err fields
// to make the matching request fail.
type Instance struct {
	SurfaceErr error
	AdapterErr error
	DeviceErr  error

	Surface *Surface
	Device  *Device
	Queue   *Queue

	AdapterOptions gpu.AdapterOptions
	Target         gpu.SurfaceTarget
}

func NewInstance() *Instance {
	d := &Device{}
	return &Instance{
		Surface: &Surface{},
		Device:  d,
		Queue:   &Queue{Device: d},
	}
}

func (i *Instance) CreateSurface(target gpu.SurfaceTarget) (gpu.Surface, error) {
	if i.SurfaceErr != nil {
		return nil, i.SurfaceErr
	}
	i.Target = target
	i.Surface.Target = target
	return i.Surface, nil
}

func (i *Instance) RequestAdapter(ctx context.Context, opts gpu.AdapterOptions) (gpu.Adapter, error) {
	i.AdapterOptions = opts
	if i.AdapterErr != nil {
		return nil, i.AdapterErr
	}
	return &Adapter{instance: i}, nil
}

type Adapter struct {
	instance *Instance
}

func (a *Adapter) Info() gpu.AdapterInfo {
	return gpu.AdapterInfo{Name: "fake", Vendor: "gputest", Driver: "0.0", Backend: "fake"}
}

func (a *Adapter) RequestDevice(ctx context.Context) (gpu.Device, gpu.Queue, error) {
	if a.instance.DeviceErr != nil {
		return nil, nil, a.instance.DeviceErr
	}
	return a.instance.Device, a.instance.Queue, nil
}

type Surface struct {
	Target gpu.SurfaceTarget

	DefaultErr error
	// AcquireErrs are returned by successive CurrentTexture calls before a
	// frame is handed out.
	AcquireErrs []error

	Configured []gpu.SurfaceConfig
	Acquired   int
	Presented  int
}

func (s *Surface) DefaultConfig(a gpu.Adapter, width, height int) (gpu.SurfaceConfig, error) {
	if s.DefaultErr != nil {
		return gpu.SurfaceConfig{}, s.DefaultErr
	}
	cfg := gpu.SurfaceConfig{Format: gpu.FormatBGRA8Unorm, Width: width, Height: height}
	if err := cfg.Validate(); err != nil {
		return gpu.SurfaceConfig{}, err
	}
	return cfg, nil
}

func (s *Surface) Configure(d gpu.Device, cfg gpu.SurfaceConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.Configured = append(s.Configured, cfg)
	return nil
}

// Config returns the most recently applied configuration.
func (s *Surface) Config() gpu.SurfaceConfig {
	if len(s.Configured) == 0 {
		return gpu.SurfaceConfig{}
	}
	return s.Configured[len(s.Configured)-1]
}

func (s *Surface) CurrentTexture() (gpu.SurfaceTexture, error) {
	if len(s.AcquireErrs) > 0 {
		err := s.AcquireErrs[0]
		s.AcquireErrs = s.AcquireErrs[1:]
		return nil, err
	}
	cfg := s.Config()
	if cfg.Width == 0 {
		return nil, fmt.Errorf("%w: not configured", gpu.ErrSurfaceLost)
	}
	s.Acquired++
	return &SurfaceTexture{surface: s, view: View{Width: cfg.Width, Height: cfg.Height}}, nil
}

type SurfaceTexture struct {
	surface *Surface
	view    View
}

func (t *SurfaceTexture) View() gpu.TextureView {
	return t.view
}

func (t *SurfaceTexture) Present() error {
	t.surface.Presented++
	return nil
}

type View struct {
	Width, Height int
}

func (v View) Size() (int, int) {
	return v.Width, v.Height
}

type Device struct {
	CreateErr error
	Textures  []*Texture
	Encoders  []*Encoder
	Destroyed bool
}

func (d *Device) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	if d.CreateErr != nil {
		return nil, d.CreateErr
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	t := &Texture{Desc: desc}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) CreateCommandEncoder(label string) gpu.CommandEncoder {
	e := &Encoder{Label: label}
	d.Encoders = append(d.Encoders, e)
	return e
}

func (d *Device) Destroy() {
	d.Destroyed = true
}

type Texture struct {
	Desc      gpu.TextureDescriptor
	Data      []byte
	Writes    int
	Destroyed bool
}

func (t *Texture) Size() (int, int) {
	return t.Desc.Width, t.Desc.Height
}

func (t *Texture) Format() gpu.TextureFormat {
	return t.Desc.Format
}

func (t *Texture) Destroy() {
	t.Destroyed = true
}

func (t *Texture) write(data []byte) {
	t.Data = slices.Clone(data)
	t.Writes++
}

type Queue struct {
	Device    *Device
	SubmitErr error
	Submitted []*CommandBuffer
	Writes    int
}

func (q *Queue) WriteTexture(t gpu.Texture, data []byte) error {
	if err := gpu.CheckTextureData(t, data); err != nil {
		return err
	}
	t.(*Texture).write(data)
	q.Writes++
	return nil
}

func (q *Queue) Submit(buffers ...gpu.CommandBuffer) error {
	if q.SubmitErr != nil {
		return q.SubmitErr
	}
	for _, b := range buffers {
		cb := b.(*CommandBuffer)
		for _, op := range cb.Ops {
			if op.Kind == OpWriteTexture {
				op.Texture.write(op.Data)
			}
		}
		q.Submitted = append(q.Submitted, cb)
	}
	return nil
}

type OpKind string

const (
	OpWriteTexture OpKind = "write-texture"
	OpBeginPass    OpKind = "begin-pass"
	OpDrawTexture  OpKind = "draw-texture"
	OpEndPass      OpKind = "end-pass"
)

// Op is one recorded encoder command.
type Op struct {
	Kind    OpKind
	Label   string
	Texture *Texture
	Data    []byte
	Target  gpu.TextureView
	Load    gpu.LoadOp
	Quad    gpu.Quad
	Blend   gpu.BlendMode
}

type Encoder struct {
	Label    string
	Ops      []Op
	Finished bool
}

func (e *Encoder) WriteTexture(t gpu.Texture, data []byte) {
	e.Ops = append(e.Ops, Op{Kind: OpWriteTexture, Texture: t.(*Texture), Data: slices.Clone(data)})
}

func (e *Encoder) BeginRenderPass(desc gpu.RenderPassDescriptor) gpu.RenderPass {
	e.Ops = append(e.Ops, Op{Kind: OpBeginPass, Label: desc.Label, Target: desc.Target, Load: desc.Load})
	return &RenderPass{encoder: e}
}

func (e *Encoder) Finish() gpu.CommandBuffer {
	e.Finished = true
	return &CommandBuffer{Name: e.Label, Ops: e.Ops}
}

type CommandBuffer struct {
	Name string
	Ops  []Op
}

func (b *CommandBuffer) Label() string {
	return b.Name
}

// Passes returns the labels of the render passes in recording order.
func (b *CommandBuffer) Passes() []string {
	var labels []string
	for _, op := range b.Ops {
		if op.Kind == OpBeginPass {
			labels = append(labels, op.Label)
		}
	}
	return labels
}

type RenderPass struct {
	encoder *Encoder
}

func (p *RenderPass) DrawTexture(t gpu.Texture, dst gpu.Quad, blend gpu.BlendMode) {
	p.encoder.Ops = append(p.encoder.Ops, Op{Kind: OpDrawTexture, Texture: t.(*Texture), Quad: dst, Blend: blend})
}

func (p *RenderPass) End() {
	p.encoder.Ops = append(p.encoder.Ops, Op{Kind: OpEndPass})
}

// Target is a fake window side of a surface.
type Target struct {
	Width, Height int
	Swaps         int
	Interval      int
}

func (t *Target) MakeContextCurrent() {}

func (t *Target) SwapBuffers() {
	t.Swaps++
}

func (t *Target) SwapInterval(interval int) {
	t.Interval = interval
}

func (t *Target) FramebufferSize() (int, int) {
	return t.Width, t.Height
}
