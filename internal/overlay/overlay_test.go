package overlay

import (
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/matjam/photoframe/internal/gpu"
	"github.com/matjam/photoframe/internal/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayer(t *testing.T, w, h int) (*Layer, *gputest.Instance, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 1, 12, 34, 10, 0, time.UTC))
	inst := gputest.NewInstance()
	l, err := New(inst.Device, gpu.FormatBGRA8Unorm, w, h, Options{
		Color:  color.White,
		Shadow: true,
		Clock:  clock,
	})
	require.NoError(t, err)
	return l, inst, clock
}

func draw(t *testing.T, l *Layer, inst *gputest.Instance, w, h int) *gputest.Encoder {
	t.Helper()
	enc := inst.Device.CreateCommandEncoder("test").(*gputest.Encoder)
	require.NoError(t, l.Draw(inst.Device, gputest.View{Width: w, Height: h}, enc))
	require.NoError(t, inst.Queue.Submit(enc.Finish()))
	return enc
}

func kinds(ops []gputest.Op) []gputest.OpKind {
	var out []gputest.OpKind
	for _, op := range ops {
		out = append(out, op.Kind)
	}
	return out
}

func TestDraw(t *testing.T) {
	t.Run("uploads only when the text changes", func(t *testing.T) {
		l, inst, clock := newLayer(t, 320, 240)

		enc := draw(t, l, inst, 320, 240)
		assert.Equal(t, []gputest.OpKind{
			gputest.OpWriteTexture, gputest.OpBeginPass, gputest.OpDrawTexture, gputest.OpEndPass,
		}, kinds(enc.Ops))
		assert.Equal(t, "12:34", l.Text())
		assert.Equal(t, gpu.LoadOpLoad, enc.Ops[1].Load)
		assert.Equal(t, gpu.BlendPremultipliedAlpha, enc.Ops[2].Blend)

		clock.Advance(20 * time.Second)
		enc = draw(t, l, inst, 320, 240)
		assert.Equal(t, []gputest.OpKind{
			gputest.OpBeginPass, gputest.OpDrawTexture, gputest.OpEndPass,
		}, kinds(enc.Ops))

		clock.Advance(time.Minute)
		enc = draw(t, l, inst, 320, 240)
		assert.Equal(t, gputest.OpWriteTexture, enc.Ops[0].Kind)
		assert.Equal(t, "12:35", l.Text())
	})

	t.Run("text lands in the bottom right corner", func(t *testing.T) {
		l, inst, _ := newLayer(t, 320, 240)
		draw(t, l, inst, 320, 240)

		tex := inst.Device.Textures[0]
		require.Len(t, tex.Data, 320*240*4)

		var topLeft, bottomRight int
		for y := 0; y < 240; y++ {
			for x := 0; x < 320; x++ {
				if tex.Data[(y*320+x)*4+3] == 0 {
					continue
				}
				if x < 160 && y < 120 {
					topLeft++
				}
				if x >= 160 && y >= 120 {
					bottomRight++
				}
			}
		}
		assert.Zero(t, topLeft)
		assert.NotZero(t, bottomRight)
	})
}

func TestResize(t *testing.T) {
	l, inst, _ := newLayer(t, 320, 240)
	draw(t, l, inst, 320, 240)
	require.Len(t, inst.Device.Textures, 1)

	l.Resize(640, 480)
	w, h := l.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	enc := draw(t, l, inst, 640, 480)
	require.Len(t, inst.Device.Textures, 2)
	assert.True(t, inst.Device.Textures[0].Destroyed)

	resized := inst.Device.Textures[1]
	assert.Equal(t, 640, resized.Desc.Width)
	assert.Equal(t, 480, resized.Desc.Height)
	// same text, but the new canvas must be uploaded
	assert.Equal(t, gputest.OpWriteTexture, enc.Ops[0].Kind)
	assert.Len(t, resized.Data, 640*480*4)

	// same size again is not a change
	l.Resize(640, 480)
	enc = draw(t, l, inst, 640, 480)
	assert.Equal(t, gputest.OpBeginPass, enc.Ops[0].Kind)
}

func TestFontSize(t *testing.T) {
	l := &Layer{height: 480}
	assert.Equal(t, 80.0, l.fontSize())

	l.height = 12
	assert.Equal(t, minFontSize, l.fontSize())

	l.opts.FontSize = 30
	assert.Equal(t, 30.0, l.fontSize())
}
