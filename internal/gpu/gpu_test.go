package gpu_test

import (
	"testing"

	"github.com/matjam/photoframe/internal/gpu"
	"github.com/matjam/photoframe/internal/gpu/gputest"
	"github.com/stretchr/testify/assert"
)

func TestSurfaceConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  gpu.SurfaceConfig
		ok   bool
	}{
		{"valid", gpu.SurfaceConfig{Format: gpu.FormatBGRA8Unorm, Width: 800, Height: 480}, true},
		{"zero width", gpu.SurfaceConfig{Format: gpu.FormatBGRA8Unorm, Height: 480}, false},
		{"zero height", gpu.SurfaceConfig{Format: gpu.FormatBGRA8Unorm, Width: 800}, false},
		{"negative", gpu.SurfaceConfig{Format: gpu.FormatRGBA8Unorm, Width: -1, Height: 1}, false},
		{"no format", gpu.SurfaceConfig{Width: 800, Height: 480}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, gpu.ErrInvalidConfig)
			}
		})
	}
}

func TestCheckTextureData(t *testing.T) {
	tex := &gputest.Texture{Desc: gpu.TextureDescriptor{Width: 3, Height: 2, Format: gpu.FormatRGBA8Unorm}}

	assert.NoError(t, gpu.CheckTextureData(tex, make([]byte, 24)))
	assert.ErrorIs(t, gpu.CheckTextureData(tex, make([]byte, 23)), gpu.ErrSizeMismatch)
	assert.ErrorIs(t, gpu.CheckTextureData(tex, nil), gpu.ErrSizeMismatch)
}

func TestTextureFormat(t *testing.T) {
	assert.Equal(t, 4, gpu.FormatRGBA8Unorm.BytesPerPixel())
	assert.Equal(t, 4, gpu.FormatBGRA8Unorm.BytesPerPixel())
	assert.Zero(t, gpu.FormatUndefined.BytesPerPixel())
	assert.Equal(t, "bgra8unorm", gpu.FormatBGRA8Unorm.String())
}
