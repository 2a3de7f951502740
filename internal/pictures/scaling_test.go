package pictures

import (
	"image"
	"image/color"
	"testing"

	"github.com/matjam/photoframe/internal/types"
	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestScaleImage(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	wide := solid(200, 50, white)

	tests := []struct {
		name       string
		mode       types.ScalingMode
		coveredAt  image.Point
		emptyAt    image.Point
		checkEmpty bool
	}{
		{name: "fill covers everything", mode: types.ScalingModeFill, coveredAt: image.Pt(0, 0)},
		{name: "stretch covers everything", mode: types.ScalingModeStretch, coveredAt: image.Pt(99, 99)},
		{name: "center letterboxes", mode: types.ScalingModeCenter, coveredAt: image.Pt(50, 50), emptyAt: image.Pt(50, 2), checkEmpty: true},
		{name: "horizontal letterboxes", mode: types.ScalingModeFitHorizontal, coveredAt: image.Pt(50, 50), emptyAt: image.Pt(50, 97), checkEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := ScaleImage(wide, 100, 100, tt.mode)
			assert.Equal(t, image.Rect(0, 0, 100, 100), dst.Bounds())
			assert.Len(t, dst.Pix, 100*100*4)
			assert.Equal(t, white, dst.RGBAAt(tt.coveredAt.X, tt.coveredAt.Y))
			if tt.checkEmpty {
				assert.Equal(t, color.RGBA{}, dst.RGBAAt(tt.emptyAt.X, tt.emptyAt.Y))
			}
		})
	}
}

func TestCoverCrop(t *testing.T) {
	// wider than target: crop the sides
	assert.Equal(t, image.Rect(75, 0, 125, 50), coverCrop(image.Rect(0, 0, 200, 50), 100, 100))
	// taller than target: crop top and bottom
	assert.Equal(t, image.Rect(0, 75, 50, 125), coverCrop(image.Rect(0, 0, 50, 200), 100, 100))
	// same aspect: untouched
	assert.Equal(t, image.Rect(0, 0, 80, 48), coverCrop(image.Rect(0, 0, 80, 48), 800, 480))
}
