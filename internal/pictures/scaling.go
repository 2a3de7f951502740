package pictures

import (
	"image"

	"github.com/matjam/photoframe/internal/types"
	"golang.org/x/image/draw"
)

// ScaleImage resizes img onto a targetW x targetH canvas according to mode.
// Areas the picture does not cover stay transparent black.
func ScaleImage(img image.Image, targetW, targetH int, mode types.ScalingMode) *image.RGBA {
	src := img.Bounds()
	srcW := src.Dx()
	srcH := src.Dy()

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	if srcW == 0 || srcH == 0 {
		return dst
	}

	var dstRect image.Rectangle
	switch mode {
	case types.ScalingModeStretch:
		dstRect = dst.Bounds()
	case types.ScalingModeFitHorizontal:
		h := srcH * targetW / srcW
		y := (targetH - h) / 2
		dstRect = image.Rect(0, y, targetW, y+h)
	case types.ScalingModeFitVertical:
		w := srcW * targetH / srcH
		x := (targetW - w) / 2
		dstRect = image.Rect(x, 0, x+w, targetH)
	case types.ScalingModeCenter:
		// largest rectangle that fits without cropping
		if srcW*targetH > srcH*targetW {
			h := srcH * targetW / srcW
			y := (targetH - h) / 2
			dstRect = image.Rect(0, y, targetW, y+h)
		} else {
			w := srcW * targetH / srcH
			x := (targetW - w) / 2
			dstRect = image.Rect(x, 0, x+w, targetH)
		}
	case types.ScalingModeFill:
		fallthrough
	default:
		// cover the canvas and crop the overflow evenly from both sides
		dstRect = dst.Bounds()
		src = coverCrop(src, targetW, targetH)
	}

	draw.CatmullRom.Scale(dst, dstRect, img, src, draw.Src, nil)
	return dst
}

// coverCrop returns the centred part of src with the target's aspect ratio.
func coverCrop(src image.Rectangle, targetW, targetH int) image.Rectangle {
	srcW, srcH := src.Dx(), src.Dy()
	if srcW*targetH > srcH*targetW {
		w := srcH * targetW / targetH
		x := src.Min.X + (srcW-w)/2
		return image.Rect(x, src.Min.Y, x+w, src.Max.Y)
	}
	h := srcW * targetH / targetW
	y := src.Min.Y + (srcH-h)/2
	return image.Rect(src.Min.X, y, src.Max.X, y+h)
}
