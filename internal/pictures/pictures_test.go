package pictures_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matjam/photoframe/internal/pictures"
	"github.com/matjam/photoframe/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoad(t *testing.T) {
	t.Run("skips hidden and corrupt files", func(t *testing.T) {
		dir := t.TempDir()
		writePNG(t, filepath.Join(dir, "a.png"), 40, 30, color.RGBA{R: 255, A: 255})
		writePNG(t, filepath.Join(dir, "b.png"), 10, 50, color.RGBA{G: 255, A: 255})
		writePNG(t, filepath.Join(dir, "c.png"), 16, 9, color.RGBA{B: 255, A: 255})
		writePNG(t, filepath.Join(dir, ".hidden.png"), 8, 8, color.White)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not a jpeg"), 0644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

		set, err := pictures.Load(dir, 8, 6, types.ScalingModeFill)
		require.NoError(t, err)

		assert.Equal(t, 3, set.Len())
		assert.Equal(t, []string{"a.png", "b.png", "c.png"}, set.Names())
		for i := 0; i < set.Len(); i++ {
			assert.Len(t, set.At(i).Pix, 8*6*4)
		}

		// a.png is solid red
		red := set.At(0).Pix
		assert.Equal(t, []byte{255, 0, 0, 255}, red[:4])
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := pictures.Load(t.TempDir(), 8, 6, types.ScalingModeFill)
		assert.ErrorIs(t, err, pictures.ErrNoPictures)
	})

	t.Run("only undecodable files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x.png"), []byte{1, 2, 3}, 0644))
		writePNG(t, filepath.Join(dir, ".y.png"), 4, 4, color.White)

		_, err := pictures.Load(dir, 8, 6, types.ScalingModeFill)
		assert.ErrorIs(t, err, pictures.ErrNoPictures)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := pictures.Load(filepath.Join(t.TempDir(), "missing"), 8, 6, types.ScalingModeFill)
		assert.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewSet(t *testing.T) {
	ok := pictures.Picture{Name: "ok", Pix: make([]byte, 2*2*4)}

	_, err := pictures.NewSet(2, 2, nil)
	assert.ErrorIs(t, err, pictures.ErrNoPictures)

	_, err = pictures.NewSet(2, 2, []pictures.Picture{ok, {Name: "short", Pix: make([]byte, 3)}})
	assert.ErrorContains(t, err, "short")

	_, err = pictures.NewSet(0, 2, []pictures.Picture{ok})
	assert.Error(t, err)

	set, err := pictures.NewSet(2, 2, []pictures.Picture{ok})
	require.NoError(t, err)
	w, h := set.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, pictures.IsHidden(".DS_Store"))
	assert.True(t, pictures.IsHidden("."))
	assert.False(t, pictures.IsHidden("photo.jpg"))
	assert.False(t, pictures.IsHidden("photo.v2.jpg"))
}
