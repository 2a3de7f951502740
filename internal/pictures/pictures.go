// Package pictures loads a directory of images into fixed-size RGBA8 buffers
// ready to be uploaded to the picture layer.
package pictures

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// image formats to register them
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/charmbracelet/log"
	"github.com/matjam/photoframe/internal/types"
	"github.com/sourcegraph/conc/iter"
)

var ErrNoPictures = errors.New("no usable pictures")

// Picture is one decoded image. Pix is RGBA8, row-major, top row first, and
// must not be modified.
type Picture struct {
	Name string
	Pix  []byte
}

// Set is a non-empty, read-only list of pictures that all share one size.
type Set struct {
	width  int
	height int
	items  []Picture
}

func NewSet(width, height int, items []Picture) (*Set, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid picture size %dx%d", width, height)
	}
	if len(items) == 0 {
		return nil, ErrNoPictures
	}
	want := width * height * 4
	for _, p := range items {
		if len(p.Pix) != want {
			return nil, fmt.Errorf("picture %q has %d bytes, want %d", p.Name, len(p.Pix), want)
		}
	}
	return &Set{width: width, height: height, items: items}, nil
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) At(i int) Picture {
	return s.items[i]
}

func (s *Set) Size() (int, int) {
	return s.width, s.height
}

func (s *Set) Names() []string {
	names := make([]string, len(s.items))
	for i, p := range s.items {
		names[i] = p.Name
	}
	return names
}

// Load decodes every visible file in dir and resizes it to width x height.
// Files that fail to decode are skipped. Decoding runs in parallel but the
// result keeps directory order.
func Load(dir string, width, height int, mode types.ScalingMode) (*Set, error) {
	log.Debugf("loading pictures from %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading picture directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || IsHidden(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	decoded := iter.Map(paths, func(path *string) *Picture {
		pix, err := decodeFile(*path, width, height, mode)
		if err != nil {
			log.Debugf("skipping %s: %v", *path, err)
			return nil
		}
		return &Picture{Name: filepath.Base(*path), Pix: pix}
	})

	items := make([]Picture, 0, len(decoded))
	for _, p := range decoded {
		if p != nil {
			items = append(items, *p)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPictures, dir)
	}

	log.Infof("loaded %d of %d files from %s", len(items), len(paths), dir)
	return NewSet(width, height, items)
}

func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func decodeFile(path string, width, height int, mode types.ScalingMode) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	log.Debugf("decoded %s (%s %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())

	return ScaleImage(img, width, height, mode).Pix, nil
}
