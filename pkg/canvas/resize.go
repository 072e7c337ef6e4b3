package canvas

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeOptions selects the target size. Zero means "unset"; at least one of
// the two must be set.
type ResizeOptions struct {
	Width  int
	Height int
}

// Resize scales img to the requested size. When only one dimension is given
// the aspect ratio is locked and the other is inferred. If img already has
// the requested size it is returned as is, otherwise a new surface is
// returned.
func Resize(img image.Image, opts ResizeOptions) (image.Image, error) {
	if opts.Width == 0 && opts.Height == 0 {
		return nil, fmt.Errorf("%w: width and/or height must be specified when resizing", ErrInvalidSize)
	}
	if opts.Width < 0 {
		return nil, fmt.Errorf("%w: expected positive width but got %d", ErrInvalidSize, opts.Width)
	}
	if opts.Height < 0 {
		return nil, fmt.Errorf("%w: expected positive height but got %d", ErrInvalidSize, opts.Height)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: cannot resize an empty %dx%d image", ErrInvalidSize, b.Dx(), b.Dy())
	}

	w, h := opts.Width, opts.Height
	if w == 0 {
		w = max(1, int(math.Round(float64(h)*float64(b.Dx())/float64(b.Dy()))))
	}
	if h == 0 {
		h = max(1, int(math.Round(float64(w)*float64(b.Dy())/float64(b.Dx()))))
	}

	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}

	return Clone(imaging.Resize(img, w, h, imaging.Lanczos)), nil
}
