// transform.go - Superimposition, rotation and cropping.
package canvas

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/transform"
)

// Horizontal is a horizontal placement mode.
type Horizontal int

const (
	HorizontalCenter Horizontal = iota
	Left
	Right
	// HorizontalCustom places the source at -CropOptions.X.
	HorizontalCustom
)

// Vertical is a vertical placement mode.
type Vertical int

const (
	VerticalCenter Vertical = iota
	Top
	Bottom
	// VerticalCustom places the source at -CropOptions.Y.
	VerticalCustom
)

// SuperimposeOptions configures Superimpose. The zero value centres every
// layer.
type SuperimposeOptions struct {
	Horizontal Horizontal
	Vertical   Vertical
}

// Superimpose stacks imgs in order, the last one on top. The result is as
// large as the widest and tallest layer.
func Superimpose(imgs []image.Image, opts SuperimposeOptions) (*image.RGBA, error) {
	if len(imgs) == 0 {
		return nil, fmt.Errorf("%w: cannot superimpose an empty list of images", ErrNoImages)
	}

	w, h := 0, 0
	for _, img := range imgs {
		w = max(w, img.Bounds().Dx())
		h = max(h, img.Bounds().Dy())
	}

	dst := New(w, h)
	for _, img := range imgs {
		b := img.Bounds()
		x := 0
		switch opts.Horizontal {
		case HorizontalCenter:
			x = roundHalf(float64(w-b.Dx()) / 2)
		case Right:
			x = w - b.Dx()
		}
		y := 0
		switch opts.Vertical {
		case VerticalCenter:
			y = roundHalf(float64(h-b.Dy()) / 2)
		case Bottom:
			y = h - b.Dy()
		}
		DrawAt(dst, img, x, y)
	}

	return dst, nil
}

// Rotated returns img rotated clockwise by angle radians about its centre.
// The canvas keeps its size, so corners may be clipped.
func Rotated(img image.Image, angle float64) *image.RGBA {
	if angle == 0 {
		return Clone(img)
	}
	return Clone(transform.Rotate(img, angle*180/math.Pi, nil))
}

// CropOptions configures Crop. Width and Height default to the source size.
type CropOptions struct {
	// X and Y are the left and top crop coordinates used by the custom modes.
	X, Y       int
	Width      int
	Height     int
	Horizontal Horizontal
	Vertical   Vertical
}

// Crop returns a Width×Height window onto img positioned by the alignment
// modes.
func Crop(img image.Image, opts CropOptions) *image.RGBA {
	b := img.Bounds()
	w := opts.Width
	if w == 0 {
		w = b.Dx()
	}
	h := opts.Height
	if h == 0 {
		h = b.Dy()
	}

	x := -opts.X
	switch opts.Horizontal {
	case Left:
		x = 0
	case HorizontalCenter:
		x = roundHalf(float64(w-b.Dx()) / 2)
	case Right:
		x = w - b.Dx()
	}

	y := -opts.Y
	switch opts.Vertical {
	case Top:
		y = 0
	case VerticalCenter:
		y = roundHalf(float64(h-b.Dy()) / 2)
	case Bottom:
		y = h - b.Dy()
	}

	dst := New(w, h)
	DrawAt(dst, img, x, y)
	return dst
}

// CropAroundPoints crops img to the bounding box of points grown by margin.
func CropAroundPoints(img image.Image, points []image.Point, margin int) (*image.RGBA, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: cannot crop around no points", ErrInvalidSize)
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if maxX-minX+2*margin <= 0 || maxY-minY+2*margin <= 0 {
		return nil, fmt.Errorf("%w: points span an empty area", ErrInvalidSize)
	}

	return Crop(img, CropOptions{
		X:          minX - margin,
		Y:          minY - margin,
		Width:      maxX - minX + 2*margin,
		Height:     maxY - minY + 2*margin,
		Horizontal: HorizontalCustom,
		Vertical:   VerticalCustom,
	}), nil
}

// CropToSquare centre-crops img to a square of its smaller dimension.
func CropToSquare(img image.Image) *image.RGBA {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	return Crop(img, CropOptions{Width: side, Height: side})
}
