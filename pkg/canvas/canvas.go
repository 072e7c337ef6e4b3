// Package canvas provides the raster primitives the rest of canvaskit is built
// from: resizing, joining, cropping, masking, outlines, superimposition and
// rotation.
//
// Every operation takes its inputs as image.Image and returns a fresh
// *image.RGBA anchored at (0, 0). Inputs are never modified. The single
// exception is Resize, which hands back its input when no work is needed.
package canvas

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var (
	// ErrNoImages is returned by operations that need at least one source image.
	ErrNoImages = errors.New("canvas: no source images")
	// ErrInvalidSize is returned for missing or non-positive dimensions.
	ErrInvalidSize = errors.New("canvas: invalid size")
)

// New returns a transparent surface of the given size. Negative sizes are
// clamped to zero.
func New(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Clone copies img into a new surface anchored at the origin.
func Clone(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := New(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// DrawAt draws src over dst with its top-left corner at (x, y).
func DrawAt(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Over)
}

// DrawAtF draws src over dst at a fractional offset. Integral offsets take
// the exact DrawAt path; anything else is resampled bilinearly.
func DrawAtF(dst draw.Image, src image.Image, x, y float64) {
	if x == math.Trunc(x) && y == math.Trunc(y) {
		DrawAt(dst, src, int(x), int(y))
		return
	}
	b := src.Bounds()
	m := f64.Aff3{
		1, 0, x - float64(b.Min.X),
		0, 1, y - float64(b.Min.Y),
	}
	draw.BiLinear.Transform(dst, m, src, b, draw.Over, nil)
}

// DrawScaled stretches src over dst into the rectangle (x, y, w, h).
func DrawScaled(dst draw.Image, src image.Image, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	b := src.Bounds()
	if b.Empty() {
		return
	}
	sx := w / float64(b.Dx())
	sy := h / float64(b.Dy())
	m := f64.Aff3{
		sx, 0, x - sx*float64(b.Min.X),
		0, sy, y - sy*float64(b.Min.Y),
	}
	draw.CatmullRom.Transform(dst, m, src, b, draw.Over, nil)
}

// stretch returns img at exactly w×h as an origin-anchored surface. An RGBA
// that already fits is returned as is and must be treated as read-only.
func stretch(img image.Image, w, h int) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Min == (image.Point{}) && b.Dx() == w && b.Dy() == h {
			return rgba
		}
	}
	dst := New(w, h)
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// destinationIn keeps dst only where mask is opaque. The mask is stretched to
// the size of dst.
func destinationIn(dst *image.RGBA, mask image.Image) {
	b := dst.Bounds()
	m := stretch(mask, b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+4*b.Dx()]
		mrow := m.Pix[y*m.Stride : y*m.Stride+4*b.Dx()]
		for i := 0; i < len(drow); i += 4 {
			a := uint32(mrow[i+3])
			if a == 0xff {
				continue
			}
			drow[i+0] = uint8(uint32(drow[i+0]) * a / 0xff)
			drow[i+1] = uint8(uint32(drow[i+1]) * a / 0xff)
			drow[i+2] = uint8(uint32(drow[i+2]) * a / 0xff)
			drow[i+3] = uint8(uint32(drow[i+3]) * a / 0xff)
		}
	}
}

// sourceIn paints style into dst, keeping only the existing alpha coverage.
func sourceIn(dst *image.RGBA, style color.Color) {
	r, g, b, a := style.RGBA()
	for i := 0; i < len(dst.Pix); i += 4 {
		da := uint32(dst.Pix[i+3])
		dst.Pix[i+0] = uint8((r >> 8) * da / 0xff)
		dst.Pix[i+1] = uint8((g >> 8) * da / 0xff)
		dst.Pix[i+2] = uint8((b >> 8) * da / 0xff)
		dst.Pix[i+3] = uint8((a >> 8) * da / 0xff)
	}
}

// roundHalf rounds the way canvas coordinates are rounded: halves go up.
func roundHalf(v float64) int {
	return int(math.Floor(v + 0.5))
}
