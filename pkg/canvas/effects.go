// effects.go - Margins, backgrounds, masks, outlines, drop shadows and hue.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Margin holds per-side margin widths in pixels.
type Margin struct {
	Top, Left, Right, Bottom int
}

// UniformMargin returns a margin of n pixels on all four sides.
func UniformMargin(n int) Margin {
	return Margin{Top: n, Left: n, Right: n, Bottom: n}
}

// WithMargin returns img surrounded by transparent margins.
func WithMargin(img image.Image, m Margin) *image.RGBA {
	b := img.Bounds()
	dst := New(b.Dx()+m.Left+m.Right, b.Dy()+m.Top+m.Bottom)
	DrawAt(dst, img, m.Left, m.Top)
	return dst
}

// FillBackground returns img drawn over a solid background.
func FillBackground(img image.Image, background color.Color) *image.RGBA {
	b := img.Bounds()
	dst := New(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	DrawAt(dst, img, 0, 0)
	return dst
}

// CircleOptions configures ToCircle. Alpha zero means fully opaque.
type CircleOptions struct {
	Alpha float64
}

// ToCircle trims img to the circle inscribed in its bounds. The image is
// stretched into the circle's bounding square first.
func ToCircle(img image.Image, opts CircleOptions) (*image.RGBA, error) {
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = 1
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy)

	scaled := New(w, h)
	DrawScaled(scaled, img, cx-r, cy-r, 2*r, 2*r)

	dst := New(w, h)
	draw.DrawMask(dst, dst.Bounds(), scaled, image.Point{}, image.NewUniform(color.Alpha{A: alphaByte(alpha)}), image.Point{}, draw.Over)

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.DrawCircle(cx, cy, r)
	dc.SetColor(color.White)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("circle mask: %w", err)
	}
	destinationIn(dst, dc.Image())

	return dst, nil
}

// ApplyMask keeps only the parts of img covered by mask. The mask is
// stretched to the size of img.
func ApplyMask(img, mask image.Image) *image.RGBA {
	dst := Clone(img)
	destinationIn(dst, mask)
	return dst
}

// FillWithMask returns style painted in the shape of mask.
func FillWithMask(style color.Color, mask image.Image) *image.RGBA {
	b := mask.Bounds()
	dst := New(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(style), image.Point{}, draw.Src)
	destinationIn(dst, mask)
	return dst
}

// OutlineOptions configures WithOutline. Zero values select the defaults.
type OutlineOptions struct {
	// ExpandCanvas adds a margin of Thickness on every side so the outline fits.
	ExpandCanvas bool
	// Style defaults to half-transparent black.
	Style color.Color
	// Thickness in pixels, default 3.
	Thickness float64
	// Quality is the number of angles sampled around the shape, default 16
	// (32 for images at least 1000 pixels wide).
	Quality int
	// InitialAngle in radians, counter-clockwise from east.
	InitialAngle float64
}

// WithOutline draws an outline around every visible part of img. The source
// is stamped Quality times on a circle of radius Thickness, the stamps are
// tinted with Style and the untouched source is drawn on top.
func WithOutline(img image.Image, opts OutlineOptions) *image.RGBA {
	b := img.Bounds()

	style := opts.Style
	if style == nil {
		style = RGBA(0, 0, 0, 0.5)
	}
	thickness := opts.Thickness
	if thickness == 0 {
		thickness = 3
	}
	quality := opts.Quality
	if quality == 0 {
		quality = 16
		if b.Dx() >= 1000 {
			quality = 32
		}
	}
	quality = max(1, quality)

	expansion := 0
	if opts.ExpandCanvas {
		expansion = int(math.Ceil(thickness))
	}

	dst := New(b.Dx()+2*expansion, b.Dy()+2*expansion)
	for i := 0; i < quality; i++ {
		angle := opts.InitialAngle + float64(i)/float64(quality)*2*math.Pi
		dx := thickness * math.Cos(angle)
		dy := thickness * -math.Sin(angle)
		DrawAtF(dst, img, dx+float64(expansion), dy+float64(expansion))
	}
	sourceIn(dst, style)
	DrawAt(dst, img, expansion, expansion)

	return dst
}

// DropShadowAngle is the default drop shadow direction (south-east).
const DropShadowAngle = math.Pi * 1.75

// DropShadowOptions configures WithDropShadow. Zero values select the
// defaults.
type DropShadowOptions struct {
	ExpandCanvas bool
	// Alpha is the shadow opacity, default 0.5.
	Alpha float64
	// Angle in radians, default DropShadowAngle.
	Angle float64
	// Distance in pixels, default 3.
	Distance float64
}

// WithDropShadow adds a drop shadow to every visible part of img. A drop
// shadow is an outline sampled at a single angle, so this always produces
// the same pixels as the equivalent WithOutline call.
func WithDropShadow(img image.Image, opts DropShadowOptions) *image.RGBA {
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = 0.5
	}
	angle := opts.Angle
	if angle == 0 {
		angle = DropShadowAngle
	}
	distance := opts.Distance
	if distance == 0 {
		distance = 3
	}

	return WithOutline(img, OutlineOptions{
		ExpandCanvas: opts.ExpandCanvas,
		Style:        RGBA(0, 0, 0, alpha),
		Thickness:    distance,
		Quality:      1,
		InitialAngle: angle,
	})
}

// SetHue replaces the hue of every pixel of img with the hue of style while
// keeping its saturation, luminosity and alpha (the "hue" blend mode).
func SetHue(img image.Image, style color.Color) *image.RGBA {
	dst := Clone(img)

	sr, sg, sb, sa := style.RGBA()
	if sa == 0 {
		return dst
	}
	// Unpremultiply the source style.
	cs := [3]float64{float64(sr) / float64(sa), float64(sg) / float64(sa), float64(sb) / float64(sa)}
	as := float64(sa) / 0xffff

	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		if a == 0 {
			continue
		}
		fa := float64(a)
		cb := [3]float64{float64(dst.Pix[i]) / fa, float64(dst.Pix[i+1]) / fa, float64(dst.Pix[i+2]) / fa}
		blended := setLum(setSat(cs, sat(cb)), lum(cb))
		for c := 0; c < 3; c++ {
			v := as*blended[c] + (1-as)*cb[c]
			dst.Pix[i+c] = uint8(math.Round(math.Max(0, math.Min(1, v)) * fa))
		}
	}

	return dst
}

func lum(c [3]float64) float64 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c [3]float64) float64 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	c = [3]float64{c[0] + d, c[1] + d, c[2] + d}
	return clipColor(c)
}

func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])
	for i := range c {
		if n < 0 {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
		if x > 1 {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setSat(c [3]float64, s float64) [3]float64 {
	// Order channel indices by value.
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}

	var out [3]float64
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}
