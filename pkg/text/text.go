// Package text renders single-line labels, vertical labels, word-wrapped
// text boxes and text grids onto transparent surfaces.
//
// Fonts are named with CSS-like strings (see ParseFont) and resolved
// against the process-wide font registry returned by Default.
package text

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when a label or text box is given no text.
var ErrEmptyText = errors.New("text: empty text")

// DefaultFont is the font DrawText uses when none is given.
const DefaultFont = "10px sans-serif"

// Align is the horizontal alignment of text within a label.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Width returns the advance width in pixels of s set in fontSpec.
func Width(s, fontSpec string) (float64, error) {
	f, err := ParseFont(fontSpec)
	if err != nil {
		return 0, err
	}
	m, err := Default().Measure(s, f)
	if err != nil {
		return 0, err
	}
	return m.Advance, nil
}

// DrawOptions configures DrawText.
type DrawOptions struct {
	// Font defaults to DefaultFont.
	Font string
	// Style defaults to black.
	Style color.Color
	// Alpha in [0, 1], zero means opaque.
	Alpha float64
	// MaxWidth, when positive, squeezes wider text horizontally to fit.
	MaxWidth float64
}

// DrawText draws s onto dst with its left edge at x and its baseline at
// baseline.
func DrawText(dst draw.Image, s string, x, baseline float64, opts DrawOptions) error {
	spec := opts.Font
	if spec == "" {
		spec = DefaultFont
	}
	f, err := ParseFont(spec)
	if err != nil {
		return err
	}
	style := opts.Style
	if style == nil {
		style = color.Black
	}
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = 1
	}
	src := image.NewUniform(withAlpha(style, alpha))

	return Default().withFace(f, func(face font.Face) {
		bounds, advance := font.BoundString(face, s)
		width := float64(advance) / 64

		if opts.MaxWidth <= 0 || width <= opts.MaxWidth {
			d := font.Drawer{
				Dst:  dst,
				Src:  src,
				Face: face,
				Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(baseline * 64))},
			}
			d.DrawString(s)
			return
		}

		// Render off-screen and squeeze into MaxWidth.
		minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
		maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
		tmp := canvas.New(maxX-minX, maxY-minY)
		d := font.Drawer{
			Dst:  tmp,
			Src:  src,
			Face: face,
			Dot:  fixed.P(-minX, -minY),
		}
		d.DrawString(s)

		sx := opts.MaxWidth / width
		m := f64.Aff3{
			sx, 0, x + sx*float64(minX),
			0, 1, baseline + float64(minY),
		}
		draw.BiLinear.Transform(dst, m, tmp, tmp.Bounds(), draw.Over, nil)
	})
}

// defaultFont is the sans-serif font sized to 0.6 of a row height.
func defaultFont(height float64) string {
	return strconv.FormatFloat(height*0.6, 'f', -1, 32) + "px sans-serif"
}

func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 {
		return c
	}
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint16 { return uint16(math.Round(float64(v) * alpha)) }
	return color.RGBA64{R: scale(r), G: scale(g), B: scale(b), A: scale(a)}
}

// LabelOptions configures Label and VerticalLabel. Zero values select the
// defaults.
type LabelOptions struct {
	// Width defaults to the advance width of the text.
	Width float64
	// Height defaults to 20.
	Height float64
	Align  Align
	// Font defaults to a sans-serif font 0.6 times the height.
	Font string
	// Style defaults to white.
	Style color.Color
	Alpha float64
	// Margin is a horizontal margin applied to centred text.
	Margin float64
}

// Label renders s as a single line of text on a transparent surface. The text
// is vertically centred on its ink ascent. Centred text that does not fit the
// usable width is squeezed horizontally.
func Label(s string, opts LabelOptions) (*image.RGBA, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: cannot create a text label with no text", ErrEmptyText)
	}

	height := opts.Height
	if height == 0 {
		height = 20
	}
	spec := opts.Font
	if spec == "" {
		spec = defaultFont(height)
	}
	f, err := ParseFont(spec)
	if err != nil {
		return nil, err
	}
	m, err := Default().Measure(s, f)
	if err != nil {
		return nil, err
	}
	width := opts.Width
	if width == 0 {
		width = m.Advance
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: label size %gx%g", canvas.ErrInvalidSize, width, height)
	}
	style := opts.Style
	if style == nil {
		style = color.White
	}

	dst := canvas.New(int(math.Ceil(width)), int(math.Ceil(height)))
	baseline := (height-m.Ascent)/2 + m.Ascent
	do := DrawOptions{Font: spec, Style: style, Alpha: opts.Alpha}

	var x float64
	switch opts.Align {
	case AlignCenter:
		usable := width - 2*opts.Margin
		if m.Advance > usable {
			x = math.Floor(opts.Margin)
			do.MaxWidth = usable
		} else {
			x = math.Floor(opts.Margin + (usable-m.Advance)/2)
		}
	case AlignRight:
		x = math.Floor(width - m.Advance)
		do.MaxWidth = width
	default:
		do.MaxWidth = width
	}

	if err := DrawText(dst, s, x, baseline, do); err != nil {
		return nil, err
	}
	return dst, nil
}

// VerticalLabel renders each character of s as its own label and stacks them
// top to bottom, centred. Combining sequences stay together.
func VerticalLabel(s string, opts LabelOptions) (*image.RGBA, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: cannot create a vertical label with no text", ErrEmptyText)
	}

	var labels []image.Image
	var it norm.Iter
	it.InitString(norm.NFC, s)
	for !it.Done() {
		label, err := Label(string(it.Next()), opts)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}

	return canvas.JoinVertical(labels, canvas.JoinOptions{Align: canvas.AlignCenter})
}
