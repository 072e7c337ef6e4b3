// style.go - CSS-like colour parsing for fill and text styles.
package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseStyle parses a colour string. Accepts "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", "rgb(r,g,b)", "rgba(r,g,b,a)", "hsl(h,s%,l%)",
// "hsla(h,s%,l%,a)", "transparent" and the CSS named colours.
func ParseStyle(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("invalid style: empty string")
	}

	switch {
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("invalid style %q: unknown colour", s)
}

// MustParseStyle is like ParseStyle but panics on error. Intended for
// package-level constants.
func MustParseStyle(s string) color.Color {
	c, err := ParseStyle(s)
	if err != nil {
		panic(err)
	}
	return c
}

// StyleOr parses s, returning fallback when s is empty or malformed.
func StyleOr(s string, fallback color.Color) color.Color {
	if s == "" {
		return fallback
	}
	c, err := ParseStyle(s)
	if err != nil {
		Logger().Debug("falling back to default style", "style", s, "err", err)
		return fallback
	}
	return c
}

// RGBA returns a straight-alpha colour with alpha given in [0, 1].
func RGBA(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alphaByte(alpha)}
}

func alphaByte(a float64) uint8 {
	a = math.Max(0, math.Min(1, a))
	return uint8(math.Round(a * 255))
}

func parseHex(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4:
		// Expand shorthand: #abc → #aabbcc.
		var b strings.Builder
		for _, ch := range hex {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		hex = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid colour %q: expected 3, 4, 6 or 8 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// funcArgs splits "name(a, b, c)" into its trimmed arguments.
func funcArgs(s string) ([]string, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("invalid colour %q: malformed function", s)
	}
	body := s[open+1 : len(s)-1]
	body = strings.ReplaceAll(body, "/", ",")
	var args []string
	for _, f := range strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' }) {
		args = append(args, strings.TrimSpace(f))
	}
	return args, nil
}

func parseRGBFunc(s string) (color.Color, error) {
	args, err := funcArgs(s)
	if err != nil {
		return nil, err
	}
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("invalid colour %q: expected 3 or 4 components", s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseComponent(args[i], 255)
		if err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
	}

	a := 1.0
	if len(args) == 4 {
		if a, err = parseComponent(args[3], 1); err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
	}
	return RGBA(ch[0], ch[1], ch[2], a), nil
}

func parseHSLFunc(s string) (color.Color, error) {
	args, err := funcArgs(s)
	if err != nil {
		return nil, err
	}
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("invalid colour %q: expected 3 or 4 components", s)
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: hue: %w", s, err)
	}
	sat, err := parseComponent(args[1], 1)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: saturation: %w", s, err)
	}
	light, err := parseComponent(args[2], 1)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: lightness: %w", s, err)
	}

	a := 1.0
	if len(args) == 4 {
		if a, err = parseComponent(args[3], 1); err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
	}

	r, g, b := hslToRGB(h, sat, light)
	return RGBA(to8(r), to8(g), to8(b), a), nil
}

// parseComponent parses a plain number or a percentage of scale.
func parseComponent(s string, scale float64) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return v / 100 * scale, nil
	}
	return strconv.ParseFloat(s, 64)
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s))
	l = math.Max(0, math.Min(1, l))

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
