// fonts.go - Font registry with custom TTF/OTF support and embedded Go fonts.
// Font strings follow the CSS shorthand "[bold] [italic] <size>px <family>[, fallback...]".
// Unknown families resolve to the embedded sans-serif font.
package text

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle selects a face within a family. Bold and Italic combine.
type FontStyle int

const (
	Regular    FontStyle = 0
	Bold       FontStyle = 1
	Italic     FontStyle = 2
	BoldItalic           = Bold | Italic
)

// ParseFontStyle parses "regular", "bold", "italic" or "bold italic".
func ParseFontStyle(s string) (FontStyle, error) {
	var style FontStyle
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		switch tok {
		case "regular", "normal":
		case "bold":
			style |= Bold
		case "italic", "oblique":
			style |= Italic
		default:
			return Regular, fmt.Errorf("unknown font style %q", tok)
		}
	}
	return style, nil
}

func (s FontStyle) String() string {
	switch s {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold italic"
	}
	return "regular"
}

// DefaultFamily is used when none of a font's families is registered.
const DefaultFamily = "sans-serif"

// Font is a parsed font string.
type Font struct {
	Style FontStyle
	// Size in pixels.
	Size float64
	// Families in order of preference.
	Families []string
}

// ParseFont parses a CSS-like font shorthand such as
// `bold 24px "Clarendon LT Std", sans-serif`.
func ParseFont(s string) (Font, error) {
	var f Font
	fields := strings.Fields(s)

	i := 0
styles:
	for ; i < len(fields); i++ {
		switch strings.ToLower(fields[i]) {
		case "normal":
		case "bold", "bolder":
			f.Style |= Bold
		case "italic", "oblique":
			f.Style |= Italic
		default:
			break styles
		}
	}

	if i == len(fields) {
		return Font{}, fmt.Errorf("invalid font %q: missing size", s)
	}
	num, ok := strings.CutSuffix(strings.ToLower(fields[i]), "px")
	if !ok {
		return Font{}, fmt.Errorf("invalid font %q: size must be given in px", s)
	}
	size, err := strconv.ParseFloat(num, 64)
	if err != nil || size <= 0 {
		return Font{}, fmt.Errorf("invalid font %q: bad size %q", s, fields[i])
	}
	f.Size = size

	for _, fam := range strings.Split(strings.Join(fields[i+1:], " "), ",") {
		fam = strings.Trim(strings.TrimSpace(fam), `"'`)
		if fam != "" {
			f.Families = append(f.Families, fam)
		}
	}
	if len(f.Families) == 0 {
		return Font{}, fmt.Errorf("invalid font %q: missing family", s)
	}

	return f, nil
}

func (f Font) String() string {
	var b strings.Builder
	if f.Style != Regular {
		b.WriteString(f.Style.String())
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatFloat(f.Size, 'g', -1, 64))
	b.WriteString("px ")
	for i, fam := range f.Families {
		if i > 0 {
			b.WriteString(", ")
		}
		if strings.Contains(fam, " ") {
			fam = strconv.Quote(fam)
		}
		b.WriteString(fam)
	}
	return b.String()
}

type fontKey struct {
	family string
	style  FontStyle
}

type faceKey struct {
	fontKey
	size float64
}

// cachedFace serialises use of an opentype face, which keeps internal
// buffers and is not safe for concurrent use.
type cachedFace struct {
	mu   sync.Mutex
	face font.Face
}

// Registry maps font families to parsed fonts and caches sized faces.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]*cachedFace
}

// NewRegistry returns a registry holding the embedded Go fonts under the
// generic families sans-serif, serif and monospace.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		fonts: make(map[fontKey]*opentype.Font),
		faces: make(map[faceKey]*cachedFace),
	}

	builtin := []struct {
		family string
		style  FontStyle
		data   []byte
	}{
		{"sans-serif", Regular, goregular.TTF},
		{"sans-serif", Bold, gobold.TTF},
		{"sans-serif", Italic, goitalic.TTF},
		{"sans-serif", BoldItalic, gobolditalic.TTF},
		{"serif", Regular, gomedium.TTF},
		{"serif", Italic, gomediumitalic.TTF},
		{"monospace", Regular, gomono.TTF},
		{"monospace", Bold, gomonobold.TTF},
		{"monospace", Italic, gomonoitalic.TTF},
		{"monospace", BoldItalic, gomonobolditalic.TTF},
	}
	for _, b := range builtin {
		if err := r.Register(b.family, b.style, b.data); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry()
	if err != nil {
		// The embedded fonts are known good.
		panic(err)
	}
	return r
})

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry {
	return defaultRegistry()
}

// RegisterFont adds a TTF or OTF file to the default registry.
func RegisterFont(path, family string, style FontStyle) error {
	return Default().RegisterFile(path, family, style)
}

// Register parses data as an OpenType font and stores it under family and
// style, replacing any previous font.
func (r *Registry) Register(family string, style FontStyle, data []byte) error {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", family, err)
	}

	key := fontKey{family: strings.ToLower(family), style: style}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[key] = parsed
	for fk := range r.faces {
		if fk.fontKey == key {
			delete(r.faces, fk)
		}
	}
	return nil
}

// RegisterFile reads a font file and registers it.
func (r *Registry) RegisterFile(path, family string, style FontStyle) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font file: %w", err)
	}
	return r.Register(family, style, data)
}

// resolve picks the registered font for f: the first family that has the
// exact style, then the first family with a regular face, then the default
// family.
func (r *Registry) resolve(f Font) (fontKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, fam := range f.Families {
		key := fontKey{family: strings.ToLower(fam), style: f.Style}
		if _, ok := r.fonts[key]; ok {
			return key, nil
		}
	}
	for _, fam := range f.Families {
		key := fontKey{family: strings.ToLower(fam), style: Regular}
		if _, ok := r.fonts[key]; ok {
			return key, nil
		}
	}

	for _, style := range []FontStyle{f.Style, Regular} {
		key := fontKey{family: DefaultFamily, style: style}
		if _, ok := r.fonts[key]; ok {
			canvas.Logger().Debug("font family not registered, using default",
				"families", f.Families, "fallback", DefaultFamily)
			return key, nil
		}
	}
	return fontKey{}, fmt.Errorf("no font registered for %v", f.Families)
}

func (r *Registry) face(f Font) (*cachedFace, error) {
	fk, err := r.resolve(f)
	if err != nil {
		return nil, err
	}
	key := faceKey{fontKey: fk, size: f.Size}

	r.mu.RLock()
	cf, ok := r.faces[key]
	r.mu.RUnlock()
	if ok {
		return cf, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cf, ok := r.faces[key]; ok {
		return cf, nil
	}
	parsed, ok := r.fonts[fk]
	if !ok {
		return nil, fmt.Errorf("font %q not registered", fk.family)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	cf = &cachedFace{face: face}
	r.faces[key] = cf
	return cf, nil
}

// withFace runs fn with exclusive use of the face for f.
func (r *Registry) withFace(f Font, fn func(font.Face)) error {
	cf, err := r.face(f)
	if err != nil {
		return err
	}
	cf.mu.Lock()
	defer cf.mu.Unlock()
	fn(cf.face)
	return nil
}

// Metrics are the measured extents of a run of text, in pixels.
type Metrics struct {
	// Advance is the horizontal advance width.
	Advance float64
	// Ascent is the height of the ink above the baseline.
	Ascent float64
	// Descent is the depth of the ink below the baseline.
	Descent float64
}

// Measure returns the metrics of s set in f.
func (r *Registry) Measure(s string, f Font) (Metrics, error) {
	var m Metrics
	err := r.withFace(f, func(face font.Face) {
		bounds, advance := font.BoundString(face, s)
		m.Advance = float64(advance) / 64
		m.Ascent = max(0, -float64(bounds.Min.Y)/64)
		m.Descent = max(0, float64(bounds.Max.Y)/64)
	})
	return m, err
}
