package text

import (
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/xob0t/canvaskit/pkg/canvas"
)

// inkColumns returns the first and last columns containing any visible pixel,
// or -1, -1 for an empty surface.
func inkColumns(img *image.RGBA) (int, int) {
	first, last := -1, -1
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if img.RGBAAt(x, y).A > 0 {
				if first < 0 {
					first = x
				}
				last = x
				break
			}
		}
	}
	return first, last
}

// inkRows is inkColumns for rows.
func inkRows(img *image.RGBA) (int, int) {
	first, last := -1, -1
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				if first < 0 {
					first = y
				}
				last = y
				break
			}
		}
	}
	return first, last
}

func TestWidth(t *testing.T) {
	one, err := Width("a", "20px sans-serif")
	if err != nil {
		t.Fatalf("Width: %v", err)
	}
	two, err := Width("aa", "20px sans-serif")
	if err != nil {
		t.Fatalf("Width: %v", err)
	}
	if one <= 0 || two <= one {
		t.Errorf("expected width to grow with text, got %v and %v", one, two)
	}

	if _, err := Width("a", "sans-serif"); err == nil {
		t.Error("expected error for a font without size")
	}
}

func TestLabelDefaults(t *testing.T) {
	label, err := Label("Hello", LabelOptions{})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	w, err := Width("Hello", "12px sans-serif")
	if err != nil {
		t.Fatalf("Width: %v", err)
	}
	if got := label.Bounds(); got.Dx() != int(math.Ceil(w)) || got.Dy() != 20 {
		t.Errorf("expected %dx20, got %dx%d", int(math.Ceil(w)), got.Dx(), got.Dy())
	}

	// Default style is white.
	label, err = Label("Hello", LabelOptions{Height: 40})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	found := false
	for i := 0; i < len(label.Pix); i += 4 {
		if label.Pix[i+3] == 0xff {
			if label.Pix[i] != 0xff || label.Pix[i+1] != 0xff || label.Pix[i+2] != 0xff {
				t.Fatalf("expected white ink, got %v", label.Pix[i:i+4])
			}
			found = true
		}
	}
	if !found {
		t.Error("expected some fully opaque ink")
	}
}

func TestLabelEmpty(t *testing.T) {
	if _, err := Label("", LabelOptions{}); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestLabelCentredOnAscent(t *testing.T) {
	label, err := Label("HH", LabelOptions{Width: 60, Height: 40, Font: "20px sans-serif"})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	top, bottom := inkRows(label)
	if top < 0 {
		t.Fatal("expected ink")
	}
	above, below := top, label.Bounds().Dy()-1-bottom
	if d := above - below; d < -2 || d > 2 {
		t.Errorf("expected ink centred vertically, got %d px above and %d px below", above, below)
	}

	left, right := inkColumns(label)
	if d := left - (label.Bounds().Dx() - 1 - right); d < -2 || d > 2 {
		t.Errorf("expected ink centred horizontally, got columns %d..%d", left, right)
	}
}

func TestLabelCompressesNarrowWidth(t *testing.T) {
	s := "Hello, world"
	w, err := Width(s, "20px sans-serif")
	if err != nil {
		t.Fatalf("Width: %v", err)
	}
	if w <= 40 {
		t.Fatalf("test text too narrow: %v", w)
	}

	label, err := Label(s, LabelOptions{Width: 40, Height: 20, Font: "20px sans-serif"})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	if got := label.Bounds().Dx(); got != 40 {
		t.Fatalf("expected width 40, got %d", got)
	}
	left, right := inkColumns(label)
	if left < 0 || left > 4 {
		t.Errorf("expected compressed ink to start near the left edge, got column %d", left)
	}
	if right < 35 {
		t.Errorf("expected compressed ink to reach the right edge, got column %d", right)
	}
}

func TestLabelAlignment(t *testing.T) {
	opts := LabelOptions{Width: 100, Height: 20, Font: "12px sans-serif"}

	opts.Align = AlignLeft
	left, err := Label("ab", opts)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	opts.Align = AlignRight
	right, err := Label("ab", opts)
	if err != nil {
		t.Fatalf("Label: %v", err)
	}

	if first, _ := inkColumns(left); first > 5 {
		t.Errorf("expected left-aligned ink near column 0, got %d", first)
	}
	if _, last := inkColumns(right); last < 94 {
		t.Errorf("expected right-aligned ink near column 99, got %d", last)
	}
}

func TestLabelAlpha(t *testing.T) {
	label, err := Label("H", LabelOptions{Height: 40, Alpha: 0.5, Style: color.Black})
	if err != nil {
		t.Fatalf("Label: %v", err)
	}
	var maxA uint8
	for i := 3; i < len(label.Pix); i += 4 {
		maxA = max(maxA, label.Pix[i])
	}
	if maxA < 120 || maxA > 135 {
		t.Errorf("expected half-transparent ink, got max alpha %d", maxA)
	}
}

func TestVerticalLabel(t *testing.T) {
	label, err := VerticalLabel("abc", LabelOptions{Height: 20})
	if err != nil {
		t.Fatalf("VerticalLabel: %v", err)
	}
	if got := label.Bounds().Dy(); got != 60 {
		t.Errorf("expected one 20px row per character, got height %d", got)
	}

	// A combining accent stays with its base letter.
	label, err = VerticalLabel("e\u0301", LabelOptions{Height: 20})
	if err != nil {
		t.Fatalf("VerticalLabel: %v", err)
	}
	if got := label.Bounds().Dy(); got != 20 {
		t.Errorf("expected a single row, got height %d", got)
	}

	if _, err := VerticalLabel("", LabelOptions{}); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestDrawTextMaxWidth(t *testing.T) {
	dst := canvas.New(200, 40)
	err := DrawText(dst, "Hello, world", 10, 30, DrawOptions{Font: "20px sans-serif", Style: color.White, MaxWidth: 30})
	if err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	first, last := inkColumns(dst)
	if first < 9 || last > 41 {
		t.Errorf("expected ink squeezed into columns 10..40, got %d..%d", first, last)
	}

	wide := canvas.New(200, 40)
	if err := DrawText(wide, "Hello, world", 10, 30, DrawOptions{Font: "20px sans-serif", Style: color.White}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if _, last := inkColumns(wide); last <= 41 {
		t.Errorf("expected unsqueezed text to extend past column 41, got %d", last)
	}
}

func TestBox(t *testing.T) {
	lorem := "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Curabitur tincidunt et ante eget dictum."

	box, err := Box(lorem, 100, 32, BoxOptions{})
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	if got := box.Bounds(); got.Dx() != 100 || got.Dy()%32 != 0 || got.Dy() <= 32 {
		t.Errorf("expected several 100x32 rows, got %dx%d", got.Dx(), got.Dy())
	}

	single, err := Box("short", 800, 32, BoxOptions{})
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	if got := single.Bounds(); got.Dx() != 800 || got.Dy() != 32 {
		t.Errorf("expected a single 800x32 row, got %dx%d", got.Dx(), got.Dy())
	}

	// Each over-wide word keeps a row of its own.
	narrow, err := Box("Supercalifragilistic expialidocious", 20, 32, BoxOptions{})
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	if got := narrow.Bounds().Dy(); got != 64 {
		t.Errorf("expected two rows, got height %d", got)
	}
}

func TestBoxRowsFitWidth(t *testing.T) {
	words := strings.Fields("one two three four five six seven eight nine ten eleven twelve")
	font := "12px sans-serif"
	const width = 90.0

	box, err := Box(strings.Join(words, " "), width, 20, BoxOptions{})
	if err != nil {
		t.Fatalf("Box: %v", err)
	}

	// Replay the wrap to count the expected rows.
	rows := 0
	for len(words) > 0 {
		n := 1
		for n < len(words) {
			w, _ := Width(strings.Join(words[:n+1], " "), font)
			if w >= width {
				break
			}
			n++
		}
		rows++
		words = words[n:]
	}
	if got := box.Bounds().Dy(); got != rows*20 {
		t.Errorf("expected %d rows, got height %d", rows, got)
	}
}

func TestBoxEmpty(t *testing.T) {
	for _, s := range []string{"", "   ", "\t\n"} {
		if _, err := Box(s, 100, 20, BoxOptions{}); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Box(%q): expected ErrEmptyText, got %v", s, err)
		}
	}
}

func TestGrid(t *testing.T) {
	cells := [][]Cell{
		{{Text: "Name"}, {Text: "Score", Style: color.Black}},
		{{Text: "Alexander"}, {Text: ""}},
		{{Text: "Bo", Font: "bold 12px sans-serif"}, {Text: "1234567"}},
	}

	grid, err := Grid(cells, GridOptions{Spacing: 5})
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}

	colWidth := func(c int) int {
		w := 0
		for _, row := range cells {
			s := row[c].Text
			if s == "" {
				s = " "
			}
			f := row[c].Font
			if f == "" {
				f = "12px sans-serif"
			}
			tw, err := Width(s, f)
			if err != nil {
				t.Fatalf("Width: %v", err)
			}
			w = max(w, int(math.Ceil(tw)))
		}
		return w
	}

	wantW := colWidth(0) + 5 + colWidth(1)
	if got := grid.Bounds(); got.Dx() != wantW || got.Dy() != 60 {
		t.Errorf("expected %dx60, got %dx%d", wantW, got.Dx(), got.Dy())
	}
}

func TestGridErrors(t *testing.T) {
	if _, err := Grid(nil, GridOptions{}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	if _, err := Grid([][]Cell{{}}, GridOptions{}); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	ragged := [][]Cell{{{Text: "a"}, {Text: "b"}}, {{Text: "c"}}}
	if _, err := Grid(ragged, GridOptions{}); err == nil {
		t.Error("expected error for ragged grid")
	}
}
