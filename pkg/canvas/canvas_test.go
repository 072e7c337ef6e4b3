package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/draw"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := New(w, h)
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func size(img image.Image) (int, int) {
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestResizeLocksAspectRatio(t *testing.T) {
	src := solid(100, 50, red)

	got, err := Resize(src, ResizeOptions{Width: 40})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := size(got); w != 40 || h != 20 {
		t.Errorf("expected 40x20, got %dx%d", w, h)
	}

	got, err = Resize(src, ResizeOptions{Height: 10})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := size(got); w != 20 || h != 10 {
		t.Errorf("expected 20x10, got %dx%d", w, h)
	}
}

func TestResizeIdentity(t *testing.T) {
	src := solid(30, 20, red)

	got, err := Resize(src, ResizeOptions{Width: 30, Height: 20})
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got != image.Image(src) {
		t.Error("expected the source image to be returned unchanged")
	}
}

func TestResizeRejectsInvalidOptions(t *testing.T) {
	src := solid(10, 10, red)
	tests := []struct {
		name string
		opts ResizeOptions
	}{
		{"unset", ResizeOptions{}},
		{"negative width", ResizeOptions{Width: -1}},
		{"negative height", ResizeOptions{Height: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resize(src, tt.opts); !errors.Is(err, ErrInvalidSize) {
				t.Errorf("expected ErrInvalidSize, got %v", err)
			}
		})
	}
}

func TestJoinHorizontal(t *testing.T) {
	a := solid(10, 20, red)
	b := solid(15, 8, blue)

	tests := []struct {
		name  string
		opts  JoinOptions
		wantW int
		wantH int
	}{
		{"top", JoinOptions{}, 25, 20},
		{"bottom", JoinOptions{Align: AlignEnd}, 25, 20},
		{"center", JoinOptions{Align: AlignCenter}, 25, 20},
		{"spacing", JoinOptions{Spacing: 5}, 30, 20},
		{"max width", JoinOptions{MaxExtent: 18}, 18, 20},
		{"resize to first", JoinOptions{Align: ResizeToFirst}, 10 + int(math.Round(15*20.0/8)), 20},
		{"resize to shortest", JoinOptions{Align: ResizeToSmallest}, 4 + 15, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JoinHorizontal([]image.Image{a, b}, tt.opts)
			if err != nil {
				t.Fatalf("JoinHorizontal: %v", err)
			}
			if w, h := size(got); w != tt.wantW || h != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
		})
	}
}

func TestJoinHorizontalAlignment(t *testing.T) {
	a := solid(4, 10, red)
	b := solid(4, 2, blue)

	got, err := JoinHorizontal([]image.Image{a, b}, JoinOptions{Align: AlignEnd})
	if err != nil {
		t.Fatalf("JoinHorizontal: %v", err)
	}
	if c := got.RGBAAt(5, 9); c != blue {
		t.Errorf("expected blue at bottom of second column, got %v", c)
	}
	if c := got.RGBAAt(5, 0); c.A != 0 {
		t.Errorf("expected transparent above bottom-aligned image, got %v", c)
	}
}

func TestJoinVertical(t *testing.T) {
	a := solid(10, 5, red)
	b := solid(6, 5, blue)
	c := solid(8, 5, red)

	got, err := JoinVertical([]image.Image{a, b, c}, JoinOptions{Spacing: 2, Align: AlignCenter})
	if err != nil {
		t.Fatalf("JoinVertical: %v", err)
	}
	if w, h := size(got); w != 10 || h != 19 {
		t.Errorf("expected 10x19, got %dx%d", w, h)
	}
	if px := got.RGBAAt(2, 7); px != blue {
		t.Errorf("expected centred blue at (2,7), got %v", px)
	}

	// 19 px ideal capped at 13 loses 3 px per gap.
	got, err = JoinVertical([]image.Image{a, b, c}, JoinOptions{Spacing: 2, MaxExtent: 13})
	if err != nil {
		t.Fatalf("JoinVertical: %v", err)
	}
	if w, h := size(got); w != 10 || h != 13 {
		t.Errorf("expected 10x13, got %dx%d", w, h)
	}
}

func TestJoinEmpty(t *testing.T) {
	if _, err := JoinHorizontal(nil, JoinOptions{}); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
	if _, err := JoinVertical([]image.Image{}, JoinOptions{}); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
	if _, err := JoinAsEvenGrid(nil, GridOptions{}); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
}

func TestJoinAsEvenGrid(t *testing.T) {
	imgs := make([]image.Image, 5)
	for i := range imgs {
		imgs[i] = solid(10, 6, red)
	}
	imgs[2] = solid(4, 4, blue)

	tests := []struct {
		name  string
		opts  GridOptions
		wantW int
		wantH int
	}{
		{"square", GridOptions{}, 20, 18},
		{"rows", GridOptions{Rows: 1}, 50, 6},
		{"columns", GridOptions{Columns: 5}, 50, 6},
		{"both", GridOptions{Rows: 2, Columns: 3}, 30, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JoinAsEvenGrid(imgs, tt.opts)
			if err != nil {
				t.Fatalf("JoinAsEvenGrid: %v", err)
			}
			if w, h := size(got); w != tt.wantW || h != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
		})
	}

	// The smaller third image is centred in the first cell of the second row.
	got, _ := JoinAsEvenGrid(imgs, GridOptions{})
	if c := got.RGBAAt(3+2, 6+1+2); c != blue {
		t.Errorf("expected blue in centred cell, got %v", c)
	}
	if c := got.RGBAAt(0, 6); c.A != 0 {
		t.Errorf("expected transparent cell padding, got %v", c)
	}

	if _, err := JoinAsEvenGrid(imgs, GridOptions{Rows: 2, Columns: 2}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize for undersized grid, got %v", err)
	}
}

func TestWithMargin(t *testing.T) {
	got := WithMargin(solid(4, 4, red), Margin{Top: 1, Left: 2, Right: 3, Bottom: 4})
	if w, h := size(got); w != 9 || h != 9 {
		t.Errorf("expected 9x9, got %dx%d", w, h)
	}
	if c := got.RGBAAt(2, 1); c != red {
		t.Errorf("expected source at (2,1), got %v", c)
	}
	if c := got.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("expected transparent margin, got %v", c)
	}

	if w, h := size(WithMargin(solid(4, 4, red), UniformMargin(3))); w != 10 || h != 10 {
		t.Errorf("expected 10x10, got %dx%d", w, h)
	}
}

func TestFillBackground(t *testing.T) {
	src := New(4, 4)
	src.SetRGBA(1, 1, red)

	got := FillBackground(src, blue)
	if c := got.RGBAAt(0, 0); c != blue {
		t.Errorf("expected background colour, got %v", c)
	}
	if c := got.RGBAAt(1, 1); c != red {
		t.Errorf("expected source pixel on top, got %v", c)
	}
}

func TestToCircle(t *testing.T) {
	got, err := ToCircle(solid(40, 40, red), CircleOptions{})
	if err != nil {
		t.Fatalf("ToCircle: %v", err)
	}
	if c := got.RGBAAt(0, 0); c.A != 0 {
		t.Errorf("expected transparent corner, got %v", c)
	}
	if c := got.RGBAAt(20, 20); c.A < 250 || c.R < 250 {
		t.Errorf("expected opaque red centre, got %v", c)
	}

	half, err := ToCircle(solid(40, 40, red), CircleOptions{Alpha: 0.5})
	if err != nil {
		t.Fatalf("ToCircle: %v", err)
	}
	if c := half.RGBAAt(20, 20); c.A < 120 || c.A > 135 {
		t.Errorf("expected half alpha centre, got %v", c)
	}
}

func TestApplyMask(t *testing.T) {
	mask := New(2, 2)
	mask.SetRGBA(0, 0, white)
	mask.SetRGBA(0, 1, white)

	got := ApplyMask(solid(4, 4, red), mask)
	if w, h := size(got); w != 4 || h != 4 {
		t.Fatalf("expected mask stretched to 4x4 image, got %dx%d", w, h)
	}
	if c := got.RGBAAt(0, 2); c != red {
		t.Errorf("expected kept pixel under opaque mask, got %v", c)
	}
	if c := got.RGBAAt(3, 2); c.A != 0 {
		t.Errorf("expected removed pixel under transparent mask, got %v", c)
	}
}

func TestFillWithMask(t *testing.T) {
	mask := New(3, 1)
	mask.SetRGBA(0, 0, white)
	mask.SetRGBA(1, 0, color.RGBA{A: 128})

	got := FillWithMask(blue, mask)
	if c := got.RGBAAt(0, 0); c != blue {
		t.Errorf("expected blue, got %v", c)
	}
	if c := got.RGBAAt(1, 0); c.A != 128 || c.B != 128 {
		t.Errorf("expected half-covered blue, got %v", c)
	}
	if c := got.RGBAAt(2, 0); c.A != 0 {
		t.Errorf("expected transparent, got %v", c)
	}
}

func TestWithOutline(t *testing.T) {
	src := New(20, 20)
	draw.Draw(src, image.Rect(8, 8, 12, 12), image.NewUniform(red), image.Point{}, draw.Src)

	got := WithOutline(src, OutlineOptions{Style: blue, Thickness: 2})
	if c := got.RGBAAt(10, 10); c != red {
		t.Errorf("expected source on top of outline, got %v", c)
	}
	if c := got.RGBAAt(10, 7); c.B == 0 || c.R != 0 {
		t.Errorf("expected blue outline above the shape, got %v", c)
	}
	if c := got.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("expected untouched corner, got %v", c)
	}

	expanded := WithOutline(src, OutlineOptions{ExpandCanvas: true, Thickness: 2.5})
	if w, h := size(expanded); w != 26 || h != 26 {
		t.Errorf("expected 26x26, got %dx%d", w, h)
	}
}

func TestDropShadowMatchesOutline(t *testing.T) {
	src := New(24, 24)
	draw.Draw(src, image.Rect(6, 4, 16, 18), image.NewUniform(red), image.Point{}, draw.Src)

	for _, expand := range []bool{false, true} {
		shadow := WithDropShadow(src, DropShadowOptions{ExpandCanvas: expand, Distance: 4})
		outline := WithOutline(src, OutlineOptions{
			ExpandCanvas: expand,
			Style:        RGBA(0, 0, 0, 0.5),
			Thickness:    4,
			Quality:      1,
			InitialAngle: DropShadowAngle,
		})
		if shadow.Bounds() != outline.Bounds() {
			t.Fatalf("expand=%v: bounds differ: %v vs %v", expand, shadow.Bounds(), outline.Bounds())
		}
		if !bytes.Equal(shadow.Pix, outline.Pix) {
			t.Errorf("expand=%v: drop shadow differs from single-angle outline", expand)
		}
	}

	// The shadow falls to the south-east.
	shadow := WithDropShadow(src, DropShadowOptions{Distance: 4})
	if c := shadow.RGBAAt(17, 19); c.A == 0 {
		t.Errorf("expected shadow south-east of the shape, got %v", c)
	}
	if c := shadow.RGBAAt(4, 2); c.A != 0 {
		t.Errorf("expected no shadow north-west of the shape, got %v", c)
	}
}

func TestSuperimposeSingle(t *testing.T) {
	src := solid(7, 5, red)
	src.SetRGBA(0, 0, blue)

	for _, opts := range []SuperimposeOptions{
		{},
		{Horizontal: Right, Vertical: Bottom},
		{Horizontal: Left, Vertical: Top},
	} {
		got, err := Superimpose([]image.Image{src}, opts)
		if err != nil {
			t.Fatalf("Superimpose: %v", err)
		}
		if !bytes.Equal(got.Pix, src.Pix) || got.Bounds() != src.Bounds() {
			t.Errorf("%+v: expected an exact copy of the single layer", opts)
		}
	}
}

func TestSuperimposeLayers(t *testing.T) {
	got, err := Superimpose([]image.Image{solid(10, 10, red), solid(2, 2, blue)}, SuperimposeOptions{})
	if err != nil {
		t.Fatalf("Superimpose: %v", err)
	}
	if c := got.RGBAAt(4, 4); c != blue {
		t.Errorf("expected blue layer on top in the centre, got %v", c)
	}
	if c := got.RGBAAt(0, 0); c != red {
		t.Errorf("expected red underneath, got %v", c)
	}

	if _, err := Superimpose(nil, SuperimposeOptions{}); !errors.Is(err, ErrNoImages) {
		t.Errorf("expected ErrNoImages, got %v", err)
	}
}

func TestRotated(t *testing.T) {
	src := New(20, 20)
	draw.Draw(src, image.Rect(0, 0, 10, 20), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(10, 0, 20, 20), image.NewUniform(blue), image.Point{}, draw.Src)

	got := Rotated(src, math.Pi)
	if w, h := size(got); w != 20 || h != 20 {
		t.Fatalf("expected 20x20, got %dx%d", w, h)
	}
	if c := got.RGBAAt(3, 10); c.B < 200 || c.R > 50 {
		t.Errorf("expected blue on the left after a half turn, got %v", c)
	}
	if c := got.RGBAAt(16, 10); c.R < 200 || c.B > 50 {
		t.Errorf("expected red on the right after a half turn, got %v", c)
	}

	if w, h := size(Rotated(solid(30, 10, red), math.Pi/2)); w != 30 || h != 10 {
		t.Errorf("expected rotation to keep 30x10 canvas, got %dx%d", w, h)
	}
}

func TestCrop(t *testing.T) {
	src := New(10, 10)
	for x := 0; x < 10; x++ {
		src.SetRGBA(x, 0, color.RGBA{R: uint8(x), A: 255})
	}

	tests := []struct {
		name  string
		opts  CropOptions
		wantR uint8
	}{
		{"left", CropOptions{Width: 4, Horizontal: Left, Vertical: Top}, 0},
		{"center", CropOptions{Width: 4, Vertical: Top}, 3},
		{"right", CropOptions{Width: 4, Horizontal: Right, Vertical: Top}, 6},
		{"custom", CropOptions{X: 2, Width: 4, Horizontal: HorizontalCustom, Vertical: Top}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Crop(src, tt.opts)
			if w, h := size(got); w != 4 || h != 10 {
				t.Fatalf("expected 4x10, got %dx%d", w, h)
			}
			if c := got.RGBAAt(0, 0); c.R != tt.wantR || c.A != 255 {
				t.Errorf("expected first column R=%d, got %v", tt.wantR, c)
			}
		})
	}
}

func TestCropAroundPoints(t *testing.T) {
	src := solid(20, 20, red)
	got, err := CropAroundPoints(src, []image.Point{{X: 2, Y: 3}, {X: 8, Y: 5}, {X: 4, Y: 4}}, 1)
	if err != nil {
		t.Fatalf("CropAroundPoints: %v", err)
	}
	if w, h := size(got); w != 8 || h != 4 {
		t.Errorf("expected 8x4, got %dx%d", w, h)
	}

	if _, err := CropAroundPoints(src, nil, 0); err == nil {
		t.Error("expected error for no points")
	}
}

func TestCropToSquare(t *testing.T) {
	if w, h := size(CropToSquare(solid(10, 6, red))); w != 6 || h != 6 {
		t.Errorf("expected 6x6, got %dx%d", w, h)
	}
}

func TestSetHue(t *testing.T) {
	src := New(3, 1)
	src.SetRGBA(0, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	src.SetRGBA(1, 0, red)

	got := SetHue(src, blue)
	if c := got.RGBAAt(0, 0); c.R != c.G || c.G != c.B {
		t.Errorf("expected grey to stay grey, got %v", c)
	}
	if c := got.RGBAAt(1, 0); c.B <= c.R || c.A != 255 {
		t.Errorf("expected red to take a blue hue, got %v", c)
	}
	if c := got.RGBAAt(2, 0); c.A != 0 {
		t.Errorf("expected transparent pixel to stay transparent, got %v", c)
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#36393e", color.NRGBA{0x36, 0x39, 0x3e, 255}},
		{"#ff000080", color.NRGBA{255, 0, 0, 128}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
		{"rgba(0,0,0,0.5)", color.NRGBA{0, 0, 0, 128}},
		{"hsl(120, 100%, 50%)", color.NRGBA{0, 255, 0, 255}},
		{"hsla(0, 100%, 50%, 1)", color.NRGBA{255, 0, 0, 255}},
		{"white", color.NRGBA{255, 255, 255, 255}},
		{"DarkGreen", color.NRGBA{0, 100, 0, 255}},
		{"transparent", color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if err != nil {
				t.Fatalf("ParseStyle(%q): %v", tt.in, err)
			}
			if n := color.NRGBAModel.Convert(got).(color.NRGBA); n != tt.want {
				t.Errorf("expected %v, got %v", tt.want, n)
			}
		})
	}

	for _, bad := range []string{"", "#12", "rgb(1,2)", "hsl(a,b,c)", "notacolour"} {
		if _, err := ParseStyle(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}

	if got := StyleOr("nope", blue); got != color.Color(blue) {
		t.Errorf("expected fallback, got %v", got)
	}
}
