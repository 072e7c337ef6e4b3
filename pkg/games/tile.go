// Package games renders game assets: wheel-of-fortune tiles, whole wheels
// and the frames of a spinning wheel.
package games

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/gogpu/gg"
	"github.com/xob0t/canvaskit/pkg/canvas"
	"github.com/xob0t/canvaskit/pkg/text"
)

var (
	// ErrTooFewSectors is returned for wheels with fewer than two sectors.
	ErrTooFewSectors = errors.New("games: a wheel needs at least two sectors")
	// ErrNoTiles is returned for wheels or compound tiles without tiles.
	ErrNoTiles = errors.New("games: no tiles")
)

// Content is what a tile displays. It is one of Amount, Label, Icon or
// Compound.
type Content interface {
	isContent()
}

// Amount is a cent value written vertically under a "¢" sign.
type Amount float64

// Label is a word written along the tile.
type Label string

// Icon is an image centred near the rim of the tile.
type Icon struct {
	Image image.Image
}

// Compound splits a tile into narrower sub-tiles sharing its slot.
type Compound []Tile

func (Amount) isContent()   {}
func (Label) isContent()    {}
func (Icon) isContent()     {}
func (Compound) isContent() {}

// Tile is one slot of a wheel. Nil styles select the wheel defaults.
type Tile struct {
	Content   Content
	FillStyle color.Color
	TextStyle color.Color
	// Horizontal writes text across the tile instead of along it.
	Horizontal bool
}

// TileOptions configures WheelOfFortuneTile. Zero values select the
// defaults.
type TileOptions struct {
	// Radius of the wheel, default 300.
	Radius float64
	// Sectors on the wheel, default 24.
	Sectors    int
	TileStyle  color.Color
	TextStyle  color.Color
	Horizontal bool
}

// DefaultRadius is the wheel radius used when none is given.
const DefaultRadius = 300

var (
	defaultTileStyle = canvas.MustParseStyle("red")
	defaultTextStyle = canvas.MustParseStyle("white")
)

// tileGeometry holds the wedge dimensions for an N-sector wheel of radius R.
type tileGeometry struct {
	r, theta, phi, midPhi float64
	width, height         float64
}

func newTileGeometry(r float64, n int) tileGeometry {
	theta := 2 * math.Pi / float64(n)
	phi := (math.Pi - theta) / 2
	return tileGeometry{
		r:      r,
		theta:  theta,
		phi:    phi,
		midPhi: math.Pi/2 - theta/4,
		width:  2 * r * math.Cos(phi),
		height: r,
	}
}

// size is the pixel size of the tile surface.
func (g tileGeometry) size() (int, int) {
	return int(math.Ceil(g.width - 1e-9)), int(math.Ceil(g.height - 1e-9))
}

// WheelOfFortuneTile renders one wedge of an N-sector wheel as an upright
// surface 2R·cos((π−2π/N)/2) wide and R tall, with the wheel centre at the
// bottom middle and the rim at the top.
func WheelOfFortuneTile(content Content, opts TileOptions) (*image.RGBA, error) {
	r := opts.Radius
	if r == 0 {
		r = DefaultRadius
	}
	if r < 0 {
		return nil, fmt.Errorf("%w: negative radius %g", canvas.ErrInvalidSize, r)
	}
	n := opts.Sectors
	if n == 0 {
		n = 24
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSectors, n)
	}
	tileStyle := opts.TileStyle
	if tileStyle == nil {
		tileStyle = defaultTileStyle
	}
	textStyle := opts.TextStyle
	if textStyle == nil {
		textStyle = defaultTextStyle
	}

	g := newTileGeometry(r, n)
	if sub, ok := content.(Compound); ok {
		return compoundTile(sub, g, n)
	}

	w, h := g.size()
	dst, err := drawWedge(g, w, h, tileStyle)
	if err != nil {
		return nil, err
	}

	unit := math.Min(g.width*0.55, g.height*0.3)
	shadow := canvas.DropShadowOptions{ExpandCanvas: true, Distance: unit / 15}
	label := text.VerticalLabel
	if opts.Horizontal {
		label = text.Label
	}

	switch c := content.(type) {
	case nil:
	case Amount:
		cent, err := text.Label("¢", text.LabelOptions{
			Height: unit * 0.6,
			Font:   wheelFont(unit * 0.6),
			Style:  textStyle,
		})
		if err != nil {
			return nil, err
		}
		digits, err := label(strconv.FormatFloat(float64(c), 'f', -1, 64), text.LabelOptions{
			Height: unit,
			Font:   wheelFont(unit * 1.25),
			Style:  textStyle,
		})
		if err != nil {
			return nil, err
		}
		joined, err := canvas.JoinVertical([]image.Image{cent, digits}, canvas.JoinOptions{Align: canvas.AlignCenter})
		if err != nil {
			return nil, err
		}
		overlay := canvas.WithDropShadow(joined, shadow)
		canvas.DrawAtF(dst, overlay, (g.width-float64(overlay.Bounds().Dx()))/2, 0)
	case Label:
		words, err := label(string(c), text.LabelOptions{
			Height: unit * 0.9,
			Font:   wheelFont(unit),
			Style:  textStyle,
		})
		if err != nil {
			return nil, err
		}
		overlay := canvas.WithDropShadow(words, shadow)
		ow, oh := float64(overlay.Bounds().Dx()), float64(overlay.Bounds().Dy())
		canvas.DrawScaled(dst, overlay, (g.width-ow)/2, unit/10, ow, math.Min(oh, g.height*0.6))
	case Icon:
		if c.Image == nil {
			return nil, fmt.Errorf("%w: icon tile without an image", canvas.ErrNoImages)
		}
		ew := math.Min(g.width, g.height/2)
		iconWidth := ew * 0.75
		resized, err := canvas.Resize(c.Image, canvas.ResizeOptions{Width: max(1, int(math.Round(ew)))})
		if err != nil {
			return nil, err
		}
		overlay := canvas.WithDropShadow(resized, shadow)
		canvas.DrawScaled(dst, overlay, (g.width-iconWidth)/2, ew/8, iconWidth, iconWidth)
	default:
		return nil, fmt.Errorf("unsupported tile content %T", content)
	}

	return dst, nil
}

// drawWedge fills and strokes the wedge outline: bottom centre, up the left
// leg, along the crown and back down the right leg.
func drawWedge(g tileGeometry, w, h int, fill color.Color) (*image.RGBA, error) {
	unit := math.Min(g.width*0.55, g.height*0.3)
	lineWidth := math.Round(unit / 12)
	er := g.r - lineWidth/2
	cx, bottom := g.width/2, g.height

	dc := gg.NewContext(w, h)
	defer dc.Close()

	dc.MoveTo(cx, bottom)
	dc.LineTo(0, bottom-er*math.Sin(g.phi))
	dc.LineTo(cx-er*math.Cos(g.midPhi), bottom-er*math.Sin(g.midPhi))
	dc.LineTo(cx, g.r-er)
	dc.LineTo(cx+er*math.Cos(g.midPhi), bottom-er*math.Sin(g.midPhi))
	dc.LineTo(g.width, bottom-er*math.Sin(g.phi))
	dc.ClosePath()

	dc.SetColor(fill)
	if err := dc.FillPreserve(); err != nil {
		return nil, fmt.Errorf("fill tile: %w", err)
	}
	if lineWidth > 0 {
		dc.SetColor(color.Black)
		dc.SetLineWidth(lineWidth)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("stroke tile: %w", err)
		}
	}

	return canvas.Clone(dc.Image()), nil
}

// compoundTile renders each sub-tile on a wheel M times finer, rotates it
// into its share of the parent slot and crops the result back to the parent
// wedge.
func compoundTile(subs Compound, g tileGeometry, n int) (*image.RGBA, error) {
	m := len(subs)
	if m == 0 {
		return nil, fmt.Errorf("%w: compound tile is empty", ErrNoTiles)
	}

	layers := make([]image.Image, 0, m)
	for i, sub := range subs {
		img, err := WheelOfFortuneTile(sub.Content, TileOptions{
			Radius:     g.r,
			Sectors:    n * m,
			TileStyle:  sub.FillStyle,
			TextStyle:  sub.TextStyle,
			Horizontal: sub.Horizontal,
		})
		if err != nil {
			return nil, fmt.Errorf("sub-tile %d: %w", i, err)
		}
		angle := g.theta * float64(m-1-2*i) / float64(2*m)
		layers = append(layers, canvas.Rotated(expand(img, g.r, newTileGeometry(g.r, n*m).width), angle))
	}

	combined, err := canvas.Superimpose(layers, canvas.SuperimposeOptions{})
	if err != nil {
		return nil, err
	}
	w, h := g.size()
	return canvas.Crop(combined, canvas.CropOptions{
		Width:      w,
		Height:     h,
		Horizontal: canvas.HorizontalCenter,
		Vertical:   canvas.Top,
	}), nil
}

// expand places a tile of the given wedge width top-centre on a 2R square so
// that the wedge tip sits on the square's centre.
func expand(tile image.Image, r, width float64) *image.RGBA {
	side := int(math.Ceil(2*r - 1e-9))
	dst := canvas.New(side, side)
	canvas.DrawAtF(dst, tile, float64(side)/2-width/2, 0)
	return dst
}

func wheelFont(size float64) string {
	return `bold ` + strconv.FormatFloat(size, 'f', -1, 32) + `px "Clarendon LT Std", sans-serif`
}
