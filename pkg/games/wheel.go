package games

import (
	"fmt"
	"image"
	"math"

	"github.com/xob0t/canvaskit/pkg/canvas"
)

// WheelOptions configures WheelOfFortune.
type WheelOptions struct {
	// Radius defaults to DefaultRadius.
	Radius float64
}

// WheelOfFortune renders a full wheel with one sector per tile. Tile i points
// 2π·i/N radians clockwise from the top. The result is a 2R square.
func WheelOfFortune(tiles []Tile, opts WheelOptions) (*image.RGBA, error) {
	n := len(tiles)
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot build a wheel without tiles", ErrNoTiles)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSectors, n)
	}
	r := opts.Radius
	if r == 0 {
		r = DefaultRadius
	}
	width := newTileGeometry(r, n).width

	layers := make([]image.Image, 0, n)
	for i, t := range tiles {
		img, err := WheelOfFortuneTile(t.Content, TileOptions{
			Radius:     r,
			Sectors:    n,
			TileStyle:  t.FillStyle,
			TextStyle:  t.TextStyle,
			Horizontal: t.Horizontal,
		})
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		canvas.Logger().Debug("rendered wheel tile", "index", i, "content", fmt.Sprintf("%T", t.Content))
		layers = append(layers, canvas.Rotated(expand(img, r, width), 2*math.Pi*float64(i)/float64(n)))
	}

	return canvas.Superimpose(layers, canvas.SuperimposeOptions{})
}
