// build.go - Turn documents into wheel tiles and graph entries.
package template

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"github.com/xob0t/canvaskit/pkg/games"
	"github.com/xob0t/canvaskit/pkg/graphs"
)

// ErrWrongKind is returned when a document lacks the section being built.
var ErrWrongKind = errors.New("template: document has no such section")

// DefaultFPS is the spin animation frame rate when the document sets none.
const DefaultFPS = 15

var arrows = map[string]graphs.Arrow{
	"":     graphs.ArrowNone,
	"none": graphs.ArrowNone,
	"up":   graphs.ArrowUp,
	"down": graphs.ArrowDown,
}

// BuildWheel converts the wheel section into tiles, loading icons with
// loader (DefaultLoader when nil). A tile without its own colours inherits
// its parent's, then the wheel's.
func BuildWheel(ctx context.Context, doc *Document, loader graphs.Loader) ([]games.Tile, games.WheelOptions, error) {
	if doc.Wheel == nil {
		return nil, games.WheelOptions{}, fmt.Errorf("%w: wheel", ErrWrongKind)
	}
	if loader == nil {
		loader = graphs.DefaultLoader{}
	}

	w := doc.Wheel
	fill := canvas.StyleOr(w.TileStyle, nil)
	ink := canvas.StyleOr(w.TextStyle, nil)
	tiles, err := buildTiles(ctx, w.Tiles, fill, ink, loader)
	if err != nil {
		return nil, games.WheelOptions{}, err
	}
	return tiles, games.WheelOptions{Radius: w.Radius}, nil
}

func buildTiles(ctx context.Context, specs []TileSpec, fill, ink color.Color, loader graphs.Loader) ([]games.Tile, error) {
	tiles := make([]games.Tile, 0, len(specs))
	for i, s := range specs {
		t := games.Tile{
			FillStyle:  canvas.StyleOr(s.Fill, fill),
			TextStyle:  canvas.StyleOr(s.Text, ink),
			Horizontal: s.Horizontal,
		}

		c := s.Content
		switch {
		case c.Amount != nil:
			t.Content = games.Amount(*c.Amount)
		case c.Label != "":
			t.Content = games.Label(c.Label)
		case c.Icon != "":
			img, err := loader.Load(ctx, c.Icon)
			if err != nil {
				return nil, fmt.Errorf("tile %d icon: %w", i, err)
			}
			t.Content = games.Icon{Image: img}
		case c.Tiles != nil:
			subs, err := buildTiles(ctx, c.Tiles, t.FillStyle, t.TextStyle, loader)
			if err != nil {
				return nil, fmt.Errorf("tile %d: %w", i, err)
			}
			t.Content = games.Compound(subs)
		}

		tiles = append(tiles, t)
	}
	return tiles, nil
}

// BuildSpin returns the spin animation settings and frame rate. A positive
// seconds overrides the document's frame count.
func BuildSpin(doc *Document, seconds float64) (games.SpinOptions, int) {
	var spin SpinSpec
	if doc.Wheel != nil && doc.Wheel.Spin != nil {
		spin = *doc.Wheel.Spin
	}
	fps := spin.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	opts := games.SpinOptions{
		Frames:  spin.Frames,
		Turns:   spin.Turns,
		Landing: spin.Landing,
	}
	if doc.Wheel != nil {
		opts.Sectors = len(doc.Wheel.Tiles)
	}
	if seconds > 0 {
		opts.Frames = max(1, int(math.Round(seconds*float64(fps))))
	}
	return opts, fps
}

// BuildGraph converts the graph section into entries and options. Icons
// stay as sources so BarGraph can fetch them. Bad colours fall back to the
// palette.
func BuildGraph(doc *Document) ([]graphs.Entry, graphs.BarGraphOptions, error) {
	if doc.Graph == nil {
		return nil, graphs.BarGraphOptions{}, fmt.Errorf("%w: graph", ErrWrongKind)
	}

	g := doc.Graph
	opts := graphs.BarGraphOptions{
		HideNames: g.HideNames,
		HideIcons: g.HideIcons,
		Title:     g.Title,
		Subtitle:  g.Subtitle,
		RowHeight: g.RowHeight,
		Width:     g.Width,
	}
	if p := g.Palette; p != nil {
		opts.Palette = &graphs.Palette{
			Background:   canvas.StyleOr(p.Background, nil),
			Padding:      canvas.StyleOr(p.Padding, nil),
			LightPadding: canvas.StyleOr(p.LightPadding, nil),
			DarkPadding:  canvas.StyleOr(p.DarkPadding, nil),
			Highlight:    canvas.StyleOr(p.Highlight, nil),
			Text:         canvas.StyleOr(p.Text, nil),
		}
	}

	entries := make([]graphs.Entry, 0, len(g.Entries))
	for _, e := range g.Entries {
		entries = append(entries, graphs.Entry{
			Name:    e.Name,
			Value:   e.Value,
			IconURL: e.Icon,
			Color:   canvas.StyleOr(e.Color, nil),
			Arrow:   arrows[strings.ToLower(e.Arrow)],
		})
	}
	return entries, opts, nil
}
