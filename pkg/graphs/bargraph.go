package graphs

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/gogpu/gg"
	"github.com/xob0t/canvaskit/pkg/canvas"
	"github.com/xob0t/canvaskit/pkg/text"
	"golang.org/x/image/colornames"
)

// ErrNoEntries is returned when a graph has nothing to plot.
var ErrNoEntries = errors.New("graphs: no entries")

const (
	// margin between elements and around the edge of the graph.
	margin = 8
	// padding within boxes.
	padding = 4
)

// Arrow is an optional trend marker drawn after an entry's value.
type Arrow int

const (
	ArrowNone Arrow = iota
	ArrowUp
	ArrowDown
)

// Entry is one row of a bar graph.
type Entry struct {
	Name  string
	Value float64
	// IconURL is an http(s) URL or file path, used when Icon is nil.
	IconURL string
	Icon    image.Image
	// Color overrides the palette highlight for this bar.
	Color color.Color
	Arrow Arrow
}

// BarGraphOptions configures BarGraph. Zero values select the defaults.
type BarGraphOptions struct {
	HideNames bool
	HideIcons bool
	Title     string
	Subtitle  string
	// RowHeight defaults to 40.
	RowHeight int
	// Width defaults to 480.
	Width int
	// Palette defaults to DefaultPalette. Unset roles fall back to it too.
	Palette *Palette
	// Loader fetches icons given by URL, default DefaultLoader.
	Loader Loader
}

// textDraw is a run of text placed after the shapes are rasterised.
type textDraw struct {
	s        string
	x, y     float64
	maxWidth float64
}

// BarGraph renders one horizontal bar per entry, scaled to the largest value.
// Icons are loaded one at a time; an icon that fails to load is logged and
// its row is drawn without it.
func BarGraph(ctx context.Context, entries []Entry, opts BarGraphOptions) (*image.RGBA, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	rowHeight := opts.RowHeight
	if rowHeight == 0 {
		rowHeight = 40
	}
	width := opts.Width
	if width == 0 {
		width = 480
	}
	if rowHeight < 0 || width < 0 {
		return nil, fmt.Errorf("%w: graph width %d, row height %d", canvas.ErrInvalidSize, width, rowHeight)
	}
	palette := DefaultPalette
	if opts.Palette != nil {
		palette = opts.Palette.withDefaults()
	}
	loader := opts.Loader
	if loader == nil {
		loader = DefaultLoader{}
	}

	icons, err := loadIcons(ctx, entries, loader, opts.HideIcons)
	if err != nil {
		return nil, err
	}

	rows := len(entries)
	height := rows*rowHeight + (rows+1)*margin
	rh := float64(rowHeight)
	font := fmt.Sprintf("%dpx sans-serif", rowHeight*6/10)

	maxValue := entries[0].Value
	for _, e := range entries[1:] {
		maxValue = math.Max(maxValue, e.Value)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()
	rect := func(c color.Color, x, y, w, h float64) error {
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(c)
		return dc.Fill()
	}

	var texts []textDraw
	type iconDraw struct {
		img  image.Image
		x, y float64
	}
	var iconDraws []iconDraw

	baseY := float64(margin)
	for i, e := range entries {
		baseX := float64(margin)

		if !opts.HideNames {
			if err := rect(palette.Padding, baseX, baseY, 2*rh, rh); err != nil {
				return nil, fmt.Errorf("draw name box: %w", err)
			}
			if e.Name != "" {
				texts = append(texts, textDraw{s: e.Name, x: baseX + padding, y: baseY + 0.75*rh, maxWidth: 2 * (rh - padding)})
			}
			baseX += 2*rh + margin
		}

		if !opts.HideIcons {
			if err := rect(palette.Padding, baseX, baseY, rh, rh); err != nil {
				return nil, fmt.Errorf("draw icon box: %w", err)
			}
			if icons[i] != nil {
				iconDraws = append(iconDraws, iconDraw{img: icons[i], x: baseX + padding, y: baseY + padding})
			}
			baseX += rh + margin
		}

		maxBar := float64(width) - baseX - margin
		bar := 0.0
		if maxValue > 0 && maxBar > 0 {
			bar = math.Max(0, math.Floor(maxBar*e.Value/maxValue))
		}
		if bar > 0 {
			if err := rect(palette.Padding, baseX, baseY, bar, rh); err != nil {
				return nil, fmt.Errorf("draw bar: %w", err)
			}
		}
		if bar > 2*padding {
			fill := e.Color
			if fill == nil {
				fill = palette.Highlight
			}
			if err := rect(fill, baseX+padding, baseY+padding, bar-2*padding, rh-2*padding); err != nil {
				return nil, fmt.Errorf("draw bar: %w", err)
			}
		}

		value := strconv.FormatFloat(e.Value, 'f', -1, 64)
		valueWidth, err := text.Width(value, font)
		if err != nil {
			return nil, err
		}
		arrowSize := math.Round(rh * 0.4)
		labelWidth := valueWidth
		if e.Arrow != ArrowNone {
			labelWidth += padding + arrowSize
		}

		// Inside the bar when it fits, otherwise just after it.
		x := baseX + bar + margin
		if labelWidth+4*padding < bar {
			x = baseX + bar - labelWidth - 2*padding
		}
		texts = append(texts, textDraw{s: value, x: x, y: baseY + 0.75*rh})

		if e.Arrow != ArrowNone {
			if err := drawArrow(dc, e.Arrow, x+valueWidth+padding, baseY+rh/2, arrowSize); err != nil {
				return nil, err
			}
		}

		canvas.Logger().Debug("rendered graph row", "index", i, "name", e.Name, "bar", bar, "valueInside", x < baseX+bar)
		baseY += rh + margin
	}

	graph := canvas.Clone(dc.Image())
	for _, ic := range iconDraws {
		canvas.DrawScaled(graph, ic.img, ic.x, ic.y, rh-2*padding, rh-2*padding)
	}
	for _, t := range texts {
		if err := text.DrawText(graph, t.s, t.x, t.y, text.DrawOptions{Font: font, Style: palette.Text, MaxWidth: t.maxWidth}); err != nil {
			return nil, err
		}
	}

	var parts []image.Image
	if opts.Title != "" {
		title, err := text.Label(opts.Title, text.LabelOptions{
			Width:  float64(width),
			Height: rh,
			Style:  palette.Text,
			Margin: margin,
		})
		if err != nil {
			return nil, fmt.Errorf("graph title: %w", err)
		}
		parts = append(parts, title)
	}
	if opts.Subtitle != "" {
		subtitle, err := text.Label(opts.Subtitle, text.LabelOptions{
			Width:  float64(width),
			Height: math.Round(rh * 0.66),
			Style:  palette.Text,
			Margin: margin,
		})
		if err != nil {
			return nil, fmt.Errorf("graph subtitle: %w", err)
		}
		parts = append(parts, subtitle)
	}
	parts = append(parts, graph)

	joined, err := canvas.JoinVertical(parts, canvas.JoinOptions{})
	if err != nil {
		return nil, err
	}
	return canvas.FillBackground(joined, palette.Background), nil
}

// loadIcons resolves every entry's icon in order. Load failures are logged
// and leave a nil icon; only a cancelled context stops the graph.
func loadIcons(ctx context.Context, entries []Entry, loader Loader, hidden bool) ([]image.Image, error) {
	icons := make([]image.Image, len(entries))
	if hidden {
		return icons, nil
	}
	for i, e := range entries {
		if e.Icon != nil {
			icons[i] = e.Icon
			continue
		}
		if e.IconURL == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := loader.Load(ctx, e.IconURL)
		if err != nil {
			canvas.Logger().Warn("failed to load graph icon", "entry", e.Name, "src", e.IconURL, "err", err)
			continue
		}
		icons[i] = img
	}
	return icons, nil
}

// drawArrow fills a trend triangle of the given size whose left edge is at x
// and which is centred vertically on cy.
func drawArrow(dc *gg.Context, a Arrow, x, cy, size float64) error {
	half := size / 2
	if a == ArrowUp {
		dc.MoveTo(x, cy+half)
		dc.LineTo(x+size, cy+half)
		dc.LineTo(x+half, cy-half)
		dc.SetColor(colornames.Darkgreen)
	} else {
		dc.MoveTo(x, cy-half)
		dc.LineTo(x+size, cy-half)
		dc.LineTo(x+half, cy+half)
		dc.SetColor(colornames.Darkred)
	}
	dc.ClosePath()
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("draw arrow: %w", err)
	}
	return nil
}
