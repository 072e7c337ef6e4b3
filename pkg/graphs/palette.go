// Package graphs renders leaderboard-style bar graphs with optional names,
// icons, trend arrows, title and subtitle.
package graphs

import (
	"image/color"

	"github.com/xob0t/canvaskit/pkg/canvas"
)

// Palette holds the colour roles of a graph.
type Palette struct {
	Background   color.Color
	Padding      color.Color
	LightPadding color.Color
	DarkPadding  color.Color
	Highlight    color.Color
	Text         color.Color
}

// DefaultPalette is the Discord colour scheme.
var DefaultPalette = Palette{
	Background:   canvas.MustParseStyle("#36393e"),
	Padding:      canvas.MustParseStyle("#282b30"),
	LightPadding: canvas.MustParseStyle("#424549"),
	DarkPadding:  canvas.MustParseStyle("#1e2124"),
	Highlight:    canvas.MustParseStyle("#7289da"),
	Text:         canvas.MustParseStyle("white"),
}

// withDefaults fills unset roles from DefaultPalette.
func (p Palette) withDefaults() Palette {
	fill := func(c *color.Color, def color.Color) {
		if *c == nil {
			*c = def
		}
	}
	fill(&p.Background, DefaultPalette.Background)
	fill(&p.Padding, DefaultPalette.Padding)
	fill(&p.LightPadding, DefaultPalette.LightPadding)
	fill(&p.DarkPadding, DefaultPalette.DarkPadding)
	fill(&p.Highlight, DefaultPalette.Highlight)
	fill(&p.Text, DefaultPalette.Text)
	return p
}
