// validator.go - Validate documents and data.json overrides.
package template

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"github.com/xob0t/canvaskit/pkg/text"
)

// Validate checks a document for problems that rendering would paper over.
// Returns warnings (never fatal errors) for graceful degradation: bad
// colours fall back to defaults when building.
func Validate(doc *Document) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	style := func(where, s string) {
		if s == "" {
			return
		}
		if _, err := canvas.ParseStyle(s); err != nil {
			warn("%s: %v - using default", where, err)
		}
	}

	for i, f := range doc.Fonts {
		if f.Path == "" || f.Family == "" {
			warn("font %d: needs both path and family - ignored", i)
		}
		if f.Style != "" {
			if _, err := text.ParseFontStyle(f.Style); err != nil {
				warn("font %d: %v", i, err)
			}
		}
	}

	switch doc.Kind {
	case KindWheel:
		if doc.Wheel == nil {
			warn("wheel document has no \"wheel\" section")
			break
		}
		w := doc.Wheel
		if w.Radius < 0 {
			warn("wheel radius %g is negative", w.Radius)
		}
		style("wheel tileStyle", w.TileStyle)
		style("wheel textStyle", w.TextStyle)
		if len(w.Tiles) < 2 {
			warn("wheel has %d tiles, at least 2 are needed", len(w.Tiles))
		}
		validateTiles(w.Tiles, "tile", warn, style)
		if w.Spin != nil && len(w.Tiles) > 0 && (w.Spin.Landing < 0 || w.Spin.Landing >= len(w.Tiles)) {
			warn("spin landing %d is outside the wheel's %d tiles", w.Spin.Landing, len(w.Tiles))
		}
	case KindGraph:
		if doc.Graph == nil {
			warn("graph document has no \"graph\" section")
			break
		}
		g := doc.Graph
		if len(g.Entries) == 0 {
			warn("graph has no entries")
		}
		if g.Palette != nil {
			p := g.Palette
			style("palette background", p.Background)
			style("palette padding", p.Padding)
			style("palette lightPadding", p.LightPadding)
			style("palette darkPadding", p.DarkPadding)
			style("palette highlight", p.Highlight)
			style("palette text", p.Text)
		}
		for i, e := range g.Entries {
			style(fmt.Sprintf("entry %d (%s) color", i, e.Name), e.Color)
			if _, ok := arrows[strings.ToLower(e.Arrow)]; !ok {
				warn("entry %d (%s): unknown arrow %q - ignored", i, e.Name, e.Arrow)
			}
		}
	default:
		warn("unknown document kind %q (want %q or %q)", doc.Kind, KindWheel, KindGraph)
	}

	return warnings
}

func validateTiles(tiles []TileSpec, path string, warn func(string, ...any), style func(string, string)) {
	for i, t := range tiles {
		where := fmt.Sprintf("%s %d", path, i)
		style(where+" fill", t.Fill)
		style(where+" text", t.Text)
		if t.Content.Tiles != nil {
			if len(t.Content.Tiles) == 0 {
				warn("%s: compound tile is empty", where)
			}
			validateTiles(t.Content.Tiles, where+" sub-tile", warn, style)
		}
	}
}

// ValidateData checks that data.json only refers to what the document has.
func ValidateData(data *DataSpec, doc *Document) []string {
	if data == nil {
		return nil
	}

	var warnings []string
	if doc.Graph == nil && (data.Title != "" || data.Subtitle != "" || data.Entries != nil || data.Values != nil) {
		warnings = append(warnings, "data sets graph fields on a non-graph document - ignored")
	}
	if doc.Wheel == nil && (data.Tiles != nil || data.Landing != nil) {
		warnings = append(warnings, "data sets wheel fields on a non-wheel document - ignored")
	}

	if doc.Graph != nil && data.Values != nil {
		entries := doc.Graph.Entries
		if data.Entries != nil {
			entries = data.Entries
		}
		known := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			known[e.Name] = struct{}{}
		}
		var unknown []string
		for name := range data.Values {
			if _, ok := known[name]; !ok {
				unknown = append(unknown, name)
			}
		}
		sort.Strings(unknown)
		for _, name := range unknown {
			warnings = append(warnings, fmt.Sprintf("data sets a value for unknown entry %q - ignored", name))
		}
	}

	return warnings
}

// Describe returns a human-readable summary of a document.
func Describe(doc *Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document: %s (v%s) by %s\n", doc.Meta.Name, doc.Meta.Version, doc.Meta.Author)
	if doc.Meta.Description != "" {
		b.WriteString(doc.Meta.Description + "\n")
	}
	fmt.Fprintf(&b, "Kind:   %s\nOutput: %s\n", doc.Kind, doc.Output)

	for _, f := range doc.Fonts {
		fmt.Fprintf(&b, "Font:   %s (%s) from %s\n", f.Family, f.Style, f.Path)
	}

	if w := doc.Wheel; w != nil {
		fmt.Fprintf(&b, "\nWheel: %d tiles\n", len(w.Tiles))
		describeTiles(&b, w.Tiles, "  ")
	}
	if g := doc.Graph; g != nil {
		fmt.Fprintf(&b, "\nGraph: %q, %d entries\n", g.Title, len(g.Entries))
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "  %-12s %g\n", e.Name+":", e.Value)
		}
	}

	return b.String()
}

func describeTiles(b *strings.Builder, tiles []TileSpec, indent string) {
	for i, t := range tiles {
		c := t.Content
		switch {
		case c.Amount != nil:
			fmt.Fprintf(b, "%s[%d] %g¢\n", indent, i, *c.Amount)
		case c.Label != "":
			fmt.Fprintf(b, "%s[%d] %q\n", indent, i, c.Label)
		case c.Icon != "":
			fmt.Fprintf(b, "%s[%d] icon %s\n", indent, i, c.Icon)
		case c.Tiles != nil:
			fmt.Fprintf(b, "%s[%d] compound\n", indent, i)
			describeTiles(b, c.Tiles, indent+"  ")
		default:
			fmt.Fprintf(b, "%s[%d] blank\n", indent, i)
		}
	}
}
