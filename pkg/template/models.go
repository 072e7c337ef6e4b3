// Package template provides JSON-driven wheel and graph generation via
// documents and data overrides.
package template

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document kinds.
const (
	KindWheel = "wheel"
	KindGraph = "graph"
)

// ── Document types ──

// Document is the top-level structure of a document.json file.
type Document struct {
	Meta   Meta       `json:"meta"`
	Kind   string     `json:"kind"` // "wheel" or "graph"
	Output string     `json:"output,omitempty"`
	Fonts  []FontSpec `json:"fonts,omitempty"`
	Wheel  *WheelSpec `json:"wheel,omitempty"`
	Graph  *GraphSpec `json:"graph,omitempty"`
}

// Meta holds document metadata.
type Meta struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// FontSpec registers a TTF/OTF file under a family name before rendering.
type FontSpec struct {
	Path   string `json:"path"` // resolved from assets
	Family string `json:"family"`
	Style  string `json:"style"` // "normal", "bold", "italic", "bold italic"
}

// ── Wheel types ──

// WheelSpec describes a wheel of fortune.
type WheelSpec struct {
	Radius    float64    `json:"radius,omitempty"`
	TileStyle string     `json:"tileStyle,omitempty"` // default fill for tiles
	TextStyle string     `json:"textStyle,omitempty"` // default text colour
	Tiles     []TileSpec `json:"tiles"`
	Spin      *SpinSpec  `json:"spin,omitempty"`
}

// SpinSpec configures the spin animation. Frames is derived from the
// duration requested on the command line when zero.
type SpinSpec struct {
	Frames  int     `json:"frames,omitempty"`
	FPS     int     `json:"fps,omitempty"`
	Turns   float64 `json:"turns,omitempty"`
	Landing int     `json:"landing,omitempty"`
}

// TileSpec is one slot of a wheel.
type TileSpec struct {
	Content    ContentSpec `json:"content"`
	Fill       string      `json:"fill,omitempty"`
	Text       string      `json:"text,omitempty"`
	Horizontal bool        `json:"horizontal,omitempty"`
}

// ContentSpec is a tile's content. In JSON it is a number (amount in cents),
// a string (label), an object {"icon": "path"} or an array of nested tiles.
// null leaves the tile blank.
type ContentSpec struct {
	Amount *float64
	Label  string
	Icon   string
	Tiles  []TileSpec
}

// UnmarshalJSON decodes the polymorphic content forms.
func (c *ContentSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = ContentSpec{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &c.Label)
	case '[':
		if err := json.Unmarshal(data, &c.Tiles); err != nil {
			return err
		}
		if c.Tiles == nil {
			c.Tiles = []TileSpec{}
		}
		return nil
	case '{':
		var obj struct {
			Icon string `json:"icon"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Icon == "" {
			return fmt.Errorf("tile content object needs an \"icon\" path")
		}
		c.Icon = obj.Icon
		return nil
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("tile content must be a number, string, icon object or array: %w", err)
		}
		c.Amount = &v
		return nil
	}
}

// MarshalJSON encodes the content in the same forms UnmarshalJSON accepts.
func (c ContentSpec) MarshalJSON() ([]byte, error) {
	switch {
	case c.Amount != nil:
		return json.Marshal(*c.Amount)
	case c.Tiles != nil:
		return json.Marshal(c.Tiles)
	case c.Icon != "":
		return json.Marshal(map[string]string{"icon": c.Icon})
	case c.Label != "":
		return json.Marshal(c.Label)
	}
	return []byte("null"), nil
}

// IsBlank reports whether the content selects no overlay.
func (c ContentSpec) IsBlank() bool {
	return c.Amount == nil && c.Label == "" && c.Icon == "" && c.Tiles == nil
}

// ── Graph types ──

// GraphSpec describes a bar graph.
type GraphSpec struct {
	Title     string       `json:"title,omitempty"`
	Subtitle  string       `json:"subtitle,omitempty"`
	RowHeight int          `json:"rowHeight,omitempty"`
	Width     int          `json:"width,omitempty"`
	HideNames bool         `json:"hideNames,omitempty"`
	HideIcons bool         `json:"hideIcons,omitempty"`
	Palette   *PaletteSpec `json:"palette,omitempty"`
	Entries   []EntrySpec  `json:"entries"`
}

// PaletteSpec overrides palette roles with colour strings.
type PaletteSpec struct {
	Background   string `json:"background,omitempty"`
	Padding      string `json:"padding,omitempty"`
	LightPadding string `json:"lightPadding,omitempty"`
	DarkPadding  string `json:"darkPadding,omitempty"`
	Highlight    string `json:"highlight,omitempty"`
	Text         string `json:"text,omitempty"`
}

// EntrySpec is one row of a bar graph.
type EntrySpec struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Icon  string  `json:"icon,omitempty"`  // URL or path (resolved from assets)
	Color string  `json:"color,omitempty"` // bar colour override
	Arrow string  `json:"arrow,omitempty"` // "up", "down" or empty
}

// ── Data types ──

// DataSpec is the top-level structure of data.json. Lists replace the
// document's; Values updates entry values by name.
type DataSpec struct {
	Title    string             `json:"title,omitempty"`
	Subtitle string             `json:"subtitle,omitempty"`
	Tiles    []TileSpec         `json:"tiles,omitempty"`
	Entries  []EntrySpec        `json:"entries,omitempty"`
	Values   map[string]float64 `json:"values,omitempty"`
	Landing  *int               `json:"landing,omitempty"`
}
