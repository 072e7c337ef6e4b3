// fonts.go - Register a document's custom fonts with the text registry.
// Fonts that fail to load are skipped; text falls back to the embedded
// Go fonts.
package template

import (
	"fmt"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"github.com/xob0t/canvaskit/pkg/text"
)

// RegisterFonts loads every font listed in doc into the default registry.
// Returns warnings for fonts that could not be registered.
func RegisterFonts(doc *Document) []string {
	var warnings []string
	for _, f := range doc.Fonts {
		if f.Path == "" || f.Family == "" {
			continue
		}

		style := text.Regular
		if f.Style != "" {
			s, err := text.ParseFontStyle(f.Style)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("font %q: %v - using regular", f.Family, err))
			} else {
				style = s
			}
		}

		if err := text.RegisterFont(f.Path, f.Family, style); err != nil {
			canvas.Logger().Warn("could not load custom font, using default", "family", f.Family, "path", f.Path, "err", err)
			warnings = append(warnings, fmt.Sprintf("could not load font %q from %s: %v", f.Family, f.Path, err))
			continue
		}
		canvas.Logger().Debug("registered font", "family", f.Family, "style", style)
	}
	return warnings
}
