package text

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/xob0t/canvaskit/pkg/canvas"
)

// ErrEmptyGrid is returned by Grid when it has no cells.
var ErrEmptyGrid = errors.New("text: empty grid")

// BoxOptions configures Box. Zero values select the Label defaults, except
// Font which defaults to a sans-serif font 0.6 times the row height.
type BoxOptions struct {
	Align  Align
	Font   string
	Style  color.Color
	Alpha  float64
	Margin float64
}

// Box word-wraps s into rows of the given width and stacks them. Words are
// added to a row until it reaches the width, then the last word moves to the
// next row. A single word wider than the box keeps its own row and is
// squeezed to fit.
func Box(s string, width, rowHeight float64, opts BoxOptions) (*image.RGBA, error) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: cannot create a text box with no words", ErrEmptyText)
	}
	if width <= 0 || rowHeight <= 0 {
		return nil, fmt.Errorf("%w: text box %gx%g", canvas.ErrInvalidSize, width, rowHeight)
	}

	spec := opts.Font
	if spec == "" {
		spec = defaultFont(rowHeight)
	}
	f, err := ParseFont(spec)
	if err != nil {
		return nil, err
	}
	measure := func(words []string) (float64, error) {
		m, err := Default().Measure(strings.Join(words, " "), f)
		return m.Advance, err
	}

	var rows []image.Image
	for len(words) > 0 {
		n := 1
		for n < len(words) {
			w, err := measure(words[:n])
			if err != nil {
				return nil, err
			}
			if w >= width {
				break
			}
			n++
		}
		// The loop overshoots by one word unless it ran out of words.
		if n > 1 {
			if w, err := measure(words[:n]); err != nil {
				return nil, err
			} else if w >= width {
				n--
			}
		}

		row, err := Label(strings.Join(words[:n], " "), LabelOptions{
			Width:  width,
			Height: rowHeight,
			Align:  opts.Align,
			Font:   spec,
			Style:  opts.Style,
			Alpha:  opts.Alpha,
			Margin: opts.Margin,
		})
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		words = words[n:]
	}

	return canvas.JoinVertical(rows, canvas.JoinOptions{})
}

// Cell is one entry of a text grid. Empty text renders as a blank cell.
type Cell struct {
	Text  string
	Style color.Color
	Font  string
}

// GridOptions configures Grid.
type GridOptions struct {
	// RowHeight defaults to 20.
	RowHeight float64
	// Spacing is the horizontal gap between columns.
	Spacing int
}

// Grid renders a table of labels. Each column is as wide as its widest cell,
// cells are left-aligned within their column and columns are top-aligned.
// Every row must have the same number of cells.
func Grid(cells [][]Cell, opts GridOptions) (*image.RGBA, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(cells[0])
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("text grid row %d has %d cells, expected %d", r, len(row), cols)
		}
	}

	columns := make([]image.Image, 0, cols)
	for c := 0; c < cols; c++ {
		labels := make([]image.Image, 0, len(cells))
		for r := range cells {
			cell := cells[r][c]
			s := cell.Text
			if s == "" {
				s = " "
			}
			label, err := Label(s, LabelOptions{Height: opts.RowHeight, Style: cell.Style, Font: cell.Font})
			if err != nil {
				return nil, fmt.Errorf("text grid cell (%d, %d): %w", r, c, err)
			}
			labels = append(labels, label)
		}
		column, err := canvas.JoinVertical(labels, canvas.JoinOptions{Align: canvas.AlignStart})
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)
	}

	return canvas.JoinHorizontal(columns, canvas.JoinOptions{Align: canvas.AlignStart, Spacing: opts.Spacing})
}
