// join.go - Horizontal, vertical and grid composition of surfaces.
package canvas

import (
	"fmt"
	"image"
	"math"
)

// Align controls cross-axis placement when joining surfaces.
type Align int

const (
	// AlignStart aligns to the top (horizontal joins) or left (vertical joins).
	AlignStart Align = iota
	// AlignEnd aligns to the bottom or right.
	AlignEnd
	AlignCenter
	// ResizeToFirst scales every surface to the cross-axis size of the first.
	ResizeToFirst
	// ResizeToSmallest scales every surface to the shortest/thinnest one.
	ResizeToSmallest
	// ResizeToLargest scales every surface to the tallest/widest one.
	ResizeToLargest
)

// JoinOptions configures JoinHorizontal and JoinVertical.
type JoinOptions struct {
	Align   Align
	Spacing int
	// MaxExtent caps the main-axis size of the result. Surfaces overlap
	// evenly to fit. Zero means unbounded.
	MaxExtent int
}

// JoinHorizontal lays imgs out left to right.
func JoinHorizontal(imgs []image.Image, opts JoinOptions) (*image.RGBA, error) {
	return join(imgs, opts, true)
}

// JoinVertical lays imgs out top to bottom.
func JoinVertical(imgs []image.Image, opts JoinOptions) (*image.RGBA, error) {
	return join(imgs, opts, false)
}

// join implements both axes. "main" is the axis along which surfaces are
// concatenated, "cross" the one along which they are aligned.
func join(imgs []image.Image, opts JoinOptions, horizontal bool) (*image.RGBA, error) {
	if len(imgs) == 0 {
		return nil, fmt.Errorf("%w: cannot join an empty list of images", ErrNoImages)
	}

	mainOf := func(img image.Image) int {
		if horizontal {
			return img.Bounds().Dx()
		}
		return img.Bounds().Dy()
	}
	crossOf := func(img image.Image) int {
		if horizontal {
			return img.Bounds().Dy()
		}
		return img.Bounds().Dx()
	}

	// Find the cross-axis target size if a resize mode is requested.
	target := 0
	switch opts.Align {
	case ResizeToFirst:
		target = crossOf(imgs[0])
	case ResizeToSmallest:
		target = math.MaxInt
		for _, img := range imgs {
			target = min(target, crossOf(img))
		}
	case ResizeToLargest:
		for _, img := range imgs {
			target = max(target, crossOf(img))
		}
	}

	resized := imgs
	if target > 0 {
		resized = make([]image.Image, len(imgs))
		for i, img := range imgs {
			ro := ResizeOptions{Height: target}
			if !horizontal {
				ro = ResizeOptions{Width: target}
			}
			r, err := Resize(img, ro)
			if err != nil {
				return nil, fmt.Errorf("join: image %d: %w", i, err)
			}
			resized[i] = r
		}
	}

	ideal := opts.Spacing * (len(resized) - 1)
	cross := 0
	for _, img := range resized {
		ideal += mainOf(img)
		cross = max(cross, crossOf(img))
	}

	extent := ideal
	if opts.MaxExtent > 0 {
		extent = min(ideal, opts.MaxExtent)
	}
	overflow := max(0, ideal-extent)
	lost := int(math.Ceil(float64(overflow) / float64(max(1, len(resized)-1))))

	var dst *image.RGBA
	if horizontal {
		dst = New(extent, cross)
	} else {
		dst = New(cross, extent)
	}

	base := 0
	for _, img := range resized {
		offset := 0
		switch opts.Align {
		case AlignEnd:
			offset = cross - crossOf(img)
		case AlignCenter:
			offset = (cross - crossOf(img)) / 2
		}
		if horizontal {
			DrawAt(dst, img, base, offset)
		} else {
			DrawAt(dst, img, offset, base)
		}
		base += mainOf(img) + opts.Spacing - lost
	}

	return dst, nil
}

// GridOptions selects the grid shape. Zero means "derive automatically".
type GridOptions struct {
	Rows    int
	Columns int
}

// JoinAsEvenGrid arranges imgs into an evenly spaced grid, row by row. With
// neither dimension given the grid is as square as possible. Each cell is as
// large as the largest image and every image is centred within its cell.
func JoinAsEvenGrid(imgs []image.Image, opts GridOptions) (*image.RGBA, error) {
	n := len(imgs)
	if n == 0 {
		return nil, fmt.Errorf("%w: cannot join an empty list of images", ErrNoImages)
	}

	rows, columns := opts.Rows, opts.Columns
	if rows == 0 {
		if columns == 0 {
			columns = int(math.Round(math.Sqrt(float64(n))))
		}
		if columns > 0 {
			rows = (n + columns - 1) / columns
		}
	} else if columns == 0 && rows > 0 {
		columns = (n + rows - 1) / rows
	}

	if rows <= 0 || columns <= 0 || n > rows*columns {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		return nil, fmt.Errorf("%w: cannot join %d image%s into a %dx%d grid", ErrInvalidSize, n, plural, rows, columns)
	}

	cellW, cellH := 0, 0
	for _, img := range imgs {
		cellW = max(cellW, img.Bounds().Dx())
		cellH = max(cellH, img.Bounds().Dy())
	}

	dst := New(cellW*columns, cellH*rows)
	for i, img := range imgs {
		c := i % columns
		r := i / columns
		b := img.Bounds()
		DrawAt(dst, img, c*cellW+(cellW-b.Dx())/2, r*cellH+(cellH-b.Dy())/2)
	}

	return dst, nil
}
