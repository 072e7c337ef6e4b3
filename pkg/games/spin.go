package games

import (
	"fmt"
	"image"
	"math"

	"github.com/xob0t/canvaskit/pkg/canvas"
)

// SpinOptions configures SpinFrames. Zero values select the defaults.
type SpinOptions struct {
	// Frames in the animation, default 45.
	Frames int
	// Turns is the number of full revolutions before settling, default 3.
	Turns float64
	// Sectors and Landing pick the tile that ends at the top. With Sectors
	// zero the wheel ends where it started.
	Sectors int
	Landing int
}

// SpinFrames returns rotated copies of a rendered wheel that decelerate to a
// stop, for use as animation frames. The first of several frames shows the
// wheel at rest and the last shows the landing position.
func SpinFrames(wheel image.Image, opts SpinOptions) ([]*image.RGBA, error) {
	frames := opts.Frames
	if frames == 0 {
		frames = 45
	}
	if frames < 0 {
		return nil, fmt.Errorf("%w: expected a positive frame count but got %d", canvas.ErrInvalidSize, frames)
	}
	turns := opts.Turns
	if turns == 0 {
		turns = 3
	}
	if opts.Sectors < 0 || (opts.Sectors > 0 && (opts.Landing < 0 || opts.Landing >= opts.Sectors)) {
		return nil, fmt.Errorf("landing tile %d out of range for %d sectors", opts.Landing, opts.Sectors)
	}

	total := 2 * math.Pi * turns
	if opts.Sectors > 0 && opts.Landing > 0 {
		// Tile k sits 2π·k/N clockwise from the top; finish the turn it needs.
		total += 2 * math.Pi * float64(opts.Sectors-opts.Landing) / float64(opts.Sectors)
	}

	out := make([]*image.RGBA, frames)
	for i := range out {
		t := 1.0
		if frames > 1 {
			t = float64(i) / float64(frames-1)
		}
		out[i] = canvas.Rotated(wheel, math.Mod(total*easeOut(t), 2*math.Pi))
	}
	return out, nil
}

// easeOut is a cubic ease-out curve on [0, 1].
func easeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
