// still.go - PNG, JPEG and BMP writers.
package generator

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/xob0t/canvaskit/pkg/canvas"
	"golang.org/x/image/bmp"
)

// writeStill encodes img in the format named by ext.
func writeStill(w io.Writer, ext string, img image.Image, cfg Config) error {
	switch ext {
	case ".png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case ".jpg", ".jpeg":
		if err := encodeJPEG(w, img, cfg); err != nil {
			return err
		}
	case ".bmp":
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("encode BMP: %w", err)
		}
	default:
		return unsupported(ext)
	}
	return nil
}

// encodeJPEG flattens img onto the background, since JPEG has no alpha.
func encodeJPEG(w io.Writer, img image.Image, cfg Config) error {
	if err := jpeg.Encode(w, flatten(img, cfg.Background), &jpeg.Options{Quality: quality(cfg)}); err != nil {
		return fmt.Errorf("encode JPEG: %w", err)
	}
	return nil
}

func flatten(img image.Image, background color.Color) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	if background == nil {
		background = color.White
	}
	return canvas.FillBackground(img, background)
}
