// Package generator writes rendered surfaces to disk or any io.Writer.
//
// All output follows a unified pipeline: render an image.Image first, then
// write it as PNG, JPEG or BMP, or containerize a frame sequence as an MJPEG
// AVI.
package generator

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoImage is returned when a Config carries neither an image nor frames.
var ErrNoImage = errors.New("generator: nothing to write")

// DefaultFPS is the AVI frame rate when Config.FPS is zero.
const DefaultFPS = 15

// Config holds parameters for media generation.
type Config struct {
	// Image is written by the still formats and, when Frames is empty,
	// held for one second of video.
	Image image.Image
	// Frames are the video frames. Still formats write the last frame when
	// Image is nil.
	Frames []image.Image
	// FPS is the AVI frame rate (default: 15).
	FPS int
	// Quality is the JPEG quality for .jpg and .avi (default: 95).
	Quality int
	// Background is painted behind transparent pixels for formats without
	// alpha: JPEG and AVI (default: white).
	Background color.Color
}

// Generate creates an output file. The format is inferred from the file extension:
//   - ".png" → PNG image
//   - ".jpg", ".jpeg" → JPEG image
//   - ".bmp" → BMP image
//   - ".avi" → MJPEG AVI video
func Generate(output string, cfg Config) error {
	ext := strings.ToLower(filepath.Ext(output))
	if !supported(ext) {
		return unsupported(ext)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := GenerateToWriter(f, ext, cfg); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	return f.Close()
}

// GenerateToWriter writes media to an io.Writer. The format is specified by
// ext (".png", ".jpg", ".jpeg", ".bmp" or ".avi").
func GenerateToWriter(w io.Writer, ext string, cfg Config) error {
	ext = strings.ToLower(ext)
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp":
		img, err := stillImage(cfg)
		if err != nil {
			return err
		}
		return writeStill(w, ext, img, cfg)
	case ".avi":
		frames, err := videoFrames(cfg)
		if err != nil {
			return err
		}
		return writeAVI(w, frames, cfg)
	default:
		return unsupported(ext)
	}
}

func supported(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".avi":
		return true
	}
	return false
}

func unsupported(ext string) error {
	return fmt.Errorf("unsupported format %q: use .png, .jpg, .bmp or .avi", ext)
}

// stillImage returns the image for still formats.
func stillImage(cfg Config) (image.Image, error) {
	if cfg.Image != nil {
		return cfg.Image, nil
	}
	if n := len(cfg.Frames); n > 0 {
		return cfg.Frames[n-1], nil
	}
	return nil, ErrNoImage
}

// videoFrames returns the frames for video, holding a lone image for one
// second.
func videoFrames(cfg Config) ([]image.Image, error) {
	if len(cfg.Frames) > 0 {
		return cfg.Frames, nil
	}
	if cfg.Image == nil {
		return nil, ErrNoImage
	}
	frames := make([]image.Image, fps(cfg))
	for i := range frames {
		frames[i] = cfg.Image
	}
	return frames, nil
}

func fps(cfg Config) int {
	if cfg.FPS > 0 {
		return cfg.FPS
	}
	return DefaultFPS
}

func quality(cfg Config) int {
	if cfg.Quality > 0 {
		return min(cfg.Quality, 100)
	}
	return 95
}
