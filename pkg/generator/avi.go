// avi.go - AVI container writer using the Motion JPEG (MJPEG) video codec.
// Every frame is a standalone JPEG, so the spin animation plays in stock
// players without an external encoder.
package generator

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/xob0t/canvaskit/pkg/canvas"
)

const (
	avifHasIndex   = 0x10
	aviifKeyframe  = 0x10
	hdrlListSize   = 4 + 64 + 124 // "hdrl" + avih chunk + strl list
	strlListSize   = 4 + 64 + 48  // "strl" + strh chunk + strf chunk
	idx1EntrySize  = 16
	frameChunkHead = 8 // "00dc" + size
)

// writeAVI encodes frames as JPEGs and wraps them in an AVI container with a
// legacy idx1 index. All frames must share the first frame's size.
func writeAVI(w io.Writer, frames []image.Image, cfg Config) error {
	bounds := frames[0].Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())

	jpegs := make([][]byte, len(frames))
	var maxFrame uint32
	for i, frame := range frames {
		if b := frame.Bounds(); b.Dx() != bounds.Dx() || b.Dy() != bounds.Dy() {
			return fmt.Errorf("%w: frame %d is %dx%d, expected %dx%d", canvas.ErrInvalidSize, i, b.Dx(), b.Dy(), width, height)
		}
		var buf bytes.Buffer
		if err := encodeJPEG(&buf, frame, cfg); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		jpegs[i] = buf.Bytes()
		maxFrame = max(maxFrame, uint32(buf.Len()))
	}

	rate := uint32(fps(cfg))
	totalFrames := uint32(len(jpegs))

	moviSize := uint32(4) // "movi"
	for _, j := range jpegs {
		moviSize += frameChunkHead + padded(uint32(len(j)))
	}
	idx1Size := 8 + totalFrames*idx1EntrySize
	fileSize := 4 + (8 + hdrlListSize) + (8 + moviSize) + idx1Size

	bw := bufio.NewWriter(w)
	fourCC := func(s string) { bw.WriteString(s) }
	u32 := func(v uint32) { binary.Write(bw, binary.LittleEndian, v) }
	u16 := func(v uint16) { binary.Write(bw, binary.LittleEndian, v) }

	// === RIFF Header ===
	fourCC("RIFF")
	u32(fileSize)
	fourCC("AVI ")

	// === hdrl LIST ===
	fourCC("LIST")
	u32(hdrlListSize)
	fourCC("hdrl")

	// === avih (Main AVI Header) ===
	fourCC("avih")
	u32(56)
	u32(1000000 / rate)  // microseconds per frame
	u32(maxFrame * rate) // max bytes per sec
	u32(0)               // padding granularity
	u32(avifHasIndex)
	u32(totalFrames)
	u32(0) // initial frames
	u32(1) // streams
	u32(maxFrame)
	u32(width)
	u32(height)
	for range 4 {
		u32(0) // reserved
	}

	// === strl LIST ===
	fourCC("LIST")
	u32(strlListSize)
	fourCC("strl")

	// === strh (Stream Header) ===
	fourCC("strh")
	u32(56)
	fourCC("vids")
	fourCC("MJPG")
	u32(0) // flags
	u16(0) // priority
	u16(0) // language
	u32(0) // initial frames
	u32(1) // scale
	u32(rate)
	u32(0) // start
	u32(totalFrames)
	u32(maxFrame)
	u32(0) // quality
	u32(0) // sample size
	u16(0) // left
	u16(0) // top
	u16(uint16(width))
	u16(uint16(height))

	// === strf (BITMAPINFOHEADER) ===
	fourCC("strf")
	u32(40)
	u32(40) // biSize
	u32(width)
	u32(height)
	u16(1)  // planes
	u16(24) // bit count
	fourCC("MJPG")
	u32(width * height * 3)
	u32(0) // x pels per meter
	u32(0) // y pels per meter
	u32(0) // colours used
	u32(0) // colours important

	// === movi LIST ===
	fourCC("LIST")
	u32(moviSize)
	fourCC("movi")
	for _, j := range jpegs {
		fourCC("00dc")
		u32(uint32(len(j)))
		bw.Write(j)
		if len(j)%2 != 0 {
			bw.WriteByte(0)
		}
	}

	// === idx1 ===
	fourCC("idx1")
	u32(totalFrames * idx1EntrySize)
	offset := uint32(4) // from the "movi" fourCC
	for _, j := range jpegs {
		fourCC("00dc")
		u32(aviifKeyframe)
		u32(offset)
		u32(uint32(len(j)))
		offset += frameChunkHead + padded(uint32(len(j)))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write AVI: %w", err)
	}
	return nil
}

// padded rounds a chunk size up to the even boundary AVI requires.
func padded(n uint32) uint32 {
	return n + n%2
}
