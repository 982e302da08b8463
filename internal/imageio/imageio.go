// Package imageio adapts container formats to the flat RGB buffer the
// transform codec works on. Decoding accepts PNG, JPEG, WEBP, GIF and
// QOI; encoding supports PNG, JPEG (quality-controlled) and QOI.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/xfmoulet/qoi"

	// Register the decoders without an explicit call site.
	_ "image/gif"

	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedImage  = errors.New("unsupported image")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// DefaultJPEGQuality keeps lossy output near-lossless so the watermark
// signal survives the re-encode.
const DefaultJPEGQuality = 97

// Buffer is a 3-channel, 8-bit, interleaved RGB pixel buffer. Alpha is
// dropped on load; the transform codec has no use for it.
type Buffer struct {
	Pix           []uint8 // RGB interleaved, row-major
	Width, Height int
}

// At returns the RGB sample at (x, y).
func (b *Buffer) At(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set stores the RGB sample at (x, y).
func (b *Buffer) Set(x, y int, r, g, bl uint8) {
	i := (y*b.Width + x) * 3
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height}
}

func init() {
	image.RegisterFormat("qoi", "qoif", qoi.Decode, qoi.DecodeConfig)
}

// Load decodes image bytes into an RGB buffer, forcing a 3-channel
// color model regardless of the source (alpha, greyscale, indexed). It
// also returns the detected source format name ("png", "jpeg", ...).
func Load(data []byte) (*Buffer, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	bounds := img.Bounds()
	b := &Buffer{
		Pix:    make([]uint8, bounds.Dx()*bounds.Dy()*3),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			b.Pix[i] = uint8(r >> 8)
			b.Pix[i+1] = uint8(g >> 8)
			b.Pix[i+2] = uint8(bl >> 8)
			i += 3
		}
	}
	return b, format, nil
}

// DetectFormat sniffs the container format from magic bytes, falling
// back to "png" when nothing matches.
func DetectFormat(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "jpeg"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "webp"
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return "gif"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("qoif")):
		return "qoi"
	default:
		return "png"
	}
}

// ResolveFormat picks the output format: explicit override first, then
// the source format, then lossless PNG. Formats that cannot be encoded
// (webp, gif) resolve to PNG as well.
func ResolveFormat(override, source string) string {
	format := strings.ToLower(override)
	if format == "" {
		format = strings.ToLower(source)
	}
	if format == "jpg" {
		format = "jpeg"
	}
	switch format {
	case "png", "jpeg", "qoi":
		return format
	default:
		return "png"
	}
}

// Save re-encodes the buffer. quality applies to JPEG only; values
// outside 1..100 use DefaultJPEGQuality.
func Save(b *Buffer, format string, quality int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	i := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			o := img.PixOffset(x, y)
			img.Pix[o] = b.Pix[i]
			img.Pix[o+1] = b.Pix[i+1]
			img.Pix[o+2] = b.Pix[i+2]
			img.Pix[o+3] = 0xFF
			i += 3
		}
	}

	var out bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&out, img); err != nil {
			return nil, err
		}
	case "jpeg":
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	case "qoi":
		if err := qoi.Encode(&out, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return out.Bytes(), nil
}
