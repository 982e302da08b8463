package stegmark

import (
	"context"
	"errors"

	"github.com/stegmark/stegmark/internal/codec"
	"github.com/stegmark/stegmark/internal/frame"
	"github.com/stegmark/stegmark/internal/imageio"
)

var (
	// ErrPayloadTooLarge reports a payload exceeding the configured
	// maximum. A caller error; retrying cannot help.
	ErrPayloadTooLarge = frame.ErrPayloadTooLarge
	// ErrUnsupportedImage reports input bytes no registered decoder
	// accepts.
	ErrUnsupportedImage = imageio.ErrUnsupportedImage
	// ErrEncodingFailed reports that every method attempt was exhausted
	// for some region. Embedding is all-or-nothing: a partially
	// watermarked image is never returned.
	ErrEncodingFailed = errors.New("watermark encoding failed")
)

// Method, Strength and Attempt configure the transform fallback chain,
// tried in order until one attempt succeeds.
type (
	Method   = codec.Method
	Strength = codec.Strength
	Attempt  = codec.Attempt
)

const (
	MethodDWTDCTSVD = codec.MethodDWTDCTSVD
	MethodDWTDCT    = codec.MethodDWTDCT
)

// Watermarker embeds and extracts invisible watermarks with a fixed
// configuration. It is stateless across calls and safe for concurrent
// use.
type Watermarker struct {
	cfg config
}

// New builds a Watermarker. Defaults: 512-byte maximum payload, tile
// grids 3x3 then 2x2 with a 512px minimum tile dimension, dwtDctSvd
// primary method with a dwtDct fallback, JPEG quality 97.
func New(opts ...Option) (*Watermarker, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Watermarker{cfg: cfg}, nil
}

// EmbedWatermark embeds payload into imageBytes with the given options
// and returns the re-encoded image. This is a convenience wrapper that
// builds a throwaway Watermarker.
func EmbedWatermark(ctx context.Context, imageBytes []byte, payload string, opts ...Option) ([]byte, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.Embed(ctx, imageBytes, payload)
}

// DecodeWatermark recovers the payload hidden in imageBytes, if any.
// found is false when no watermark is present; that is an expected
// outcome, not an error.
func DecodeWatermark(ctx context.Context, imageBytes []byte, opts ...Option) (payload string, found bool, err error) {
	w, err := New(opts...)
	if err != nil {
		return "", false, err
	}
	return w.Extract(ctx, imageBytes)
}
