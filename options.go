package stegmark

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stegmark/stegmark/internal/codec"
	"github.com/stegmark/stegmark/internal/ecc"
	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/tiling"
)

type config struct {
	maxPayload   int
	tileGrids    []tiling.Grid
	minTileDim   int
	policy       []codec.Attempt
	outputFormat string
	jpegQuality  int
	compress     bool
	ecc          *ecc.Coder
	codec        codec.Codec
	log          zerolog.Logger
}

func defaultConfig() config {
	return config{
		maxPayload: 512,
		tileGrids: []tiling.Grid{
			{Rows: 3, Cols: 3},
			{Rows: 2, Cols: 2},
		},
		minTileDim: 512,
		policy: []codec.Attempt{
			{Method: MethodDWTDCTSVD, Strength: &Strength{D1: 40, D2: 20}},
			{Method: MethodDWTDCT, Strength: &Strength{D1: 220}},
			{Method: MethodDWTDCTSVD},
		},
		jpegQuality: imageio.DefaultJPEGQuality,
		codec:       codec.NewTransform(),
		log:         zerolog.Nop(),
	}
}

// Option adjusts a Watermarker at construction time. The resulting
// configuration is immutable afterwards.
type Option func(*config) error

// WithMaxPayload sets the maximum payload size in bytes. Both sides of
// a round trip must agree on it, since it fixes the frame size the
// extractor requests from the transform.
func WithMaxPayload(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("max payload must be positive, got %d", n)
		}
		c.maxPayload = n
		return nil
	}
}

// WithTileGrids sets the candidate {rows, cols} partitions, tried in
// order; the first whose tiles all meet the minimum dimension wins.
// An empty list forces whole-frame embedding.
func WithTileGrids(grids ...[2]int) Option {
	return func(c *config) error {
		c.tileGrids = c.tileGrids[:0]
		for _, g := range grids {
			if g[0] < 1 || g[1] < 1 {
				return fmt.Errorf("invalid tile grid %dx%d", g[0], g[1])
			}
			c.tileGrids = append(c.tileGrids, tiling.Grid{Rows: g[0], Cols: g[1]})
		}
		return nil
	}
}

// WithMinTileDim sets the minimum pixel dimension a tile must have for
// a grid to be eligible. The transform needs a minimum block count to
// embed the frame reliably.
func WithMinTileDim(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("min tile dimension must be positive, got %d", n)
		}
		c.minTileDim = n
		return nil
	}
}

// WithMethodPolicy replaces the method/strength fallback chain used by
// both embedding and extraction.
func WithMethodPolicy(attempts ...Attempt) Option {
	return func(c *config) error {
		if len(attempts) == 0 {
			return errors.New("method policy must not be empty")
		}
		c.policy = append([]codec.Attempt(nil), attempts...)
		return nil
	}
}

// WithOutputFormat overrides the output container ("png", "jpeg",
// "qoi"). The default is the source format, falling back to PNG.
func WithOutputFormat(format string) Option {
	return func(c *config) error {
		c.outputFormat = format
		return nil
	}
}

// WithJPEGQuality sets the JPEG encode quality (1..100). The default is
// near-lossless; aggressive compression degrades the watermark signal.
func WithJPEGQuality(q int) Option {
	return func(c *config) error {
		if q < 1 || q > 100 {
			return fmt.Errorf("jpeg quality out of range: %d", q)
		}
		c.jpegQuality = q
		return nil
	}
}

// WithECC protects the frame bits with a Golay code and a seeded bit
// shuffle before embedding. Both sides must use the same seed. Off by
// default to stay bit-exact with frames embedded by earlier builds.
func WithECC(seed int64) Option {
	return func(c *config) error {
		c.ecc = ecc.New(seed)
		return nil
	}
}

// WithPayloadCompression zstd-compresses the payload before framing
// when that makes it smaller. Extraction detects compressed payloads by
// their magic bytes, so compressed and plain frames interoperate.
func WithPayloadCompression() Option {
	return func(c *config) error {
		c.compress = true
		return nil
	}
}

// WithLogger sets the logger for extraction diagnostics. The default
// discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *config) error {
		c.log = log
		return nil
	}
}
