package stegmark

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stegmark/stegmark/internal/frame"
	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/tiling"
)

// Embed hides payload inside imageBytes and returns the watermarked
// image re-encoded in the resolved output format (explicit override,
// else the source format, else PNG).
//
// When a tiling grid fits the image, every tile receives a full
// independent copy of the payload frame; otherwise the frame is
// embedded once across the whole image. Each region walks the method
// fallback chain until an attempt succeeds; if any region exhausts the
// chain the whole operation fails with ErrEncodingFailed.
func (w *Watermarker) Embed(ctx context.Context, imageBytes []byte, payload string) ([]byte, error) {
	payloadBytes := []byte(payload)
	if w.cfg.compress {
		payloadBytes = compressPayload(payloadBytes)
	}
	frm, err := frame.Build(payloadBytes, w.cfg.maxPayload)
	if err != nil {
		return nil, err
	}
	data := frm
	if w.cfg.ecc != nil {
		data = w.cfg.ecc.Encode(frm)
	}

	src, srcFormat, err := imageio.Load(imageBytes)
	if err != nil {
		return nil, err
	}
	// The caller keeps its buffer; all mutation happens on a copy.
	out := src.Clone()

	regions := w.embedRegions(out.Width, out.Height)
	g, gctx := errgroup.WithContext(ctx)
	for _, region := range regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return w.encodeRegion(out, region, data)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	format := imageio.ResolveFormat(w.cfg.outputFormat, srcFormat)
	return imageio.Save(out, format, w.cfg.jpegQuality)
}

// embedRegions returns the tile rectangles of the first eligible grid,
// or the whole frame when no grid fits.
func (w *Watermarker) embedRegions(width, height int) []tiling.Rect {
	if grid, ok := tiling.SelectGrid(width, height, w.cfg.tileGrids, w.cfg.minTileDim); ok {
		return tiling.Bounds(width, height, grid)
	}
	return []tiling.Rect{tiling.Whole(width, height)}
}

// encodeRegion walks the fallback chain for one region: trying each
// attempt in order, succeeding on the first accepted one, failing with
// ErrEncodingFailed once all attempts are exhausted.
func (w *Watermarker) encodeRegion(buf *imageio.Buffer, region tiling.Rect, data []byte) error {
	var attemptErrs []error
	for _, attempt := range w.cfg.policy {
		err := w.cfg.codec.Encode(buf, region, data, attempt.Method, attempt.Strength)
		if err == nil {
			return nil
		}
		attemptErrs = append(attemptErrs, fmt.Errorf("%s: %w", attempt.Method, err))
	}
	return fmt.Errorf("%w: region (%d,%d)-(%d,%d): %w",
		ErrEncodingFailed, region.X0, region.Y0, region.X1, region.Y1, errors.Join(attemptErrs...))
}
