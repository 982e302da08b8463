package stegmark

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stegmark/stegmark/internal/frame"
	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/tiling"
)

// Extract recovers the payload hidden in imageBytes. found is false
// when no watermark is present, which is an expected outcome, not an
// error; err is only set for input the image decoder rejects.
//
// The whole frame is decoded first (it catches payloads embedded
// without tiling, or surviving a crop that removed the tile structure),
// then every tile of the grid the embedder would have chosen. A region
// whose decode fails or yields an invalid frame simply contributes no
// candidate. The most frequent candidate wins, ties broken by
// first-seen order.
func (w *Watermarker) Extract(ctx context.Context, imageBytes []byte) (payload string, found bool, err error) {
	buf, _, err := imageio.Load(imageBytes)
	if err != nil {
		return "", false, err
	}

	bitLen := frame.Size(w.cfg.maxPayload) * 8
	if w.cfg.ecc != nil {
		bitLen = w.cfg.ecc.EncodedBits(bitLen)
	}

	regions := []tiling.Rect{tiling.Whole(buf.Width, buf.Height)}
	if grid, ok := tiling.SelectGrid(buf.Width, buf.Height, w.cfg.tileGrids, w.cfg.minTileDim); ok {
		regions = append(regions, tiling.Bounds(buf.Width, buf.Height, grid)...)
	}

	candidates := make([]string, len(regions))
	hit := make([]bool, len(regions))
	g, gctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[i], hit[i] = w.decodeRegion(buf, region, bitLen)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", false, err
	}

	payload, found = vote(candidates, hit)
	return payload, found, nil
}

// decodeRegion tries each policy attempt on one region and returns the
// first length-valid payload. Transform failures are swallowed: the
// redundancy scheme exists precisely to survive unreadable regions.
func (w *Watermarker) decodeRegion(buf *imageio.Buffer, region tiling.Rect, bitLen int) (string, bool) {
	frameSize := frame.Size(w.cfg.maxPayload)
	for _, attempt := range w.cfg.policy {
		raw, err := w.cfg.codec.Decode(buf, region, bitLen, attempt.Method, attempt.Strength)
		if err != nil {
			continue
		}
		if w.cfg.ecc != nil {
			raw = w.cfg.ecc.Decode(raw, frameSize*8)
		}
		payload, ok := frame.Payload(raw, w.cfg.maxPayload)
		if !ok {
			if length := frame.Length(raw); length != frame.Sentinel {
				// The all-ones sentinel is ordinary absence; anything
				// else out of range is worth a trace.
				w.cfg.log.Debug().
					Uint16("length", length).
					Str("method", string(attempt.Method)).
					Msg("invalid payload length extracted")
			}
			continue
		}
		if text := frame.Text(decompressPayload(payload)); text != "" {
			return text, true
		}
	}
	return "", false
}

// vote picks the most frequent candidate, first seen wins ties.
func vote(candidates []string, hit []bool) (string, bool) {
	counts := make(map[string]int, len(candidates))
	var order []string
	for i, text := range candidates {
		if !hit[i] {
			continue
		}
		if counts[text] == 0 {
			order = append(order, text)
		}
		counts[text]++
	}
	var best string
	var bestCount int
	for _, text := range order {
		if counts[text] > bestCount {
			best, bestCount = text, counts[text]
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}
