// Package tiling plans the redundant regions an image is partitioned
// into. Each tile carries a full, independent copy of the payload.
package tiling

// Grid is a rows x cols partition of an image.
type Grid struct {
	Rows, Cols int
}

// Rect is one tile region in pixel coordinates, half-open on Y1/X1.
type Rect struct {
	Y0, Y1, X0, X1 int
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Whole returns the single region covering the full image.
func Whole(width, height int) Rect {
	return Rect{Y0: 0, Y1: height, X0: 0, X1: width}
}

// SelectGrid returns the first candidate whose every tile meets the
// minimum dimension, in the caller-supplied priority order. The second
// return is false when no candidate fits, in which case the caller
// embeds into the whole frame.
func SelectGrid(width, height int, candidates []Grid, minTileDim int) (Grid, bool) {
	for _, g := range candidates {
		if height >= g.Rows*minTileDim && width >= g.Cols*minTileDim {
			return g, true
		}
	}
	return Grid{}, false
}

// Bounds partitions the image into rows*cols rectangles in row-major
// order. Tiles use integer division; the last row and column absorb the
// remainder, so the rectangles cover the image exactly with no gaps and
// no overlap.
func Bounds(width, height int, g Grid) []Rect {
	tileH := height / g.Rows
	tileW := width / g.Cols
	rects := make([]Rect, 0, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		y0 := r * tileH
		y1 := y0 + tileH
		if r == g.Rows-1 {
			y1 = height
		}
		for c := 0; c < g.Cols; c++ {
			x0 := c * tileW
			x1 := x0 + tileW
			if c == g.Cols-1 {
				x1 = width
			}
			rects = append(rects, Rect{Y0: y0, Y1: y1, X0: x0, X1: x1})
		}
	}
	return rects
}
