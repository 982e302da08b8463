package codec

import (
	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/tiling"
	"github.com/stegmark/stegmark/internal/yuv"
)

// regionPlanes copies a region out of the buffer as Y, U, V float
// planes in row-major order.
func regionPlanes(buf *imageio.Buffer, region tiling.Rect) [3][]float32 {
	w, h := region.Width(), region.Height()
	var planes [3][]float32
	for i := range planes {
		planes[i] = make([]float32, w*h)
	}
	idx := 0
	for y := region.Y0; y < region.Y1; y++ {
		for x := region.X0; x < region.X1; x++ {
			r, g, b := buf.At(x, y)
			planes[0][idx], planes[1][idx], planes[2][idx] = yuv.FromRGB(r, g, b)
			idx++
		}
	}
	return planes
}

// writeRegion converts the planes back to RGB and stores them into the
// buffer region.
func writeRegion(buf *imageio.Buffer, region tiling.Rect, planes [3][]float32) {
	idx := 0
	for y := region.Y0; y < region.Y1; y++ {
		for x := region.X0; x < region.X1; x++ {
			r, g, b := yuv.ToRGB(planes[0][idx], planes[1][idx], planes[2][idx])
			buf.Set(x, y, r, g, b)
			idx++
		}
	}
}
