// Package dwt implements a single-level 2-D Haar wavelet transform over
// row-major float32 planes.
package dwt

import "math"

// Coeffs holds the four quadrants of one decomposition level. Each
// quadrant is HalfW x HalfH in row-major order.
type Coeffs struct {
	CA, CH, CV, CD []float32
	HalfW, HalfH   int
}

// Forward decomposes a w x h plane. Odd dimensions are handled by
// folding the trailing row/column onto itself, matching the inverse.
func Forward(data []float32, w, h int) Coeffs {
	hw, hh := (w+1)/2, (h+1)/2
	c := Coeffs{
		CA:    make([]float32, hw*hh),
		CH:    make([]float32, hw*hh),
		CV:    make([]float32, hw*hh),
		CD:    make([]float32, hw*hh),
		HalfW: hw,
		HalfH: hh,
	}
	for y := 0; y < h; y += 2 {
		y2 := y + 1
		if y2 >= h {
			y2 = y
		}
		for x := 0; x < w; x += 2 {
			x2 := x + 1
			if x2 >= w {
				x2 = x
			}
			aLeft, dLeft := pair(data[y*w+x], data[y2*w+x])
			aRight, dRight := pair(data[y*w+x2], data[y2*w+x2])

			i := (y/2)*hw + x/2
			c.CA[i], c.CV[i] = pair(aLeft, aRight)
			c.CH[i], c.CD[i] = pair(dLeft, dRight)
		}
	}
	return c
}

// Inverse reconstructs the w x h plane from its quadrants.
func Inverse(c Coeffs, w, h int) []float32 {
	data := make([]float32, w*h)
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x += 2 {
			i := (y/2)*c.HalfW + x/2

			aLeft, aRight := unpair(c.CA[i], c.CV[i])
			dLeft, dRight := unpair(c.CH[i], c.CD[i])

			v00, v10 := unpair(aLeft, dLeft)
			v01, v11 := unpair(aRight, dRight)

			data[y*w+x] = v00
			if y+1 < h {
				data[(y+1)*w+x] = v10
			}
			if x+1 < w {
				data[y*w+x+1] = v01
			}
			if y+1 < h && x+1 < w {
				data[(y+1)*w+x+1] = v11
			}
		}
	}
	return data
}

func pair(v1, v2 float32) (a, d float32) {
	avg := (v1 + v2) / 2
	return avg * math.Sqrt2, (v1 - avg) * math.Sqrt2
}

func unpair(a, d float32) (v1, v2 float32) {
	avg := a / math.Sqrt2
	return avg + d/math.Sqrt2, avg - d/math.Sqrt2
}
