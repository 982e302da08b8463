// Package dct implements a 2-D type-II discrete cosine transform over
// small coefficient blocks, with the separable basis precomputed per
// block shape.
package dct

import "math"

type DCT struct {
	w, h   int
	basisW []float64 // w x w row-major, basisW[i*w+j] = phi_i(j)
	basisH []float64 // h x h
	coefs  []float64 // scratch, w*h
}

func New(w, h int) *DCT {
	return &DCT{
		w:      w,
		h:      h,
		basisW: basis1D(w),
		basisH: basis1D(h),
		coefs:  make([]float64, w*h),
	}
}

func basis1D(n int) []float64 {
	nf := float64(n)
	b := make([]float64, n*n)
	for j := 0; j < n; j++ {
		b[j] = 1 / math.Sqrt(nf)
	}
	for i := 1; i < n; i++ {
		for j := 0; j < n; j++ {
			b[i*n+j] = math.Sqrt(2/nf) * math.Cos(float64(i)*math.Pi*(2*float64(j)+1)/(2*nf))
		}
	}
	return b
}

// Forward transforms a w*h row-major block into DCT coefficients. The
// returned slice is reused by the next Forward call on this instance.
func (d *DCT) Forward(block []float32) []float64 {
	for i := 0; i < d.h; i++ {
		for j := 0; j < d.w; j++ {
			var sum float64
			for y := 0; y < d.h; y++ {
				for x := 0; x < d.w; x++ {
					sum += d.basisH[i*d.h+y] * d.basisW[j*d.w+x] * float64(block[y*d.w+x])
				}
			}
			d.coefs[i*d.w+j] = sum
		}
	}
	return d.coefs
}

// Inverse writes the reconstruction of coefs back into block.
func (d *DCT) Inverse(coefs []float64, block []float32) {
	for y := 0; y < d.h; y++ {
		for x := 0; x < d.w; x++ {
			var sum float64
			for i := 0; i < d.h; i++ {
				for j := 0; j < d.w; j++ {
					sum += d.basisH[i*d.h+y] * d.basisW[j*d.w+x] * coefs[i*d.w+j]
				}
			}
			block[y*d.w+x] = float32(sum)
		}
	}
}
