// Package svd wraps gonum's singular value decomposition for the small
// coefficient blocks the watermark codec quantizes.
package svd

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var ErrFactorize = errors.New("svd factorization failed")

// Factor is the decomposition A = U * diag(s) * V^T of one block.
type Factor struct {
	svd        mat.SVD
	s          []float64
	rows, cols int
}

// Decompose factorizes a rows x cols row-major block.
func Decompose(block []float64, rows, cols int) (*Factor, error) {
	f := &Factor{rows: rows, cols: cols}
	a := mat.NewDense(rows, cols, block)
	if ok := f.svd.Factorize(a, mat.SVDFull); !ok {
		return nil, ErrFactorize
	}
	f.s = f.svd.Values(nil)
	return f, nil
}

// Values returns the singular values in descending order. Mutations are
// picked up by Reconstruct.
func (f *Factor) Values() []float64 {
	return f.s
}

// Reconstruct writes U * diag(s) * V^T back into block using the
// (possibly modified) singular values.
func (f *Factor) Reconstruct(block []float64) {
	sigma := mat.NewDense(f.rows, f.cols, nil)
	for i := 0; i < min(f.rows, f.cols) && i < len(f.s); i++ {
		sigma.Set(i, i, f.s[i])
	}
	var u, v, res mat.Dense
	f.svd.UTo(&u)
	f.svd.VTo(&v)
	res.Product(&u, sigma, v.T())
	copy(block, res.RawMatrix().Data)
}
