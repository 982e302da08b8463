// Package kmeans provides 1-D two-cluster classification used to turn
// per-bit extraction averages into booleans.
package kmeans

import "math"

const (
	maxIterations = 300
	tolerance     = 1e-6
)

// Cluster classifies values into a high and a low cluster, returning
// true for members of the high one. Centers start at the min and max of
// the input and iterate until the midpoint stabilizes.
//
// When every value is identical the whole input lands in the high
// cluster. The extraction pipeline relies on this: a blanked region
// averages to a constant, classifies to all-ones and therefore decodes
// to the no-watermark sentinel instead of a fake payload.
func Cluster(values []float64) []bool {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	centers := [2]float64{lo, hi}

	var classes []bool
	for range maxIterations {
		classes = make([]bool, len(values))
		threshold := (centers[0] + centers[1]) / 2
		var loSum, hiSum float64
		var loN, hiN int
		for i, v := range values {
			if v >= threshold {
				classes[i] = true
				hiSum += v
				hiN++
			} else {
				loSum += v
				loN++
			}
		}
		if loN == 0 || hiN == 0 {
			// One cluster swallowed everything; the midpoint cannot move.
			break
		}
		centers = [2]float64{loSum / float64(loN), hiSum / float64(hiN)}
		if math.Abs((centers[0]+centers[1])/2-threshold) < tolerance {
			break
		}
	}
	return classes
}
