package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClusterBimodal(t *testing.T) {
	values := []float64{0.1, 0.9, 0.15, 0.85, 0.05, 0.95, 0.2, 0.8}
	want := []bool{false, true, false, true, false, true, false, true}
	assert.Equal(t, want, Cluster(values))
}

func TestClusterShiftedBaseline(t *testing.T) {
	// A global offset must not bias the cut point.
	values := []float64{0.45, 0.72, 0.44, 0.71, 0.46, 0.73}
	want := []bool{false, true, false, true, false, true}
	assert.Equal(t, want, Cluster(values))
}

func TestClusterAllEqual(t *testing.T) {
	// Identical inputs land in the high cluster. The extraction pipeline
	// depends on this: a blanked region averages to a constant, reads as
	// all-ones and therefore decodes to the no-watermark sentinel.
	got := Cluster([]float64{0.5, 0.5, 0.5, 0.5})
	assert.Equal(t, []bool{true, true, true, true}, got)
}

func TestClusterEmpty(t *testing.T) {
	assert.Nil(t, Cluster(nil))
}

func TestClusterSingle(t *testing.T) {
	assert.Equal(t, []bool{true}, Cluster([]float64{0.3}))
}
