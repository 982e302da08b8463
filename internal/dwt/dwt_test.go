package dwt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardInverseIdentity(t *testing.T) {
	test := []struct {
		name string
		w, h int
	}{
		{"even", 16, 12},
		{"odd_width", 15, 12},
		{"odd_height", 16, 11},
		{"odd_both", 9, 7},
		{"minimal", 2, 2},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			rnd := rand.New(rand.NewSource(42))
			data := make([]float32, tt.w*tt.h)
			for i := range data {
				data[i] = rnd.Float32() * 255
			}

			c := Forward(data, tt.w, tt.h)
			require.Equal(t, (tt.w+1)/2, c.HalfW)
			require.Equal(t, (tt.h+1)/2, c.HalfH)

			back := Inverse(c, tt.w, tt.h)
			require.Len(t, back, len(data))
			for i := range data {
				assert.InDelta(t, data[i], back[i], 1e-3)
			}
		})
	}
}

func TestForwardConstantPlane(t *testing.T) {
	// A constant plane has all its energy in cA; detail bands are zero.
	data := make([]float32, 8*8)
	for i := range data {
		data[i] = 100
	}
	c := Forward(data, 8, 8)
	for i := range c.CA {
		assert.InDelta(t, 200, c.CA[i], 1e-3) // gain of 2 per level
		assert.InDelta(t, 0, c.CH[i], 1e-3)
		assert.InDelta(t, 0, c.CV[i], 1e-3)
		assert.InDelta(t, 0, c.CD[i], 1e-3)
	}
}

func TestInversePicksUpModifiedApproximation(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	data := make([]float32, 16*16)
	for i := range data {
		data[i] = rnd.Float32() * 255
	}
	c := Forward(data, 16, 16)
	for i := range c.CA {
		c.CA[i] += 40
	}
	back := Inverse(c, 16, 16)

	// +40 on cA spreads as +20 on every pixel (inverse halves the gain).
	for i := range data {
		assert.InDelta(t, data[i]+20, back[i], 1e-3)
	}
}
