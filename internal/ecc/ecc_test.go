package ecc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c := New(1234567890)
	data := []byte("Hello, Hidden World!")

	encoded := c.Encode(data)
	require.Greater(t, len(encoded), len(data), "Golay code must expand the data")

	decoded := c.Decode(encoded, len(data)*8)
	assert.Equal(t, data, decoded)
}

func TestCorrectsBitErrors(t *testing.T) {
	c := New(42)
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}

	encoded := c.Encode(data)
	// Flip a few scattered bits; the shuffle spreads them across
	// codewords, each of which corrects up to three errors.
	encoded[0] ^= 0x01
	encoded[len(encoded)/2] ^= 0x10
	encoded[len(encoded)-1] ^= 0x80

	decoded := c.Decode(encoded, len(data)*8)
	assert.Equal(t, data, decoded)
}

func TestSeedMustMatch(t *testing.T) {
	data := []byte("payload bytes here")
	encoded := New(1).Encode(data)
	decoded := New(2).Decode(encoded, len(data)*8)
	assert.NotEqual(t, data, decoded)
}

func TestEncodedBits(t *testing.T) {
	c := New(0)
	// 514-byte frame: 4112 bits -> 343 Golay codewords of 24 bits.
	assert.Equal(t, 8232, c.EncodedBits(514*8))
	encoded := c.Encode(make([]byte, 514))
	assert.Len(t, encoded, 8232/8)
}
