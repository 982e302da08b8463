// Package ecc applies an extended Golay code plus a seeded bit shuffle
// to frame bytes. The shuffle spreads each codeword across the image so
// a damaged region burns through many codewords a little instead of a
// few codewords completely, which is what the Golay code can repair.
package ecc

import (
	"math/rand"

	bitstream "github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

type Coder struct {
	seed int64
}

func New(seed int64) *Coder {
	return &Coder{seed: seed}
}

// EncodedBits returns the number of bits Encode produces for rawBits
// input bits.
func (c *Coder) EncodedBits(rawBits int) int {
	return golay.EncodedBits(rawBits)
}

// Encode Golay-encodes data and shuffles the resulting bits with the
// coder's seed. The result is zero-padded to a whole number of bytes.
func (c *Coder) Encode(data []byte) []byte {
	words, bits := bytesToWords(data)

	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(words, bits)
	encodedBits := enc.Bits()

	perm := c.permutation(encodedBits)
	r := bitstream.NewBitReader(encoded, 0, 0)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := 0; i < encodedBits; i++ {
		bit, _ := r.ReadBitAt(perm[i])
		w.WriteBitAt(i, bit)
	}
	return wordsToBytes(w.Data(), encodedBits)
}

// Decode reverses the shuffle and Golay-decodes data back to rawBits/8
// bytes, correcting up to three bit errors per codeword.
func (c *Coder) Decode(data []byte, rawBits int) []byte {
	encodedBits := golay.EncodedBits(rawBits)
	words, _ := bytesToWords(data)
	r := bitstream.NewBitReader(words, 0, 0)

	perm := c.permutation(encodedBits)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := 0; i < encodedBits; i++ {
		bit, _ := r.ReadBitAt(i)
		w.WriteBitAt(perm[i], bit)
	}

	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), encodedBits)
	_ = dec.Decode(&decoded)
	return wordsToBytes(decoded, rawBits)
}

func (c *Coder) permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rand.New(rand.NewSource(c.seed)).Shuffle(n, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}

func bytesToWords(data []byte) ([]uint64, int) {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range data {
		w.Write8(0, 8, b)
	}
	return w.Data(), len(data) * 8
}

func wordsToBytes(words []uint64, bits int) []byte {
	r := bitstream.NewBitReader(words, 0, 0)
	out := make([]byte, (bits+7)/8)
	for i := 0; i < bits; i++ {
		bit, _ := r.ReadBitAt(i)
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
