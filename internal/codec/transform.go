package codec

import (
	"fmt"
	"math"

	bitstream "github.com/yyyoichi/bitstream-go"

	"github.com/stegmark/stegmark/internal/dct"
	"github.com/stegmark/stegmark/internal/dwt"
	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/kmeans"
	"github.com/stegmark/stegmark/internal/svd"
	"github.com/stegmark/stegmark/internal/tiling"
)

// Wavelet coefficients are grouped into blockDim x blockDim blocks, one
// payload bit per block, i.e. 4x4 pixels carry one bit per channel.
const blockDim = 2

// Transform is the DWT+DCT(+SVD) implementation of Codec. It holds no
// state; concurrent calls on distinct regions are safe.
type Transform struct{}

var _ Codec = Transform{}

func NewTransform() Transform { return Transform{} }

// resolve maps a method and optional strength override to concrete
// quantization steps, rejecting parameter shapes a method cannot take.
func resolve(method Method, strength *Strength) (d1, d2 int, err error) {
	switch method {
	case MethodDWTDCTSVD:
		d1, d2 = 36, 20
		if strength != nil {
			if strength.D1 < 2 || strength.D2 < 2 {
				return 0, 0, fmt.Errorf("%w: %s requires two steps, got %+v", ErrBadStrength, method, *strength)
			}
			d1, d2 = strength.D1, strength.D2
		}
	case MethodDWTDCT:
		d1 = 36
		if strength != nil {
			if strength.D1 < 2 || strength.D2 != 0 {
				return 0, 0, fmt.Errorf("%w: %s takes a single step, got %+v", ErrBadStrength, method, *strength)
			}
			d1 = strength.D1
		}
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return d1, d2, nil
}

func (Transform) Encode(buf *imageio.Buffer, region tiling.Rect, data []byte, method Method, strength *Strength) error {
	d1, d2, err := resolve(method, strength)
	if err != nil {
		return err
	}
	geo := newGeometry(region)
	bitLen := len(data) * 8
	if geo.totalBlocks < bitLen {
		return fmt.Errorf("%w: %d blocks for %d bits", ErrRegionTooSmall, geo.totalBlocks, bitLen)
	}
	bits := newBitSource(data)

	cosine := dct.New(blockDim, blockDim)
	block := make([]float32, blockDim*blockDim)
	planes := regionPlanes(buf, region)
	for _, plane := range planes {
		c := dwt.Forward(plane, geo.w, geo.h)
		for at := 0; at < geo.totalBlocks; at++ {
			geo.gather(c.CA, at, block)
			coefs := cosine.Forward(block)
			bit := bits.at(at % bitLen)
			switch method {
			case MethodDWTDCTSVD:
				f, err := svd.Decompose(coefs, blockDim, blockDim)
				if err != nil {
					return err
				}
				s := f.Values()
				s[0] = quantize(s[0], d1, bit)
				s[1] = quantize(s[1], d2, bit)
				f.Reconstruct(coefs)
			case MethodDWTDCT:
				coefs[0] = quantize(coefs[0], d1, bit)
			}
			cosine.Inverse(coefs, block)
			geo.scatter(c.CA, at, block)
		}
		copy(plane, dwt.Inverse(c, geo.w, geo.h))
	}
	writeRegion(buf, region, planes)
	return nil
}

func (Transform) Decode(buf *imageio.Buffer, region tiling.Rect, bitLen int, method Method, strength *Strength) ([]byte, error) {
	d1, d2, err := resolve(method, strength)
	if err != nil {
		return nil, err
	}
	geo := newGeometry(region)
	if geo.totalBlocks < bitLen {
		return nil, fmt.Errorf("%w: %d blocks for %d bits", ErrRegionTooSmall, geo.totalBlocks, bitLen)
	}

	sums := make([]float64, bitLen)
	counts := make([]int, bitLen)
	cosine := dct.New(blockDim, blockDim)
	block := make([]float32, blockDim*blockDim)
	for _, plane := range regionPlanes(buf, region) {
		c := dwt.Forward(plane, geo.w, geo.h)
		for at := 0; at < geo.totalBlocks; at++ {
			geo.gather(c.CA, at, block)
			coefs := cosine.Forward(block)
			var v float64
			switch method {
			case MethodDWTDCTSVD:
				f, err := svd.Decompose(coefs, blockDim, blockDim)
				if err != nil {
					// One unreadable block must not sink the region.
					continue
				}
				s := f.Values()
				v = readBit(s[0], d1)
				if d2 > 0 {
					// The primary singular value is the steadier carrier;
					// weight it 3:1 over the secondary.
					v = (3*v + readBit(s[1], d2)) / 4
				}
			case MethodDWTDCT:
				v = readBit(coefs[0], d1)
			}
			sums[at%bitLen] += v
			counts[at%bitLen]++
		}
	}

	averages := make([]float64, bitLen)
	for i := range averages {
		if counts[i] > 0 {
			averages[i] = sums[i] / float64(counts[i])
		}
	}
	return packBits(kmeans.Cluster(averages)), nil
}

// quantize snaps v onto the lattice step*d with an offset of 1/4 (bit
// 0) or 3/4 (bit 1) of the step, giving equal margins either way.
func quantize(v float64, d int, bit bool) float64 {
	fd := float64(d)
	offset := 0.25
	if bit {
		offset = 0.75
	}
	return (math.Floor(v/fd) + offset) * fd
}

// readBit recovers the quantizer offset as 0 or 1.
func readBit(v float64, d int) float64 {
	step := v / float64(d)
	if step-math.Floor(step) > 0.5 {
		return 1
	}
	return 0
}

// geometry precomputes the wavelet-domain block layout of one region.
type geometry struct {
	w, h         int
	waveW, waveH int
	blocksPerRow int
	totalBlocks  int
}

func newGeometry(region tiling.Rect) geometry {
	g := geometry{w: region.Width(), h: region.Height()}
	g.waveW, g.waveH = (g.w+1)/2, (g.h+1)/2
	g.blocksPerRow = g.waveW / blockDim
	g.totalBlocks = g.blocksPerRow * (g.waveH / blockDim)
	return g
}

func (g geometry) gather(ca []float32, at int, block []float32) {
	baseY := (at / g.blocksPerRow) * blockDim
	baseX := (at % g.blocksPerRow) * blockDim
	for dy := 0; dy < blockDim; dy++ {
		for dx := 0; dx < blockDim; dx++ {
			block[dy*blockDim+dx] = ca[(baseY+dy)*g.waveW+baseX+dx]
		}
	}
}

func (g geometry) scatter(ca []float32, at int, block []float32) {
	baseY := (at / g.blocksPerRow) * blockDim
	baseX := (at % g.blocksPerRow) * blockDim
	for dy := 0; dy < blockDim; dy++ {
		for dx := 0; dx < blockDim; dx++ {
			ca[(baseY+dy)*g.waveW+baseX+dx] = block[dy*blockDim+dx]
		}
	}
}

// bitSource exposes MSB-first bit access over payload bytes.
type bitSource struct {
	reader *bitstream.BitReader[uint64]
}

func newBitSource(data []byte) bitSource {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range data {
		w.Write8(0, 8, b)
	}
	return bitSource{reader: bitstream.NewBitReader(w.Data(), 0, 0)}
}

func (s bitSource) at(i int) bool {
	bit, _ := s.reader.ReadBitAt(i)
	return bit
}

func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
