package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/tiling"
)

func gradientBuffer(w, h int) *imageio.Buffer {
	buf := &imageio.Buffer{Pix: make([]uint8, w*h*3), Width: w, Height: h}
	rnd := rand.New(rand.NewSource(99))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// gradient plus noise so blocks are not degenerate
			buf.Set(x, y,
				uint8((x*255/w+rnd.Intn(32))%256),
				uint8((y*255/h+rnd.Intn(32))%256),
				uint8(((x+y)*255/(w+h)+rnd.Intn(32))%256),
			)
		}
	}
	return buf
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	test := []struct {
		name     string
		method   Method
		strength *Strength
	}{
		{"svd_default", MethodDWTDCTSVD, nil},
		{"svd_override", MethodDWTDCTSVD, &Strength{D1: 40, D2: 20}},
		{"dct_default", MethodDWTDCT, nil},
		{"dct_strong", MethodDWTDCT, &Strength{D1: 220}},
	}
	data := []byte("secret!!")
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			buf := gradientBuffer(128, 128)
			region := tiling.Whole(buf.Width, buf.Height)
			tr := NewTransform()

			require.NoError(t, tr.Encode(buf, region, data, tt.method, tt.strength))

			raw, err := tr.Decode(buf, region, len(data)*8, tt.method, tt.strength)
			require.NoError(t, err)
			assert.Equal(t, data, raw)
		})
	}
}

func TestEncodeLeavesOtherRegionsUntouched(t *testing.T) {
	buf := gradientBuffer(128, 64)
	before := buf.Clone()
	region := tiling.Rect{Y0: 0, Y1: 64, X0: 0, X1: 64}
	tr := NewTransform()

	require.NoError(t, tr.Encode(buf, region, []byte{0xA5}, MethodDWTDCTSVD, nil))

	// pixels right of the region must be byte-identical
	for y := 0; y < 64; y++ {
		for x := 64; x < 128; x++ {
			r0, g0, b0 := before.At(x, y)
			r1, g1, b1 := buf.At(x, y)
			require.Equal(t, [3]uint8{r0, g0, b0}, [3]uint8{r1, g1, b1})
		}
	}
}

func TestDecodeDoesNotMutate(t *testing.T) {
	buf := gradientBuffer(64, 64)
	before := append([]uint8(nil), buf.Pix...)
	tr := NewTransform()

	_, err := tr.Decode(buf, tiling.Whole(64, 64), 16, MethodDWTDCTSVD, nil)
	require.NoError(t, err)
	assert.Equal(t, before, buf.Pix)
}

func TestStrengthRejection(t *testing.T) {
	buf := gradientBuffer(64, 64)
	region := tiling.Whole(64, 64)
	tr := NewTransform()
	data := []byte{0x01}

	test := []struct {
		name     string
		method   Method
		strength *Strength
		wantErr  error
	}{
		{"svd_missing_d2", MethodDWTDCTSVD, &Strength{D1: 40}, ErrBadStrength},
		{"dct_with_d2", MethodDWTDCT, &Strength{D1: 40, D2: 20}, ErrBadStrength},
		{"unknown_method", Method("rivaGan"), nil, ErrUnknownMethod},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			err := tr.Encode(buf, region, data, tt.method, tt.strength)
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = tr.Decode(buf, region, 8, tt.method, tt.strength)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegionTooSmall(t *testing.T) {
	buf := gradientBuffer(16, 16)
	tr := NewTransform()
	// 16x16 -> 8x8 wavelet plane -> 16 blocks, far fewer than 512 bits
	err := tr.Encode(buf, tiling.Whole(16, 16), make([]byte, 64), MethodDWTDCTSVD, nil)
	assert.ErrorIs(t, err, ErrRegionTooSmall)
}

func TestDecodeSurvivesLossyRequantization(t *testing.T) {
	buf := gradientBuffer(256, 256)
	region := tiling.Whole(256, 256)
	tr := NewTransform()
	data := []byte("hold up")

	require.NoError(t, tr.Encode(buf, region, data, MethodDWTDCTSVD, &Strength{D1: 40, D2: 20}))

	// simulate mild lossy damage: clear the low bit of every sample
	for i := range buf.Pix {
		buf.Pix[i] &^= 1
	}

	raw, err := tr.Decode(buf, region, len(data)*8, MethodDWTDCTSVD, &Strength{D1: 40, D2: 20})
	require.NoError(t, err)
	assert.Equal(t, data, raw)
}
