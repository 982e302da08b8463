// Package codec provides the frequency-domain transform primitive that
// hides payload bits inside pixel data, plus the method/strength types
// the orchestrators drive it with.
package codec

import (
	"errors"

	"github.com/stegmark/stegmark/internal/imageio"
	"github.com/stegmark/stegmark/internal/tiling"
)

// Method names a transform variant.
type Method string

const (
	// MethodDWTDCTSVD quantizes the two leading singular values of each
	// DCT'd wavelet block. More robust, needs both strength steps.
	MethodDWTDCTSVD Method = "dwtDctSvd"
	// MethodDWTDCT quantizes the DC coefficient of each block directly.
	// Cheaper, takes a single strength step.
	MethodDWTDCT Method = "dwtDct"
)

// Strength holds the quantization step sizes. Larger steps survive more
// distortion at the cost of visible noise. D2 is only meaningful for
// methods that quantize a second coefficient.
type Strength struct {
	D1, D2 int
}

// Attempt is one entry of a method policy: a method plus an optional
// strength override. A nil Strength means the method's defaults.
type Attempt struct {
	Method   Method
	Strength *Strength
}

var (
	ErrUnknownMethod  = errors.New("unknown transform method")
	ErrBadStrength    = errors.New("strength parameters not supported by method")
	ErrRegionTooSmall = errors.New("region too small for payload bits")
)

// Codec is the transform primitive the embed/extract orchestrators call
// per region. Encode modifies the region of buf in place; Decode never
// mutates buf and returns the recovered bytes, which carry no validity
// guarantee of their own (the caller validates them as a frame).
type Codec interface {
	Encode(buf *imageio.Buffer, region tiling.Rect, data []byte, method Method, strength *Strength) error
	Decode(buf *imageio.Buffer, region tiling.Rect, bitLen int, method Method, strength *Strength) ([]byte, error)
}
