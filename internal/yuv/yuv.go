// Package yuv converts between 8-bit RGB samples and the float YUV
// representation the transform codec operates on.
//
// Coefficients follow the OpenCV BGR<->YUV definition so images
// watermarked by the original OpenCV-based pipeline stay decodable.
package yuv

const delta = 0.5

const (
	yr = 0.299
	yg = 0.587
	yb = 0.114
	uf = 0.492
	vf = 0.877
)

const (
	vr = 1.140
	ug = -0.395
	vg = -0.581
	ub = 2.032
)

// FromRGB converts one pixel to YUV. All components stay in the 0..255
// float range (U and V centered around delta).
func FromRGB(r, g, b uint8) (y, u, v float32) {
	rf, gf, bf := float32(r), float32(g), float32(b)
	y = yr*rf + yg*gf + yb*bf
	u = uf*(bf-y) + delta
	v = vf*(rf-y) + delta
	return
}

// ToRGB converts one pixel back, clamping to the 8-bit range.
func ToRGB(y, u, v float32) (r, g, b uint8) {
	ud := u - delta
	vd := v - delta
	return clamp8(y + vr*vd), clamp8(y + ug*ud + vg*vd), clamp8(y + ub*ud)
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
