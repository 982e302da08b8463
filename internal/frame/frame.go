// Package frame implements the fixed-size binary container for hidden
// payloads. A frame is a 2-byte big-endian length prefix followed by the
// payload and zero padding up to the configured maximum, so its total
// size is known to the extractor without prior knowledge of the payload.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// PrefixSize is the size of the length prefix in bytes.
	PrefixSize = 2

	// Sentinel is the length value an unwatermarked or heavily corrupted
	// region commonly decodes to (all bits set). It means "no watermark",
	// never a diagnostic-worthy failure.
	Sentinel uint16 = 0xFFFF
)

var ErrPayloadTooLarge = errors.New("payload too large")

// Size returns the total frame size for the given maximum payload.
func Size(maxPayload int) int {
	return PrefixSize + maxPayload
}

// Build produces a frame of exactly Size(maxPayload) bytes.
func Build(payload []byte, maxPayload int) ([]byte, error) {
	if len(payload) > maxPayload {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrPayloadTooLarge, len(payload), maxPayload)
	}
	buf := make([]byte, Size(maxPayload))
	binary.BigEndian.PutUint16(buf[:PrefixSize], uint16(len(payload)))
	copy(buf[PrefixSize:], payload)
	return buf, nil
}

// Length reads the raw length prefix without validating it.
func Length(raw []byte) uint16 {
	if len(raw) < PrefixSize {
		return Sentinel
	}
	return binary.BigEndian.Uint16(raw[:PrefixSize])
}

// Payload slices the payload bytes out of a raw frame. It reports
// not-found for short buffers and for lengths exceeding maxPayload,
// including the Sentinel. An in-range length from a corrupted region is
// indistinguishable from a genuine payload here; downstream validation
// is deliberately no stricter than this, for compatibility with
// previously embedded frames.
func Payload(raw []byte, maxPayload int) ([]byte, bool) {
	if len(raw) < PrefixSize {
		return nil, false
	}
	length := int(binary.BigEndian.Uint16(raw[:PrefixSize]))
	if length > maxPayload {
		return nil, false
	}
	end := PrefixSize + length
	if end > len(raw) {
		end = len(raw)
	}
	return raw[PrefixSize:end], true
}

// Text converts payload bytes to a string. Invalid UTF-8 sequences are
// replaced, never rejected, since a payload that survived a lossy
// transform with a few damaged bytes is still worth returning.
func Text(payload []byte) string {
	return strings.ToValidUTF8(string(payload), string(utf8.RuneError))
}

// Parse recovers the payload text from a raw frame. Empty payloads
// report not-found: a region that decodes to all zero bits must not
// surface as an empty-string watermark.
func Parse(raw []byte, maxPayload int) (string, bool) {
	payload, ok := Payload(raw, maxPayload)
	if !ok {
		return "", false
	}
	text := Text(payload)
	if text == "" {
		return "", false
	}
	return text, true
}
