package stegmark

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame. No valid UTF-8 text begins with it
// (0xB5 is a continuation byte with no lead), so sniffing it is enough
// to tell compressed payloads from plain ones.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// compressPayload returns the zstd-compressed payload, or the original
// bytes when compression does not shrink them.
func compressPayload(payload []byte) []byte {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return payload
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return payload
	}
	if err := enc.Close(); err != nil {
		return payload
	}
	if buf.Len() >= len(payload) {
		return payload
	}
	return buf.Bytes()
}

// decompressPayload reverses compressPayload. Payloads without the zstd
// magic, and compressed payloads damaged beyond decoding, pass through
// unchanged.
func decompressPayload(payload []byte) []byte {
	if !bytes.HasPrefix(payload, zstdMagic) {
		return payload
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return payload
	}
	defer dec.Close()
	out, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return payload
	}
	return out
}
