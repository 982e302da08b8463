package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	test := []struct {
		name       string
		payload    []byte
		maxPayload int
		wantErr    bool
	}{
		{"simple", []byte("hello"), 512, false},
		{"empty", nil, 512, false},
		{"exact_fit", bytes.Repeat([]byte{'x'}, 16), 16, false},
		{"oversize", bytes.Repeat([]byte{'x'}, 17), 16, true},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			frm, err := Build(tt.payload, tt.maxPayload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPayloadTooLarge)
				return
			}
			require.NoError(t, err)
			assert.Len(t, frm, Size(tt.maxPayload))
			assert.Equal(t, uint16(len(tt.payload)), Length(frm))
			assert.Equal(t, tt.payload, frm[PrefixSize:PrefixSize+len(tt.payload)])
			// padding must be zero
			for _, b := range frm[PrefixSize+len(tt.payload):] {
				require.Zero(t, b)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	frm, err := Build([]byte("Hello, Hidden World!"), 512)
	require.NoError(t, err)

	text, ok := Parse(frm, 512)
	require.True(t, ok)
	assert.Equal(t, "Hello, Hidden World!", text)
}

func TestParseRejects(t *testing.T) {
	test := []struct {
		name string
		raw  []byte
	}{
		{"short_buffer", []byte{0x00}},
		{"length_exceeds_max", []byte{0x02, 0x01, 'a', 'b'}}, // 513 > 512
		{"sentinel", append([]byte{0xFF, 0xFF}, bytes.Repeat([]byte{0xFF}, 512)...)},
		{"empty_payload", make([]byte, 514)},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Parse(tt.raw, 512)
			assert.False(t, ok)
		})
	}
}

func TestParseTruncatedFrame(t *testing.T) {
	// A frame cut short still yields whatever payload bytes survive.
	frm, err := Build([]byte("abcdef"), 512)
	require.NoError(t, err)

	text, ok := Parse(frm[:PrefixSize+3], 512)
	require.True(t, ok)
	assert.Equal(t, "abc", text)
}

func TestTextReplacesInvalidUTF8(t *testing.T) {
	text := Text([]byte{'o', 'k', 0xC3, 0x28, '!'})
	assert.Equal(t, "ok�(!", text)
}
