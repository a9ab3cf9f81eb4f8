package varint

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/hauke96/vadeenosm/internal/assert"
)

func TestEncodeUnsigned(t *testing.T) {
	assert.Equal(t, []byte{0x7F}, EncodeUnsigned(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, EncodeUnsigned(nil, 128))
	assert.Equal(t, []byte{0x80, 0x80, 0x01}, EncodeUnsigned(nil, 16384))
}

func TestDecodeUnsigned(t *testing.T) {
	cases := map[uint64][]byte{
		127:   {0x7F},
		128:   {0x80, 0x01},
		16384: {0x80, 0x80, 0x01},
	}

	for want, bytesIn := range cases {
		got, err := DecodeUnsigned(bufio.NewReader(bytes.NewReader(bytesIn)))
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodeSigned(t *testing.T) {
	assert.Equal(t, []byte{0x00}, EncodeSigned(nil, 0))
	assert.Equal(t, []byte{0x01}, EncodeSigned(nil, -1))
	assert.Equal(t, []byte{0x08}, EncodeSigned(nil, 4))
	assert.Equal(t, []byte{0x81, 0x01}, EncodeSigned(nil, -65))
	assert.Equal(t, []byte{0x94, 0xFE, 0xD2, 0x05}, EncodeSigned(nil, 5922698))
}

func TestDecodeSigned(t *testing.T) {
	cases := map[int64][]byte{
		0:       {0x00},
		-1:      {0x01},
		4:       {0x08},
		-65:     {0x81, 0x01},
		5922698: {0x94, 0xFE, 0xD2, 0x05},
	}

	for want, bytesIn := range cases {
		got, err := DecodeSigned(bufio.NewReader(bytes.NewReader(bytesIn)))
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeUnsigned_overflow(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 10)
	_, err := DecodeUnsigned(bufio.NewReader(bytes.NewReader(data)))
	assert.Error(t, "Varint overflow, read 9 bytes.", err)
}

func TestDecodeSigned_overflow(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 10)
	_, err := DecodeSigned(bufio.NewReader(bytes.NewReader(data)))
	assert.Error(t, "Varint overflow, read 9 bytes.", err)
}

func TestDecodeUnsigned_shortRead(t *testing.T) {
	_, err := DecodeUnsigned(bufio.NewReader(bytes.NewReader([]byte{0x80})))
	assert.NotNil(t, err)
}

func TestRoundTrip_unsigned(t *testing.T) {
	values := []uint64{0, 1, 126, 127, 128, 16383, 16384, 1 << 40, 1<<63 - 1}
	for _, v := range values {
		encoded := EncodeUnsigned(nil, v)
		got, err := DecodeUnsigned(bufio.NewReader(bytes.NewReader(encoded)))
		assert.Nil(t, err)
		assert.Equal(t, v, got)
	}
}

func TestRoundTrip_signed(t *testing.T) {
	values := []int64{0, -1, 1, -2, 4, -65, 65, 5922698, -5922698, 1 << 40, -(1 << 40)}
	for _, v := range values {
		encoded := EncodeSigned(nil, v)
		got, err := DecodeSigned(bufio.NewReader(bytes.NewReader(encoded)))
		assert.Nil(t, err)
		assert.Equal(t, v, got)
	}
}
