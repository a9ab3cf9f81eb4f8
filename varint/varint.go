// Package varint implements the o5m variable-length integer encoding: a
// byte-oriented encoding for signed and unsigned integers where each
// byte's high bit is a continuation flag and the low 7 bits are payload,
// least-significant group first.
//
// See: https://wiki.openstreetmap.org/wiki/O5m#Numbers
package varint

import (
	"io"

	"github.com/pkg/errors"
)

// maxBytes is the number of continuation bytes (high bit set)
// that fit 63 bits of payload; a 10th is an overflow error.
const maxBytes = 9

// EncodeUnsigned appends the canonical encoding of v to dst and returns the
// result.
func EncodeUnsigned(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			return dst
		}
	}
}

// EncodeSigned appends the canonical encoding of v to dst and returns the
// result. Negative numbers store -v-1 in the payload so that -1 encodes as
// a single byte (0x01), -2 as 0x03, and so on.
func EncodeSigned(dst []byte, v int64) []byte {
	var negative byte
	var payload uint64
	if v < 0 {
		negative = 1
		payload = uint64(-v - 1)
	} else {
		payload = uint64(v)
	}

	first := byte(negative) | byte((payload&0x3F)<<1)
	rest := payload >> 6

	if rest == 0 {
		return append(dst, first)
	}

	dst = append(dst, first|0x80)
	return EncodeUnsigned(dst, rest)
}

// DecodeUnsigned reads an unsigned varint from r.
func DecodeUnsigned(r io.ByteReader) (uint64, error) {
	var value uint64
	for n := 0; ; n++ {
		if n == maxBytes {
			return 0, errors.Errorf("Varint overflow, read %d bytes.", maxBytes)
		}

		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		value |= uint64(b&0x7F) << (7 * uint(n))
		if b&0x80 == 0 {
			return value, nil
		}
	}
}

// DecodeSigned reads a signed varint from r.
func DecodeSigned(r io.ByteReader) (int64, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	negative := first&0x01 != 0
	value := uint64(first&0x7E) >> 1

	if first&0x80 != 0 {
		rest, err := decodeUnsignedContinuation(r)
		if err != nil {
			return 0, err
		}
		value |= rest << 6
	}

	if negative {
		return -int64(value) - 1, nil
	}
	return int64(value), nil
}

// decodeUnsignedContinuation decodes the bytes following a signed varint's
// first byte; it counts toward the same 9-byte overflow budget, starting
// at 1 since the first byte has already been consumed.
func decodeUnsignedContinuation(r io.ByteReader) (uint64, error) {
	var value uint64
	for n := 0; ; n++ {
		if n == maxBytes-1 {
			return 0, errors.Errorf("Varint overflow, read %d bytes.", maxBytes)
		}

		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		value |= uint64(b&0x7F) << (7 * uint(n))
		if b&0x80 == 0 {
			return value, nil
		}
	}
}
