// Package hexfield decodes the fixed-width hexadecimal fields of quick
// code instruction lines and converts between integers and their byte
// representations in a selected byte order.
//
// Quick code fields are positional: a six-character address field and an
// eight-character value field are different things even when they parse
// to the same integer, so callers pass exact substrings rather than
// pre-shifted words.
package hexfield

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed indicates a field that is not valid hexadecimal or does
// not fit the requested width.
var ErrMalformed = errors.New("malformed hex field")

// ByteOrder selects the byte order for integer <-> byte conversions.
type ByteOrder int

const (
	Little ByteOrder = iota // least significant byte first
	Big                     // most significant byte first
)

// Uint parses a hexadecimal substring as an unsigned integer. The field
// may be 1 to 16 characters wide.
func Uint(s string) (uint64, error) {
	if len(s) == 0 || len(s) > 16 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return v, nil
}

// Put encodes the low len(dst) bytes of v into dst in the given byte
// order. len(dst) must be between 1 and 8.
func Put(dst []byte, v uint64, order ByteOrder) {
	n := len(dst)
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("hexfield.Put: bad width %d", n))
	}
	for i := 0; i < n; i++ {
		b := byte(v >> (8 * i))
		if order == Little {
			dst[i] = b
		} else {
			dst[n-1-i] = b
		}
	}
}

// Get decodes len(src) bytes as an unsigned integer in the given byte
// order. len(src) must be between 1 and 8.
func Get(src []byte, order ByteOrder) uint64 {
	n := len(src)
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("hexfield.Get: bad width %d", n))
	}
	var v uint64
	for i := 0; i < n; i++ {
		var b byte
		if order == Little {
			b = src[i]
		} else {
			b = src[n-1-i]
		}
		v |= uint64(b) << (8 * i)
	}
	return v
}

// Bytes returns the low width bytes of v in the given byte order.
func Bytes(v uint64, width int, order ByteOrder) []byte {
	out := make([]byte, width)
	Put(out, v, order)
	return out
}
