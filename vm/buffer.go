package vm

import (
	"fmt"

	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Byte buffer: the mutable save image
// ---------------------------------------------------------------------------

// buffer is the in-memory save image. Every typed access is bounds
// checked; an access outside [0, len) for the bytes required fails
// rather than truncating or wrapping. Addresses arrive as int64 because
// pointer arithmetic happens in 64-bit signed space and is range
// checked only here.
type buffer []byte

// check verifies that [addr, addr+width) lies inside the buffer. The
// comparison is phrased as a subtraction from the length so that an
// address near the top of the int64 range cannot wrap the sum negative
// and slip past the check.
func (b buffer) check(addr, width int64) error {
	if addr < 0 || width < 0 || addr > int64(len(b))-width {
		return fmt.Errorf("address %#x out of range for %d bytes (image is %d bytes)", addr, width, len(b))
	}
	return nil
}

// readUint reads a width-byte unsigned value at addr in the given byte
// order.
func (b buffer) readUint(addr, width int64, order hexfield.ByteOrder) (uint64, error) {
	if err := b.check(addr, width); err != nil {
		return 0, err
	}
	return hexfield.Get(b[addr:addr+width], order), nil
}

// writeUint writes the low width bytes of v at addr in the given byte
// order. Values wider than the field wrap at the field's width.
func (b buffer) writeUint(addr, width int64, v uint64, order hexfield.ByteOrder) error {
	if err := b.check(addr, width); err != nil {
		return err
	}
	hexfield.Put(b[addr:addr+width], v, order)
	return nil
}

// slice returns a copy of [addr, addr+n). Callers get a snapshot, so a
// later overlapping write cannot corrupt the source of a block copy or
// the pattern of an address-based search.
func (b buffer) slice(addr, n int64) ([]byte, error) {
	if err := b.check(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b[addr:addr+n])
	return out, nil
}

// writeBytes splices p into the buffer at addr.
func (b buffer) writeBytes(addr int64, p []byte) error {
	if err := b.check(addr, int64(len(p))); err != nil {
		return err
	}
	copy(b[addr:], p)
	return nil
}
