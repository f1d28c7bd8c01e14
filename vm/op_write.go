package vm

import (
	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Fixed, adjusting and clamped writes (opcodes 0/1/2, 3, 7)
// ---------------------------------------------------------------------------

// opWrite handles the fixed write family.
//
//	0TXXXXXX 000000YY   8-bit write
//	1TXXXXXX 0000YYYY   16-bit write
//	2TXXXXXX YYYYYYYY   32-bit write
//
// T=8 adds the pointer to the offset. The low 1/2/4 bytes of the value
// are written little-endian at the resolved address.
func (e *Engine) opWrite(ln code.Line) error {
	width := int64(1) << (ln.Opcode() - '0')
	addr := e.offset(ln, ln.Flag() == '8')

	if err := e.buf.writeUint(addr, width, uint64(value(ln)), hexfield.Little); err != nil {
		return e.errf("%v", err)
	}
	return nil
}

// opAdjust handles increase/decrease writes.
//
//	3BYYYYYY XXXXXXXX
//
// The subtype nibble B selects width (low two bits: 1/2/4/8 bytes),
// add vs subtract (bit 2), and offset-from-pointer addressing (bit 3).
// The current value is adjusted by the delta with wraparound at the
// field's width and written back.
func (e *Engine) opAdjust(ln code.Line) error {
	sub := nibble(ln.Flag())
	width := int64(1) << (sub & 3)
	addr := e.offset(ln, sub&8 != 0)
	delta := uint64(value(ln))

	cur, err := e.buf.readUint(addr, width, hexfield.Little)
	if err != nil {
		return e.errf("%v", err)
	}
	if sub&4 == 0 {
		cur += delta
	} else {
		cur -= delta
	}
	// writeUint keeps only the low width bytes, which is the wraparound.
	if err := e.buf.writeUint(addr, width, cur, hexfield.Little); err != nil {
		return e.errf("%v", err)
	}
	return nil
}

// opClamp handles the no-less-than / no-more-than write.
//
//	7BYYYYYY XXXXXXXX
//
// Subtypes 0/1/2 write the literal only if it exceeds the current
// 1/2/4-byte value ("no less than"); 4/5/6 only if it is below it
// ("no more than"); 8..E are the offset-from-pointer variants. The
// subtype nibbles 3, 7, B and F are unassigned.
func (e *Engine) opClamp(ln code.Line) error {
	sub := nibble(ln.Flag())
	if sub&3 == 3 {
		return e.errf("unknown clamp subtype %X", sub)
	}
	width := int64(1) << (sub & 3)
	noLessThan := sub&4 == 0
	addr := e.offset(ln, sub&8 != 0)
	val := uint64(value(ln)) & (1<<(8*width) - 1)

	cur, err := e.buf.readUint(addr, width, hexfield.Little)
	if err != nil {
		return e.errf("%v", err)
	}
	if (noLessThan && val > cur) || (!noLessThan && val < cur) {
		if err := e.buf.writeUint(addr, width, val, hexfield.Little); err != nil {
			return e.errf("%v", err)
		}
	}
	return nil
}
