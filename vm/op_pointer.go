package vm

import (
	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Pointer manipulation (opcodes 6 and 9)
// ---------------------------------------------------------------------------

// opMega handles the pointer/value-register mega code.
//
//	6TWX0Y0Z VVVVVVVV
//
// T selects the operand width (0/1/2 for 1/2/4 bytes; 8/9/A add the
// pointer to the resolved address), W the operator family:
//
//	W=0  read the value at V into the value register (X=1 first adds
//	     the register to V; Y=1 also commits V into the pointer)
//	W=1  combine the value register with V (X: 0 add, 1 sub, 2 mul;
//	     Z=1 then adds the pointer) and commit the result into the
//	     pointer
//	W=2  the same arithmetic directly on the pointer (Y=1 mirrors the
//	     result into the value register)
//	W=4  write the value register's low bytes (X=0 at the address V
//	     resolves to, X=1 at the pointer)
func (e *Engine) opMega(ln code.Line) error {
	t := nibble(ln.Flag())
	w, x, y, z := ln[2], ln[3], ln[5], ln[7]
	val := value(ln)

	var off int64
	if t == 8 || t == 9 || t == 0xA {
		off = e.pointer
	}

	switch w {
	case '0':
		if x == '1' {
			val += e.valueRegister
		}
		width, err := e.megaWidth(t)
		if err != nil {
			return err
		}
		if y == '1' {
			e.pointer = int64(val)
		}
		read, err := e.buf.readUint(int64(val)+off, width, hexfield.Little)
		if err != nil {
			return e.errf("%v", err)
		}
		e.valueRegister = uint32(read)

	case '1':
		r, err := e.megaArith(uint64(e.valueRegister), uint64(val), x)
		if err != nil {
			return err
		}
		if z == '1' {
			r += uint64(e.pointer)
		}
		e.valueRegister = uint32(r)
		e.pointer = int64(uint32(r))

	case '2':
		p, err := e.megaArith(uint64(e.pointer), uint64(val), x)
		if err != nil {
			return err
		}
		e.pointer = int64(p)
		if y == '1' {
			e.valueRegister = uint32(p)
		}

	case '4':
		width, err := e.megaWidth(t)
		if err != nil {
			return err
		}
		addr := int64(val) + off
		if x == '1' {
			addr = e.pointer
		}
		if err := e.buf.writeUint(addr, width, uint64(e.valueRegister), hexfield.Little); err != nil {
			return e.errf("%v", err)
		}

	default:
		return e.errf("unknown mega operator %q", w)
	}
	return nil
}

// megaWidth maps the mega width nibble to a byte count.
func (e *Engine) megaWidth(t int) (int64, error) {
	switch t & 7 {
	case 0:
		return 1, nil
	case 1:
		return 2, nil
	case 2:
		return 4, nil
	}
	return 0, e.errf("unknown mega width %X", t)
}

// megaArith applies the mega sub-operator.
func (e *Engine) megaArith(a, b uint64, x byte) (uint64, error) {
	switch x {
	case '0':
		return a + b, nil
	case '1':
		return a - b, nil
	case '2':
		return a * b, nil
	}
	return 0, e.errf("unknown mega sub-operator %q", x)
}

// opPointerSet handles the pointer manipulator.
//
//	9Y000000 XXXXXXXX
//
// Operators: 0/1 load the pointer from a big/little-endian 32-bit word
// at address X, 2/3 add/subtract X, 4 sets it to the image length minus
// X, 5 sets it to X, D sets the end pointer to X, E sets the end
// pointer to pointer+X.
func (e *Engine) opPointerSet(ln code.Line) error {
	x := int64(value(ln))

	switch ln.Flag() {
	case '0', '1':
		order := hexfield.Big
		if ln.Flag() == '1' {
			order = hexfield.Little
		}
		v, err := e.buf.readUint(x, 4, order)
		if err != nil {
			return e.errf("%v", err)
		}
		e.pointer = int64(v)
	case '2':
		e.pointer += x
	case '3':
		e.pointer -= x
	case '4':
		e.pointer = int64(len(e.buf)) - x
	case '5':
		e.pointer = x
	case 'D':
		e.endPointer = uint64(x)
	case 'E':
		e.endPointer = uint64(e.pointer + x)
	default:
		return e.errf("unknown pointer operator %q", ln.Flag())
	}
	return nil
}
