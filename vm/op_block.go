package vm

import (
	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Multi-line block opcodes (4, 5, A)
// ---------------------------------------------------------------------------

// opFill handles the repeated fill.
//
//	4TXXXXXX YYYYYYYY
//	4NNNWWWW VVVVVVVV   (or NNNNWWWW VVVVVVVV for subtypes 4..E)
//
// The subtype nibble selects width (1/2/4 bytes), the wide-count
// continuation layout (bit 2) and offset-from-pointer addressing
// (bit 3). The continuation line carries the repeat count N, the
// address increment W and the value increment V. Each iteration writes
// the running value and then advances it with wraparound at 32 bits.
func (e *Engine) opFill(ln code.Line) error {
	sub := nibble(ln.Flag())
	if sub&3 == 3 {
		return e.errf("unknown fill subtype %X", sub)
	}
	width := int64(1) << (sub & 3)
	addr := e.offset(ln, sub&8 != 0)
	val := value(ln)

	cont, err := e.nextLine()
	if err != nil {
		return err
	}
	var count int64
	if sub&4 != 0 {
		count = int64(uintField(cont, 0, 4))
	} else {
		count = int64(uintField(cont, 1, 4))
	}
	incAddr := int64(uintField(cont, 4, 8))
	incVal := value(cont)

	for i := int64(0); i < count; i++ {
		if err := e.buf.writeUint(addr+incAddr*i, width, uint64(val), hexfield.Little); err != nil {
			return e.errf("%v", err)
		}
		val += incVal
	}
	return nil
}

// opCopy handles the two-line block copy.
//
//	5TXXXXXX ZZZZZZZZ   source offset and byte count
//	5TYYYYYY 00000000   destination offset
//
// Each line's T=8 flag independently applies the pointer. The source
// range is snapshotted before writing, so overlapping ranges copy the
// original bytes.
func (e *Engine) opCopy(ln code.Line) error {
	src := e.offset(ln, ln.Flag() == '8')
	length := int64(value(ln))

	dstLine, err := e.nextLine()
	if err != nil {
		return err
	}
	dst := e.offset(dstLine, dstLine.Flag() == '8')

	chunk, err := e.buf.slice(src, length)
	if err != nil {
		return e.errf("%v", err)
	}
	if err := e.buf.writeBytes(dst, chunk); err != nil {
		return e.errf("%v", err)
	}
	return nil
}

// opRawWrite handles the raw multi-word write.
//
//	ATXXXXXX YYYYYYYY   address and byte count
//	ZZZZZZZZ ZZZZZZZZ   payload words, as many lines as the count needs
//
// Payload words are packed most-significant-byte first, the same layout
// as search patterns, and spliced verbatim into the image.
func (e *Engine) opRawWrite(ln code.Line) error {
	addr := e.offset(ln, ln.Flag() == '8')
	size := int64(value(ln))

	payload, err := e.literalWords(size)
	if err != nil {
		return err
	}
	if err := e.buf.writeBytes(addr, payload[:size]); err != nil {
		return e.errf("%v", err)
	}
	return nil
}

// literalWords assembles size bytes of literal data from continuation
// lines, two 32-bit words per line, each packed most-significant-byte
// first. The result is padded to a multiple of 4 bytes.
func (e *Engine) literalWords(size int64) ([]byte, error) {
	padded := (size + 3) &^ 3
	out := make([]byte, padded)

	for i := int64(0); i < size; i += 8 {
		cont, err := e.nextLine()
		if err != nil {
			return nil, err
		}
		hexfield.Put(out[i:i+4], uintField(cont, 0, 8), hexfield.Big)
		if i+4 < size {
			hexfield.Put(out[i+4:i+8], uintField(cont, 9, 17), hexfield.Big)
		}
	}
	return out, nil
}
