package vm

import "bytes"

// ---------------------------------------------------------------------------
// Pattern matcher
// ---------------------------------------------------------------------------

// notFound is the sentinel offset for a failed search.
const notFound int64 = -1

// searchForward scans offsets start..limit-len(pattern) ascending and
// returns the offset of the count-th window equal to pattern, counting
// from 1. limit is clamped to the buffer length. An empty pattern never
// matches.
func searchForward(data []byte, limit, start int64, pattern []byte, count int) int64 {
	length := int64(len(pattern))
	if length == 0 || start < 0 {
		return notFound
	}
	if limit > int64(len(data)) {
		limit = int64(len(data))
	}

	k := 1
	for i := start; i+length <= limit; i++ {
		if bytes.Equal(data[i:i+length], pattern) {
			if k == count {
				return i
			}
			k++
		}
	}
	return notFound
}

// searchBackward scans offsets start..0 descending, considering only
// offsets where the whole pattern fits, with the same counting contract
// as searchForward.
func searchBackward(data []byte, start int64, pattern []byte, count int) int64 {
	length := int64(len(pattern))
	if length == 0 {
		return notFound
	}
	if max := int64(len(data)) - length; start > max {
		start = max
	}

	k := 1
	for i := start; i >= 0; i-- {
		if bytes.Equal(data[i:i+length], pattern) {
			if k == count {
				return i
			}
			k++
		}
	}
	return notFound
}
