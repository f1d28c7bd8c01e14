package vm

import (
	"testing"
)

func TestSearchForwardFirstOccurrence(t *testing.T) {
	data := []byte{0, 0, 0xDE, 0xAD, 0, 0xDE, 0xAD, 0}
	if got := searchForward(data, int64(len(data)), 0, []byte{0xDE, 0xAD}, 1); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestSearchForwardNthOccurrence(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0, 0xDE, 0xAD, 0, 0xDE, 0xAD}
	if got := searchForward(data, int64(len(data)), 0, []byte{0xDE, 0xAD}, 2); got != 3 {
		t.Errorf("occurrence 2: got %d, want 3", got)
	}
	if got := searchForward(data, int64(len(data)), 0, []byte{0xDE, 0xAD}, 3); got != 6 {
		t.Errorf("occurrence 3: got %d, want 6", got)
	}
	if got := searchForward(data, int64(len(data)), 0, []byte{0xDE, 0xAD}, 4); got != notFound {
		t.Errorf("occurrence 4: got %d, want notFound", got)
	}
}

func TestSearchForwardFromStart(t *testing.T) {
	data := []byte{0xAA, 0, 0xAA, 0, 0xAA}
	if got := searchForward(data, int64(len(data)), 1, []byte{0xAA}, 1); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestSearchForwardLimit(t *testing.T) {
	data := []byte{0, 0, 0, 0xAA}
	// The window must fit inside the limit.
	if got := searchForward(data, 3, 0, []byte{0xAA}, 1); got != notFound {
		t.Errorf("got %d, want notFound", got)
	}
	if got := searchForward(data, 4, 0, []byte{0xAA}, 1); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	// A limit beyond the data is clamped, not scanned.
	if got := searchForward(data, 100, 0, []byte{0xAA}, 1); got != 3 {
		t.Errorf("clamped limit: got %d, want 3", got)
	}
}

func TestSearchForwardDegenerate(t *testing.T) {
	if got := searchForward([]byte{1, 2, 3}, 3, 0, nil, 1); got != notFound {
		t.Errorf("empty pattern: got %d, want notFound", got)
	}
	if got := searchForward(nil, 0, 0, []byte{1}, 1); got != notFound {
		t.Errorf("empty buffer: got %d, want notFound", got)
	}
	if got := searchForward([]byte{1}, 1, -1, []byte{1}, 1); got != notFound {
		t.Errorf("negative start: got %d, want notFound", got)
	}
}

func TestSearchBackward(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0, 0xDE, 0xAD, 0}
	if got := searchBackward(data, int64(len(data))-1, []byte{0xDE, 0xAD}, 1); got != 3 {
		t.Errorf("occurrence 1: got %d, want 3", got)
	}
	if got := searchBackward(data, int64(len(data))-1, []byte{0xDE, 0xAD}, 2); got != 0 {
		t.Errorf("occurrence 2: got %d, want 0", got)
	}
	if got := searchBackward(data, int64(len(data))-1, []byte{0xDE, 0xAD}, 3); got != notFound {
		t.Errorf("occurrence 3: got %d, want notFound", got)
	}
}

func TestSearchBackwardStartMidBuffer(t *testing.T) {
	data := []byte{0xAA, 0, 0xAA, 0, 0xAA}
	// Scanning down from offset 3 must not see the match at 4.
	if got := searchBackward(data, 3, []byte{0xAA}, 1); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestSearchBackwardClampsStart(t *testing.T) {
	data := []byte{0xAA, 0xBB}
	if got := searchBackward(data, 500, []byte{0xBB}, 1); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestSearchBackwardDegenerate(t *testing.T) {
	if got := searchBackward([]byte{1, 2}, 1, nil, 1); got != notFound {
		t.Errorf("empty pattern: got %d, want notFound", got)
	}
	if got := searchBackward(nil, 0, []byte{1}, 1); got != notFound {
		t.Errorf("empty buffer: got %d, want notFound", got)
	}
}
