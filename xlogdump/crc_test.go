package xlogdump

import "testing"

func TestCRC32EmptyMatchesIEEEConvention(t *testing.T) {
	c := newCRC32()
	if c.final() != 0 {
		t.Errorf("final() on empty state = %X, want 0", c.final())
	}
}

func TestCRC32Incremental(t *testing.T) {
	whole := newCRC32()
	whole.update([]byte("hello world"))

	split := newCRC32()
	split.update([]byte("hello "))
	split.update([]byte("world"))

	if whole.final() != split.final() {
		t.Errorf("incremental update diverged: %X != %X", whole.final(), split.final())
	}
}
