package xlogdump

import "testing"

func TestAlign(t *testing.T) {
	tests := []struct {
		offset, alignment, want int
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 4, 4},
		{5, 1, 5},
	}
	for _, tt := range tests {
		if got := align(tt.offset, tt.alignment); got != tt.want {
			t.Errorf("align(%d, %d) = %d, want %d", tt.offset, tt.alignment, got, tt.want)
		}
	}
}

func TestAlignFromChar(t *testing.T) {
	tests := []struct {
		c    byte
		want int
	}{
		{'c', 1}, {'s', 2}, {'i', 4}, {'d', 8}, {'x', 1},
	}
	for _, tt := range tests {
		if got := alignFromChar(tt.c); got != tt.want {
			t.Errorf("alignFromChar(%q) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestReadVarlenaShort(t *testing.T) {
	// 1-byte header, total size 5 (header + 4 bytes payload).
	data := []byte{5 << 1 | 1, 'a', 'b', 'c', 'd', 0xFF}
	payload, n := ReadVarlena(data)
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
	if string(payload) != "abcd" {
		t.Fatalf("payload = %q, want %q", payload, "abcd")
	}
}

func TestReadVarlenaFourByteHeader(t *testing.T) {
	// 4-byte header, total size 8 (header + 4 bytes payload), uncompressed.
	data := []byte{8 << 2, 0, 0, 0, 'w', 'x', 'y', 'z'}
	payload, n := ReadVarlena(data)
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
	if string(payload) != "wxyz" {
		t.Fatalf("payload = %q, want %q", payload, "wxyz")
	}
}

func TestReadVarlenaExternalPointer(t *testing.T) {
	data := make([]byte, 18)
	data[0] = 0x01
	payload, n := ReadVarlena(data)
	if n != 18 {
		t.Fatalf("n = %d, want 18", n)
	}
	if len(payload) != 17 {
		t.Fatalf("len(payload) = %d, want 17", len(payload))
	}
}

func TestCString(t *testing.T) {
	data := []byte{'f', 'o', 'o', 0, 'x', 'x'}
	if got := cstring(data, len(data)); got != "foo" {
		t.Errorf("cstring = %q, want %q", got, "foo")
	}
}
