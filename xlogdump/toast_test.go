package xlogdump

import "testing"

func TestParseTOASTPointer(t *testing.T) {
	data := make([]byte, 16)
	binaryPutU32(data, 0, 1000) // raw size, uncompressed
	binaryPutU32(data, 4, 500)  // ext size
	binaryPutU32(data, 8, 7)    // value id
	binaryPutU32(data, 12, 9)   // toast rel id

	ptr, ok := ParseTOASTPointer(data)
	if !ok {
		t.Fatal("ParseTOASTPointer returned ok=false")
	}
	if ptr.RawSize != 1000 || ptr.ExtSize != 500 || ptr.ValueID != 7 || ptr.ToastRelID != 9 {
		t.Errorf("ptr = %+v", ptr)
	}
	if ptr.Compressed {
		t.Errorf("Compressed = true, want false")
	}
}

func TestParseTOASTPointerTooShort(t *testing.T) {
	if _, ok := ParseTOASTPointer([]byte{1, 2, 3}); ok {
		t.Errorf("expected ok=false for short input")
	}
}

func TestDecompressPGLZLiteralOnly(t *testing.T) {
	// Control byte 0x00: eight literal bytes follow untouched.
	input := append([]byte{0x00}, []byte("ABCDEFGH")...)
	out, err := decompressPGLZ(input, 8)
	if err != nil {
		t.Fatalf("decompressPGLZ: %v", err)
	}
	if string(out) != "ABCDEFGH" {
		t.Errorf("out = %q, want %q", out, "ABCDEFGH")
	}
}
