package xlogdump

import "testing"

func TestParseControlFile(t *testing.T) {
	data := make([]byte, 120)
	binaryPutU32(data, 0, 123456)
	binaryPutU32(data, 40, 5) // redo xlogid
	binaryPutU32(data, 44, 6) // redo xrecoff
	binaryPutU32(data, 48, 1) // timeline

	cf, err := ParseControlFile(data)
	if err != nil {
		t.Fatalf("ParseControlFile: %v", err)
	}
	if cf.RedoLSN.XLogID != 5 || cf.RedoLSN.XRecOff != 6 {
		t.Errorf("RedoLSN = %+v", cf.RedoLSN)
	}
	if cf.TimeLineID != 1 {
		t.Errorf("TimeLineID = %d, want 1", cf.TimeLineID)
	}
}

func TestParseControlFileTooShort(t *testing.T) {
	if _, err := ParseControlFile(make([]byte, 10)); err == nil {
		t.Error("expected error for truncated pg_control")
	}
}
