package xlogdump

import "testing"

func TestWalkBackupBlocksSingle(t *testing.T) {
	hole := 100
	blockLen := BackupBlockHeaderSize + PageSize - hole
	raw := make([]byte, RecordHeaderSize+blockLen)
	raw[13] = RMHeapID
	raw[12] = XLRSetBkpBlock(0)

	off := RecordHeaderSize
	binaryPutU32(raw, off, 1)
	binaryPutU32(raw, off+4, 2)
	binaryPutU32(raw, off+8, 3)
	binaryPutU32(raw, off+12, 77) // block number
	raw[off+16] = byte(0)
	raw[off+17] = byte(0)
	raw[off+18] = byte(hole)
	raw[off+19] = byte(hole >> 8)

	rec := &Record{
		Header: RecordHeader{RmID: RMHeapID, Info: XLRSetBkpBlock(0), Len: 0},
		Raw:    raw,
	}

	blocks, err := WalkBackupBlocks(rec)
	if err != nil {
		t.Fatalf("WalkBackupBlocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("len(blocks) = %d, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Header.Block != 77 {
		t.Errorf("Block = %d, want 77", b.Header.Block)
	}
	if len(b.Image) != PageSize-hole {
		t.Errorf("len(Image) = %d, want %d", len(b.Image), PageSize-hole)
	}
}

func TestWalkBackupBlocksNone(t *testing.T) {
	rec := &Record{
		Header: RecordHeader{RmID: RMHeapID, Info: 0, Len: 0},
		Raw:    make([]byte, RecordHeaderSize),
	}
	blocks, err := WalkBackupBlocks(rec)
	if err != nil {
		t.Fatalf("WalkBackupBlocks: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("len(blocks) = %d, want 0", len(blocks))
	}
}
