package xlogdump

import "fmt"

// BackupBlock is one decoded backup-block entry: its header plus the
// stored page image bytes (P - hole_length of them).
type BackupBlock struct {
	Index  int
	Header BackupBlockHeader
	Image  []byte
}

// WalkBackupBlocks iterates the up-to-four backup blocks present on rec,
// in ascending index order (spec §4.4).
func WalkBackupBlocks(rec *Record) ([]BackupBlock, error) {
	var blocks []BackupBlock
	off := rec.backupBlocksStart()
	for i := 0; i < MaxBackupBlocks; i++ {
		if !rec.Header.HasBackupBlock(i) {
			continue
		}
		hdr, err := ParseBackupBlockHeader(rec.Raw, off)
		if err != nil {
			return blocks, err
		}
		blen := BackupBlockHeaderSize + PageSize - int(hdr.HoleLength)
		if off+blen > len(rec.Raw) {
			return blocks, Wrapf(ErrFormat, "backup block %d overruns record", i)
		}
		blocks = append(blocks, BackupBlock{
			Index:  i,
			Header: hdr,
			Image:  rec.Raw[off+BackupBlockHeaderSize : off+blen],
		})
		off += blen
	}
	return blocks, nil
}

// renderBackupBlockLine renders one backup block in the original tool's
// "bkpblock[i]: s/d/r:.../.../.../ blk:U hole_off/len:U/U" shape, resolving
// the file-node through resolver (nil is permitted: the numeric OIDs are
// printed instead).
func renderBackupBlockLine(b BackupBlock, resolver NameResolver) string {
	space, db, rel := resolveNode(resolver, b.Header.Node)
	return fmt.Sprintf(
		"bkpblock[%d]: s/d/r:%s/%s/%s blk:%d hole_off/len:%d/%d",
		b.Index+1, space, db, rel, b.Header.Block, b.Header.HoleOffset, b.Header.HoleLength)
}

// RenderBackupBlockLines renders one line per backup block on rec.
func RenderBackupBlockLines(rec *Record, resolver NameResolver) ([]string, error) {
	blocks, err := WalkBackupBlocks(rec)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, renderBackupBlockLine(b, resolver))
	}
	return lines, nil
}
