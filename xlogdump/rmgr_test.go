package xlogdump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeXactRecord(op uint8, when int32) *Record {
	payload := make([]byte, 4)
	binaryPutU32(payload, 0, uint32(when))
	return &Record{
		Header: RecordHeader{RmID: RMXactID, Info: op, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
}

func TestDispatchXactCommit(t *testing.T) {
	rec := makeXactRecord(XLOGXactCommit, 0)
	res := Dispatch(rec, DispatchOptions{HideTimestamps: true})
	assert.Equal(t, "commit", res.Line)
}

func TestDispatchXactAbort(t *testing.T) {
	rec := makeXactRecord(XLOGXactAbort, 0)
	res := Dispatch(rec, DispatchOptions{HideTimestamps: true})
	assert.Equal(t, "abort", res.Line)
}

func TestDispatchHeapInsertNoBackupBlockOmitsHeader(t *testing.T) {
	payload := make([]byte, 12)
	binaryPutU32(payload, 0, 1)
	binaryPutU32(payload, 4, 2)
	binaryPutU32(payload, 8, 3)
	rec := &Record{
		Header: RecordHeader{RmID: RMHeapID, Info: XLOGHeapInsert, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	require.NotEmpty(t, res.Line)
	require.NotNil(t, res.Node)
	assert.Equal(t, RelFileNode{1, 2, 3}, *res.Node)
	assert.True(t, strings.HasSuffix(res.Line, "header: none"), "Line = %q", res.Line)
}

func TestDispatchHeapInitPageSuffix(t *testing.T) {
	payload := make([]byte, 12)
	rec := &Record{
		Header: RecordHeader{RmID: RMHeapID, Info: XLOGHeapInsert | XLOGHeapInitPage, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	assert.Contains(t, res.Line, "(init)")
}

func TestDispatchUnknownRmgr(t *testing.T) {
	rec := &Record{Header: RecordHeader{RmID: 99}, Raw: make([]byte, RecordHeaderSize)}
	res := Dispatch(rec, DispatchOptions{})
	assert.Contains(t, res.Line, "UNKNOWN")
}

func binaryPutU16(buf []byte, off int, v uint16) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}

func TestDispatchBtreeInsertLeaf(t *testing.T) {
	payload := make([]byte, sizeOfBtreeTid)
	binaryPutU32(payload, 0, 1)
	binaryPutU32(payload, 4, 2)
	binaryPutU32(payload, 8, 3)
	binaryPutU32(payload, 12, 42) // block
	binaryPutU16(payload, 16, 7)  // pos
	rec := &Record{
		Header: RecordHeader{RmID: RMBtreeID, Info: XLOGBtreeInsertLeaf, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	require.NotNil(t, res.Node)
	assert.Contains(t, res.Line, "insert_leaf")
	assert.Contains(t, res.Line, "tid 42/7")
}

func TestDispatchBtreeInsertMeta(t *testing.T) {
	payload := make([]byte, sizeOfBtreeTid+4+sizeOfBtreeMetadata)
	binaryPutU32(payload, 0, 1)
	binaryPutU32(payload, 4, 2)
	binaryPutU32(payload, 8, 3)
	binaryPutU32(payload, 12, 42)
	binaryPutU16(payload, 16, 7)
	binaryPutU32(payload, sizeOfBtreeTid, 99) // downlink
	mdOff := sizeOfBtreeTid + 4
	binaryPutU32(payload, mdOff, 1)     // root
	binaryPutU32(payload, mdOff+4, 0)   // level
	binaryPutU32(payload, mdOff+8, 5)   // fastroot
	binaryPutU32(payload, mdOff+12, 2)  // fastlevel
	rec := &Record{
		Header: RecordHeader{RmID: RMBtreeID, Info: XLOGBtreeInsertMeta, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	assert.Contains(t, res.Line, "downlink 99")
	assert.Contains(t, res.Line, "froot 5/2")
}

func TestDispatchBtreeSplitLSkipsNewItemWhenBackupBlock0Present(t *testing.T) {
	payload := make([]byte, sizeOfBtreeSplit+2) // level 0: no downlink, just newitemoff
	binaryPutU32(payload, 0, 1)
	binaryPutU32(payload, 4, 2)
	binaryPutU32(payload, 8, 3)
	binaryPutU32(payload, 12, 10) // leftsib
	binaryPutU32(payload, 16, 11) // rightsib
	binaryPutU32(payload, 20, 0)  // rnext
	binaryPutU32(payload, 24, 0)  // level
	binaryPutU16(payload, 28, 5)  // firstright
	binaryPutU16(payload, sizeOfBtreeSplit, 3) // newitemoff
	rec := &Record{
		Header: RecordHeader{RmID: RMBtreeID, Info: XLOGBtreeSplitL | XLRSetBkpBlock(0), Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	assert.Contains(t, res.Line, "newitemoff 3")
	assert.NotContains(t, res.Line, "newitem (block")
}

func TestDispatchGistPageUpdateCountsIndexTuples(t *testing.T) {
	payload := make([]byte, sizeOfGistPageUpdate)
	binaryPutU32(payload, 0, 1)
	binaryPutU32(payload, 4, 2)
	binaryPutU32(payload, 8, 3)
	binaryPutU32(payload, 12, 7) // blkno
	binaryPutU32(payload, 16, 0) // key blk
	binaryPutU16(payload, 20, 0) // key pos
	binaryPutU16(payload, 22, 0) // ntodelete

	tuple := make([]byte, sizeOfIndexTupleHeader+4)
	binaryPutU16(tuple, 6, uint16(len(tuple))) // t_info low 13 bits = size
	payload = append(payload, tuple...)

	rec := &Record{
		Header: RecordHeader{RmID: RMGistID, Info: XLOGGistPageUpdate, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	assert.Contains(t, res.Line, "add=1")
}

func TestDispatchMultiXactCreate(t *testing.T) {
	payload := make([]byte, sizeOfMultiXactCreate)
	binaryPutU32(payload, 0, 100) // mid
	binaryPutU32(payload, 4, 200) // moff
	binaryPutU32(payload, 8, 2)   // nxids
	rec := &Record{
		Header: RecordHeader{RmID: RMMultiXactID, Info: XLOGMultiXactCreateID, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	assert.Equal(t, "multixact create: 100 off 200 nxids 2", res.Line)
}

func TestDispatchDatabaseCreate(t *testing.T) {
	payload := make([]byte, 16)
	binaryPutU32(payload, 0, 5)
	binaryPutU32(payload, 4, 1)
	binaryPutU32(payload, 8, 0)
	binaryPutU32(payload, 12, 1)
	rec := &Record{
		Header: RecordHeader{RmID: RMDatabaseID, Info: XLOGDbaseCreate, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}
	res := Dispatch(rec, DispatchOptions{})
	assert.Contains(t, res.Line, "database create: db 5")
}
