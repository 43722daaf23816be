package xlogdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTupleFixedWidth(t *testing.T) {
	hdr := HeapTupleHeader{Infomask2: 1} // 1 attribute, no nulls
	data := make([]byte, 4)
	binaryPutU32(data, 0, 7)

	tup, err := DecodeTuple(hdr, data, []ColumnType{{Name: "n", TypeOid: OidInt4}})
	require.NoError(t, err)
	require.NotNil(t, tup.Values[0])
	assert.Equal(t, "7", *tup.Values[0])
}

func TestDecodeTupleWithNull(t *testing.T) {
	hdr := HeapTupleHeader{Infomask2: 2, Infomask: HeapHasNull}
	// bitmap byte: bit0 set (attr0 present), bit1 clear (attr1 null).
	// Bitmap occupies offset 0, maxAlign pads to offset 8, attr0's int4
	// value sits at offset 8; attr1 is null and consumes no bytes.
	data := make([]byte, 12)
	data[0] = 0b00000001
	binaryPutU32(data, 8, 5)

	tup, err := DecodeTuple(hdr, data, []ColumnType{{TypeOid: OidInt4}, {TypeOid: OidInt4}})
	require.NoError(t, err)
	require.NotNil(t, tup.Values[0])
	assert.Equal(t, "5", *tup.Values[0])
	assert.Nil(t, tup.Values[1])
}

func TestRenderPGDate(t *testing.T) {
	assert.Equal(t, "2000-01-01", renderPGDate(0))
}

func TestReconstructStatement(t *testing.T) {
	val := "bob"
	tup := &DecodedTuple{Values: []*string{&val}}
	cols := []ColumnType{{Name: "username", TypeOid: OidText}}
	stmt := ReconstructStatement("INSERT", "users", cols, tup)
	assert.Equal(t, "INSERT INTO users (username) VALUES ('bob')", stmt)
}

func TestQuoteStatementValueEscapesApostrophe(t *testing.T) {
	assert.Equal(t, "'o''brien'", quoteStatementValue("o'brien"))
}

func TestExtractHeapTupleInsert(t *testing.T) {
	payload := make([]byte, sizeOfHeapInsert+5+4)
	binaryPutU32(payload, 0, 1)
	binaryPutU32(payload, 4, 2)
	binaryPutU32(payload, 8, 3)
	// xl_heap_header: infomask2 (1 attr), infomask (no nulls), hoff
	payload[sizeOfHeapInsert] = 1
	binaryPutU32(payload, sizeOfHeapInsert+5, 42)

	rec := &Record{
		Header: RecordHeader{RmID: RMHeapID, Info: XLOGHeapInsert, Len: uint32(len(payload))},
		Raw:    append(make([]byte, RecordHeaderSize), payload...),
	}

	kind, node, hdr, tupleData, ok := ExtractHeapTuple(rec)
	require.True(t, ok)
	assert.Equal(t, "INSERT", kind)
	assert.Equal(t, RelFileNode{1, 2, 3}, node)
	assert.Equal(t, 1, hdr.NAtts())
	assert.False(t, hdr.HasNulls())
	require.Len(t, tupleData, 4)
	assert.Equal(t, uint32(42), u32(tupleData, 0))
}

func TestExtractHeapTupleIgnoresNonHeapRmgr(t *testing.T) {
	rec := &Record{Header: RecordHeader{RmID: RMXactID}, Raw: make([]byte, RecordHeaderSize)}
	_, _, _, _, ok := ExtractHeapTuple(rec)
	assert.False(t, ok)
}

func TestDecodeFixedFloat8ReadsAllEightBytes(t *testing.T) {
	v := make([]byte, 8)
	binaryPutU32(v, 0, 0xAABBCCDD)
	binaryPutU32(v, 4, 0x11223344)
	s, n, err := decodeFixed(v, OidFloat8, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "0x11223344AABBCCDD", s)
}

func TestDecodeAttrExternalVarlenaSurfacesUnsupported(t *testing.T) {
	data := make([]byte, 18)
	data[0] = 0x01
	val, n, err := decodeAttr(data, ColumnType{TypeOid: OidText})
	require.NoError(t, err)
	assert.Equal(t, 18, n)
	assert.Equal(t, "unsupported(toast)", val)
}

func TestDecodeAttrCompressedVarlenaDecompresses(t *testing.T) {
	// 4-byte header: total=12, compressed bit set.
	data := make([]byte, 12)
	binaryPutU32(data, 0, 12<<2|0x02)
	// Nested rawsize(3) + pglz payload: ctrl byte 0x00 (all literal), "abc".
	binaryPutU32(data, 4, 3)
	data[8] = 0x00
	data[9] = 'a'
	data[10] = 'b'
	data[11] = 'c'

	val, n, err := decodeAttr(data, ColumnType{TypeOid: OidText})
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "abc", val)
}
