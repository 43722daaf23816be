package xlogdump

import "encoding/binary"

// align rounds offset up to the next multiple of alignment (1, 2, 4 or 8),
// mirroring the source engine's TYPEALIGN/MAXALIGN macros.
func align(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	return (offset + alignment - 1) &^ (alignment - 1)
}

// maxAlign is align(offset, 8): the source engine's default alignment for
// record/continuation headers and tuple start offsets.
func maxAlign(offset int) int {
	return align(offset, 8)
}

// alignFromChar maps a pg_type.typalign character to its byte alignment.
func alignFromChar(c byte) int {
	switch c {
	case 'c':
		return 1
	case 's':
		return 2
	case 'i':
		return 4
	case 'd':
		return 8
	default:
		return 1
	}
}

func u16(data []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(data[offset : offset+2])
}

func u32(data []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(data[offset : offset+4])
}

func u64(data []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(data[offset : offset+8])
}

func i16(data []byte, offset int) int16 { return int16(u16(data, offset)) }
func i32(data []byte, offset int) int32 { return int32(u32(data, offset)) }
func i64(data []byte, offset int) int64 { return int64(u64(data, offset)) }

// cstring extracts a NUL-terminated (or fixed-width, NUL-padded) string
// from data, scanning at most maxlen bytes — used both for free C strings
// and for NAMEDATALEN-fixed "name" type columns.
func cstring(data []byte, maxlen int) string {
	if maxlen > len(data) {
		maxlen = len(data)
	}
	for i := 0; i < maxlen; i++ {
		if data[i] == 0 {
			return string(data[:i])
		}
	}
	return string(data[:maxlen])
}

// isShortVarlena reports whether the varlena beginning at data[0] uses the
// 1-byte-header ("short") encoding: low bit of the first byte set, but not
// exactly 0x01, the external-pointer tag.
func isShortVarlena(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	first := data[0]
	return first&0x01 == 0x01 && first != 0x01
}

// isVarlenaCompressed reports whether a 4-byte-header varlena's length word
// carries the "compressed" tag: the two low bits of the little-endian
// first byte are 10 (bit 1 set, bit 0 clear).
func isVarlenaCompressed(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	return data[0]&0x03 == 0x02
}

// isVarlenaExternal reports whether a 1-byte-header varlena is actually the
// external/TOASTed-pointer encoding (VARTAG_EXTERNAL family): first byte is
// exactly 0x01.
func isVarlenaExternal(data []byte) bool {
	return len(data) > 0 && data[0] == 0x01
}

// ReadVarlena returns the logical payload bytes of a varlena value starting
// at data[0] (after any header), along with the total on-disk size
// (header + payload) so callers can advance their cursor.
//
// Three encodings are handled, matching PostgreSQL's 1-byte/4-byte varlena
// header scheme (spec §4.5):
//   - 1-byte header, short in-line value: data[0]>>1 is the total size
//     including the header.
//   - 1-byte header, external/compressed pointer (VARTAG family): returns
//     the 17 bytes after the 0x01 tag unresolved, with a total size of 18;
//     callers decode them with ParseTOASTPointer.
//   - 4-byte header: little-endian 32-bit word shifted right by two holds
//     the total size including the header; bit 1 flags compression.
func ReadVarlena(data []byte) ([]byte, int) {
	if len(data) == 0 {
		return nil, 0
	}
	first := data[0]
	switch {
	case first&0x01 == 0x01 && first != 0x01:
		// 1-byte header, short varlena.
		total := int(first >> 1)
		if total < 1 || total > len(data) {
			return nil, 0
		}
		return data[1:total], total
	case first == 0x01:
		// external/compressed-external pointer (18 bytes incl. tag).
		const ptrSize = 1 + 17
		if len(data) < ptrSize {
			return nil, 0
		}
		return data[1:ptrSize], ptrSize
	default:
		// 4-byte header.
		if len(data) < 4 {
			return nil, 0
		}
		raw := u32(data, 0)
		total := int(raw >> 2)
		if total < 4 || total > len(data) {
			return nil, 0
		}
		return data[4:total], total
	}
}
