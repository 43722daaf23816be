package xlogdump

import "hash/crc32"

// crc32State reproduces the source engine's pg_crc32 macros
// (INIT_CRC32/COMP_CRC32/FIN_CRC32/EQ_CRC32): PostgreSQL versions in the
// 8.2-9.2 range compute CRCs with the same polynomial and table as the
// classic CRC-32 (IEEE 802.3 / zlib) algorithm, just with an explicit
// running-state object instead of a one-shot checksum, since a record's
// CRC is folded incrementally over several discontiguous byte ranges
// (payload, backup blocks, header) before being finalized once.
type crc32State struct {
	value uint32
}

func newCRC32() crc32State {
	var c crc32State
	c.init()
	return c
}

func (c *crc32State) init() { c.value = 0xFFFFFFFF }

func (c *crc32State) update(data []byte) {
	tab := crc32.IEEETable
	v := c.value
	for _, b := range data {
		v = tab[byte(v)^b] ^ (v >> 8)
	}
	c.value = v
}

func (c *crc32State) final() uint32 { return c.value ^ 0xFFFFFFFF }
