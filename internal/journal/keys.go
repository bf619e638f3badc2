package journal

import "encoding/binary"

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - journal/m              next-sequence meta
// - journal/e/{seq_be8}    one minted identifier per sequence
var (
	metaKey     = []byte("journal/m")
	entryPrefix = []byte("journal/e/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// keyEntry builds the entry key with a big-endian sequence so byte
// order matches issuance order.
func keyEntry(seq uint64) []byte {
	k := make([]byte, 0, len(entryPrefix)+8)
	k = append(k, entryPrefix...)
	k = appendBE8(k, seq)
	return k
}

// entryRange returns the [start, end) bounds covering all entries.
func entryRange() (start, end []byte) {
	start = append([]byte(nil), entryPrefix...)
	end = append([]byte(nil), entryPrefix...)
	end = append(end, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
	return start, end
}
