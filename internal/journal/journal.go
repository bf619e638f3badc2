package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/visus-io/cuid2/internal/storage/pebble"
)

// Entry is one issuance record.
type Entry struct {
	Seq    uint64 `json:"seq"`
	ID     string `json:"id"`
	TsMs   int64  `json:"ts_ms"`
	Length int    `json:"length"`
}

// Journal is a sequence-ordered issuance log over a Pebble store.
// Appends are serialized; reads can run concurrently with appends.
type Journal struct {
	mu   sync.Mutex
	db   *pebblestore.DB
	next uint64
}

// Open loads the journal state from the store. A fresh store starts
// at sequence 0.
func Open(db *pebblestore.DB) (*Journal, error) {
	j := &Journal{db: db}
	meta, err := db.Get(metaKey)
	switch {
	case errors.Is(err, pebble.ErrNotFound):
		// empty journal
	case err != nil:
		return nil, fmt.Errorf("journal: read meta: %w", err)
	case len(meta) != 8:
		return nil, fmt.Errorf("journal: corrupt meta, %d bytes", len(meta))
	default:
		j.next = binary.BigEndian.Uint64(meta)
	}
	return j, nil
}

// Append records a minted identifier and returns its assigned
// sequence. The entry and the advanced meta key commit in one batch.
func (j *Journal) Append(id string, tsMs int64, length int) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	seq := j.next
	val, err := json.Marshal(Entry{Seq: seq, ID: id, TsMs: tsMs, Length: length})
	if err != nil {
		return 0, err
	}

	b := j.db.NewBatch()
	defer b.Close()
	if err := b.Set(keyEntry(seq), val, nil); err != nil {
		return 0, err
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], seq+1)
	if err := b.Set(metaKey, meta[:], nil); err != nil {
		return 0, err
	}
	if err := j.db.CommitBatch(b); err != nil {
		return 0, fmt.Errorf("journal: commit: %w", err)
	}

	j.next = seq + 1
	return seq, nil
}

// Len returns the number of appended entries.
func (j *Journal) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.next
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	start, end := entryRange()
	it, err := j.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	out := make([]Entry, 0, limit)
	for ok := it.Last(); ok && len(out) < limit; ok = it.Prev() {
		var e Entry
		if err := json.Unmarshal(it.Value(), &e); err != nil {
			return nil, fmt.Errorf("journal: corrupt entry: %w", err)
		}
		out = append(out, e)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return out, nil
}
