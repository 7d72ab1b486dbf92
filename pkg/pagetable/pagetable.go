// Package pagetable implements the buffer pool's page-number-to-frame-index
// index: a bucketed dictionary using modular hashing with growable,
// chained per-bucket slices, mirroring the reference implementation's
// collision-chained hash table. Any mapping satisfying the same
// get/set/remove contract would do -- this one is kept in full to stay
// grounded in the corpus's hash-table design rather than collapsing to a
// bare Go map.
package pagetable

import "minibase/pkg/storage"

// DefaultCapacity is the number of buckets used when none is specified,
// matching the reference's PAGE_TABLE_SIZE.
const DefaultCapacity = 256

type entry struct {
	key   storage.PageNum
	value int
}

// Table maps page numbers to buffer-pool frame indices.
type Table struct {
	buckets [][]entry
}

// New creates an empty Table with the given number of buckets.
func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{buckets: make([][]entry, capacity)}
}

func (t *Table) bucketIndex(key storage.PageNum) int {
	n := len(t.buckets)
	idx := int(int64(key) % int64(n))
	if idx < 0 {
		idx += n
	}
	return idx
}

// Get returns the frame index mapped to key, and whether it was found.
func (t *Table) Get(key storage.PageNum) (int, bool) {
	bucket := t.buckets[t.bucketIndex(key)]
	for _, e := range bucket {
		if e.key == key {
			return e.value, true
		}
	}
	return 0, false
}

// Set inserts or overwrites the frame index mapped to key.
func (t *Table) Set(key storage.PageNum, value int) {
	idx := t.bucketIndex(key)
	bucket := t.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].value = value
			return
		}
	}
	t.buckets[idx] = append(bucket, entry{key: key, value: value})
}

// Remove deletes the mapping for key, reporting whether it existed.
func (t *Table) Remove(key storage.PageNum) bool {
	idx := t.bucketIndex(key)
	bucket := t.buckets[idx]
	for i, e := range bucket {
		if e.key == key {
			t.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}
