// Package dupkey detects duplicate RION object keys. It is the Object
// container's key-uniqueness guard; it plays no part in sorting keys.
//
// It uses the same two-level "hash first, exact-compare second" shape as a
// metric-name collision tracker would, simplified because a RION key is its
// own identity — there is no derived ID that two different keys could
// collide on, only the hash bucket itself, which is checked against the
// tracked key strings before being accepted as a duplicate.
package dupkey

import (
	"github.com/rionfmt/rion/errs"
	"github.com/rionfmt/rion/internal/hash"
)

// Tracker tracks the keys seen so far in one Object's encode or decode pass.
type Tracker struct {
	buckets map[uint64][]string
	seen    int
}

// New returns an empty Tracker sized for n expected keys.
func New(n int) *Tracker {
	if n < 0 {
		n = 0
	}

	return &Tracker{buckets: make(map[uint64][]string, n)}
}

// Track records key, returning errs.ErrDuplicateKey if it was already
// tracked.
func (t *Tracker) Track(key string) error {
	h := hash.ID(key)
	for _, k := range t.buckets[h] {
		if k == key {
			return errs.ErrDuplicateKey
		}
	}

	t.buckets[h] = append(t.buckets[h], key)
	t.seen++

	return nil
}

// Count returns the number of distinct keys tracked so far.
func (t *Tracker) Count() int { return t.seen }
