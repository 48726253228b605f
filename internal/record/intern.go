package record

import "sync"

// Interner hands out one canonical descriptor per tuple shape, so plans and
// tables with equal shapes share a single *TupleDesc.
type Interner struct {
	mu      sync.RWMutex
	buckets map[uint64][]*TupleDesc
	n       int
}

func NewInterner() *Interner {
	return &Interner{buckets: make(map[uint64][]*TupleDesc)}
}

// Intern returns the first registered descriptor Equal to d, registering d
// if there is none. Since Equal ignores names, the canonical descriptor keeps
// the names it was first registered with.
func (in *Interner) Intern(d *TupleDesc) *TupleDesc {
	h := d.Hash()

	in.mu.RLock()
	if c := lookup(in.buckets[h], d); c != nil {
		in.mu.RUnlock()
		return c
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	// re-check: another goroutine may have won the race
	if c := lookup(in.buckets[h], d); c != nil {
		return c
	}
	in.buckets[h] = append(in.buckets[h], d)
	in.n++
	return d
}

// Len returns the number of distinct shapes registered.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.n
}

func lookup(bucket []*TupleDesc, d *TupleDesc) *TupleDesc {
	for _, c := range bucket {
		if c.Equal(d) {
			return c
		}
	}
	return nil
}
