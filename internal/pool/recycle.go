package pool

// RecyclePool hands out reusable records for per-frame query results.
// Records are constructed once and handed back out after Reset, so the
// query hot path never touches the allocator.
type RecyclePool[T any] struct {
	slots  []*T
	length int
}

// NewRecyclePool creates a pool with size preconstructed slots.
func NewRecyclePool[T any](size int) *RecyclePool[T] {
	if size < 1 {
		size = 1
	}
	p := &RecyclePool[T]{slots: make([]*T, size)}
	for i := range p.slots {
		p.slots[i] = new(T)
	}
	return p
}

// Reset marks the pool logically empty. Backing storage is kept, so
// records handed out before the reset are overwritten by later Adds.
func (p *RecyclePool[T]) Reset() {
	p.length = 0
}

// Add returns the next free record, growing the backing storage
// (doubling) when exhausted. Records returned between two Resets are
// distinct and keep their identity even when the pool grows.
func (p *RecyclePool[T]) Add() *T {
	if p.length == len(p.slots) {
		grown := make([]*T, len(p.slots)*2)
		copy(grown, p.slots)
		for i := len(p.slots); i < len(grown); i++ {
			grown[i] = new(T)
		}
		p.slots = grown
	}
	slot := p.slots[p.length]
	p.length++
	return slot
}

// Len returns the number of records added since the last Reset.
func (p *RecyclePool[T]) Len() int {
	return p.length
}

// Get returns the i-th record added since the last Reset.
func (p *RecyclePool[T]) Get(i int) *T {
	return p.slots[i]
}

// Cap returns the current backing capacity.
func (p *RecyclePool[T]) Cap() int {
	return len(p.slots)
}
