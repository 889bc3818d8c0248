package pool

// Handle identifies a packed array inside an ArrayPool. The zero-value
// sentinel Nil means "unallocated"; every operation on Nil is a no-op,
// which makes entity destroy paths idempotent.
type Handle int32

// Nil is the null handle sentinel.
const Nil Handle = -1

// ArrayPool manages packed, handle-indexed arrays that mirror logical
// entity lists. Index i of a mirrored array must equal index i of the
// owning list at all times: insertion appends to both, removal erases
// the same index from both. EraseAt shifts subsequent entries down to
// keep that correspondence.
type ArrayPool[T any] struct {
	arrays [][]T
	used   []bool
	free   []Handle
}

// NewArrayPool creates an empty pool. Arrays grow on demand.
func NewArrayPool[T any]() *ArrayPool[T] {
	return &ArrayPool[T]{}
}

// Alloc returns a handle to a new packed array with zero logical length.
func (p *ArrayPool[T]) Alloc() Handle {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		p.used[h] = true
		p.arrays[h] = p.arrays[h][:0]
		return h
	}
	h := Handle(len(p.arrays))
	p.arrays = append(p.arrays, nil)
	p.used = append(p.used, true)
	return h
}

// Free releases the array behind h. Freeing Nil or an already-freed
// handle is a guarded no-op.
func (p *ArrayPool[T]) Free(h Handle) {
	if !p.valid(h) {
		return
	}
	p.arrays[h] = nil
	p.used[h] = false
	p.free = append(p.free, h)
}

// Push appends one entry to the packed array.
func (p *ArrayPool[T]) Push(h Handle, v T) {
	if !p.valid(h) {
		return
	}
	p.arrays[h] = append(p.arrays[h], v)
}

// EraseAt removes the entry at index i, shifting subsequent entries
// down so packed indices stay in lock-step with the logical list.
func (p *ArrayPool[T]) EraseAt(h Handle, i int) {
	if !p.valid(h) {
		return
	}
	a := p.arrays[h]
	assertIndex(i, len(a))
	p.arrays[h] = append(a[:i], a[i+1:]...)
}

// Clear resets the logical length to zero without freeing storage.
func (p *ArrayPool[T]) Clear(h Handle) {
	if !p.valid(h) {
		return
	}
	p.arrays[h] = p.arrays[h][:0]
}

// Len returns the logical length of the array, 0 for Nil.
func (p *ArrayPool[T]) Len(h Handle) int {
	if !p.valid(h) {
		return 0
	}
	return len(p.arrays[h])
}

// Get returns the entry at index i.
func (p *ArrayPool[T]) Get(h Handle, i int) T {
	assertIndex(i, len(p.arrays[h]))
	return p.arrays[h][i]
}

// Set overwrites the entry at index i.
func (p *ArrayPool[T]) Set(h Handle, i int, v T) {
	if !p.valid(h) {
		return
	}
	assertIndex(i, len(p.arrays[h]))
	p.arrays[h][i] = v
}

// Slice returns a read view of the packed array for downstream
// consumers. The view is invalidated by the next Push or EraseAt.
func (p *ArrayPool[T]) Slice(h Handle) []T {
	if !p.valid(h) {
		return nil
	}
	return p.arrays[h]
}

func (p *ArrayPool[T]) valid(h Handle) bool {
	return h >= 0 && int(h) < len(p.arrays) && p.used[h]
}
