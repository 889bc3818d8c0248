package pool

// RecordPool hands out stable slots for per-entity records (model and
// light uniforms mirrored for the renderer). Entities keep the Handle
// for the lifetime of their scene attachment; packed scene arrays store
// these handles in logical-list order.
type RecordPool[T any] struct {
	slots []T
	used  []bool
	free  []Handle
}

func NewRecordPool[T any]() *RecordPool[T] {
	return &RecordPool[T]{}
}

// Alloc returns a handle to a zeroed record slot.
func (p *RecordPool[T]) Alloc() Handle {
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		var zero T
		p.slots[h] = zero
		p.used[h] = true
		return h
	}
	var zero T
	h := Handle(len(p.slots))
	p.slots = append(p.slots, zero)
	p.used = append(p.used, true)
	return h
}

// Free releases the slot. Freeing Nil or an already-freed handle is a
// guarded no-op so destroy paths stay idempotent.
func (p *RecordPool[T]) Free(h Handle) {
	if !p.validSlot(h) {
		return
	}
	p.used[h] = false
	p.free = append(p.free, h)
}

// Set overwrites the record behind h. No-op on Nil.
func (p *RecordPool[T]) Set(h Handle, v T) {
	if !p.validSlot(h) {
		return
	}
	p.slots[h] = v
}

// Get returns a pointer to the record behind h, nil for Nil or freed
// handles.
func (p *RecordPool[T]) Get(h Handle) *T {
	if !p.validSlot(h) {
		return nil
	}
	return &p.slots[h]
}

func (p *RecordPool[T]) validSlot(h Handle) bool {
	return h >= 0 && int(h) < len(p.slots) && p.used[h]
}
