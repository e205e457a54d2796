package pretty

// Pool is a contiguous value store handing out 1-based indices. Index 0 is
// reserved as the invalid handle.
type Pool[T any] struct {
	data []T
}

// NewPool creates a *Pool[T] whose storage is preallocated to capHint.
func NewPool[T any](capHint uint) *Pool[T] {
	return &Pool[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (p *Pool[T]) Allocate(value T) uint32 {
	p.data = append(p.data, value)
	return uint32(len(p.data))
}

func (p *Pool[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &p.data[index-1]
}

func (p *Pool[T]) Len() uint32 {
	return uint32(len(p.data))
}
