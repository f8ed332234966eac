package containers

const tombstone = ^uint32(0)

// SparseSet maps dense indices (uint32 keys) to values with O(1) insert,
// remove and lookup. The dense arrays stay packed, so iteration touches
// only live entries, in no particular order.
type SparseSet[T any] struct {
	sparse []uint32
	keys   []uint32
	values []T
}

func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

// Insert sets the value for key, overwriting any previous value.
func (s *SparseSet[T]) Insert(key uint32, value T) {
	if pos, ok := s.position(key); ok {
		s.values[pos] = value
		return
	}
	for int(key) >= len(s.sparse) {
		s.sparse = append(s.sparse, tombstone)
	}
	s.sparse[key] = uint32(len(s.keys))
	s.keys = append(s.keys, key)
	s.values = append(s.values, value)
}

// Remove deletes the entry for key, if present. The last dense entry is
// swapped into the hole to keep the dense arrays packed.
func (s *SparseSet[T]) Remove(key uint32) bool {
	pos, ok := s.position(key)
	if !ok {
		return false
	}
	last := uint32(len(s.keys) - 1)
	lastKey := s.keys[last]
	s.keys[pos] = lastKey
	s.values[pos] = s.values[last]
	s.sparse[lastKey] = pos

	s.keys = s.keys[:last]
	s.values = s.values[:last]
	s.sparse[key] = tombstone
	return true
}

// Contains reports whether key has a value.
func (s *SparseSet[T]) Contains(key uint32) bool {
	_, ok := s.position(key)
	return ok
}

// Get returns the value for key.
func (s *SparseSet[T]) Get(key uint32) (T, bool) {
	var zero T
	pos, ok := s.position(key)
	if !ok {
		return zero, false
	}
	return s.values[pos], true
}

// GetPtr returns a pointer to the stored value for in-place mutation. The
// pointer is invalidated by the next Insert or Remove.
func (s *SparseSet[T]) GetPtr(key uint32) (*T, bool) {
	pos, ok := s.position(key)
	if !ok {
		return nil, false
	}
	return &s.values[pos], true
}

// Len returns the number of live entries.
func (s *SparseSet[T]) Len() int {
	return len(s.keys)
}

// Each calls fn for every live entry. fn must not insert or remove.
func (s *SparseSet[T]) Each(fn func(key uint32, value T)) {
	for i, k := range s.keys {
		fn(k, s.values[i])
	}
}

func (s *SparseSet[T]) position(key uint32) (uint32, bool) {
	if int(key) >= len(s.sparse) {
		return 0, false
	}
	pos := s.sparse[key]
	if pos == tombstone {
		return 0, false
	}
	return pos, true
}
