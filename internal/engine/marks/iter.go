package marks

// Iterator walks a position-ordered snapshot of the store's marks.
// The snapshot is taken when the iterator is created; Reset restarts
// over the same snapshot.
type Iterator struct {
	marks []Mark
	idx   int
	cur   Mark
}

// Iter returns an iterator over the store's marks in position order.
func (s *Store) Iter() *Iterator {
	return &Iterator{marks: s.Marks()}
}

// Next advances to the next mark.
// Returns true if there is a mark, false when iteration is complete.
func (it *Iterator) Next() bool {
	if it.idx >= len(it.marks) {
		return false
	}
	it.cur = it.marks[it.idx]
	it.idx++
	return true
}

// Mark returns the current mark. Only valid after Next returns true.
func (it *Iterator) Mark() Mark {
	return it.cur
}

// Reset restarts iteration from the beginning of the snapshot.
func (it *Iterator) Reset() {
	it.idx = 0
}
