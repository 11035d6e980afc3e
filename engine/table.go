package engine

// Entity is a stable identifier, never reused within a table
type Entity uint64

// Table is an insertion-ordered entity table, each entry owns all of its representations
type Table[T any] struct {
	next  Entity
	items map[Entity]T
	order []Entity
}

// NewTable creates an empty table
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		next:  1,
		items: make(map[Entity]T),
	}
}

// Insert stores v under a fresh identifier built by mk
func (t *Table[T]) Insert(mk func(id Entity) T) Entity {
	id := t.next
	t.next++
	t.items[id] = mk(id)
	t.order = append(t.order, id)
	return id
}

// Get returns the entry for id
func (t *Table[T]) Get(id Entity) (T, bool) {
	v, ok := t.items[id]
	return v, ok
}

// Remove deletes id and returns its entry, absent ids are a no-op
func (t *Table[T]) Remove(id Entity) (T, bool) {
	v, ok := t.items[id]
	if !ok {
		return v, false
	}
	delete(t.items, id)
	for i, e := range t.order {
		if e == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return v, true
}

// Len returns the entry count
func (t *Table[T]) Len() int {
	return len(t.order)
}

// IDs returns a snapshot of identifiers in insertion order, safe to hold across removals
func (t *Table[T]) IDs() []Entity {
	out := make([]Entity, len(t.order))
	copy(out, t.order)
	return out
}

// Each visits entries in insertion order, fn must not insert or remove
func (t *Table[T]) Each(fn func(id Entity, v T)) {
	for _, id := range t.order {
		fn(id, t.items[id])
	}
}
