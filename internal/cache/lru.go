package cache

// entry is a node in the doubly-linked recency list. It carries the key so
// the oldest entry can be deleted from the map without a search.
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// lruList orders entries by recency. The head is the most recently used,
// the tail the least. The list is not thread-safe; Cache guards it.
type lruList[K comparable, V any] struct {
	head *entry[K, V]
	tail *entry[K, V]
	len  int
}

// Len returns the number of entries in the list.
func (l *lruList[K, V]) Len() int {
	return l.len
}

// PushFront links e at the front.
func (l *lruList[K, V]) PushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	if l.tail == nil {
		l.tail = e
	}
	l.len++
}

// MoveToFront marks e as most recently used.
func (l *lruList[K, V]) MoveToFront(e *entry[K, V]) {
	if e == nil || e == l.head {
		return
	}
	l.unlink(e)
	l.PushFront(e)
}

// Remove unlinks e from the list.
func (l *lruList[K, V]) Remove(e *entry[K, V]) {
	if e == nil {
		return
	}
	l.unlink(e)
}

// RemoveOldest unlinks and returns the least recently used entry, or nil
// when the list is empty.
func (l *lruList[K, V]) RemoveOldest() *entry[K, V] {
	e := l.tail
	if e == nil {
		return nil
	}
	l.unlink(e)
	return e
}

// Clear drops all entries.
func (l *lruList[K, V]) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev = nil
	e.next = nil
	l.len--
}
