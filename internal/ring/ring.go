// Package ring provides a fixed-capacity buffer that overwrites its oldest
// entry once full.
package ring

import "iter"

// Buffer holds at most Cap() items in insertion order. It is not safe for
// concurrent use; callers serialise access.
type Buffer[T any] struct {
	items []T
	head  int // index of the oldest element
	count int
}

// New returns a buffer with the given capacity. A capacity of zero (or less)
// yields a buffer that discards everything pushed into it.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends item, evicting the oldest entry when the buffer is full.
func (b *Buffer[T]) Push(item T) {
	capacity := len(b.items)
	if capacity == 0 {
		return
	}
	if b.count < capacity {
		b.items[(b.head+b.count)%capacity] = item
		b.count++
		return
	}
	b.items[b.head] = item
	b.head = (b.head + 1) % capacity
}

// Len returns the number of stored items.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Reset drops every stored item.
func (b *Buffer[T]) Reset() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head = 0
	b.count = 0
}

// IterLast yields the newest min(n, Len()) items, oldest of that window
// first. The sequence reads the buffer when iteration starts, so it can be
// ranged over repeatedly.
func (b *Buffer[T]) IterLast(n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 || b.count == 0 {
			return
		}
		if n > b.count {
			n = b.count
		}
		capacity := len(b.items)
		start := b.head + b.count - n
		for i := 0; i < n; i++ {
			if !yield(b.items[(start+i)%capacity]) {
				return
			}
		}
	}
}
