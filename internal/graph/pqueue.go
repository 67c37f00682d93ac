package graph

import "container/heap"

// PriorityQueue is a binary min-heap keyed by an integer priority with an
// arbitrary payload. Equal priorities pop in insertion order (FIFO), which
// keeps shortest-path traversal deterministic.
//
// The zero value is ready to use.
type PriorityQueue[T any] struct {
	h   itemHeap[T]
	seq uint64
}

type pqItem[T any] struct {
	value    T
	priority int
	seq      uint64
}

type itemHeap[T any] []pqItem[T]

func (h itemHeap[T]) Len() int { return len(h) }

func (h itemHeap[T]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap[T]) Push(x any) { *h = append(*h, x.(pqItem[T])) }

func (h *itemHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Push inserts a value with the given priority.
func (q *PriorityQueue[T]) Push(v T, priority int) {
	heap.Push(&q.h, pqItem[T]{value: v, priority: priority, seq: q.seq})
	q.seq++
}

// Pop removes and returns the lowest-priority value. ok is false when the
// queue is empty.
func (q *PriorityQueue[T]) Pop() (T, bool) {
	if len(q.h) == 0 {
		var zero T
		return zero, false
	}
	it := heap.Pop(&q.h).(pqItem[T])
	return it.value, true
}

// Top returns the lowest-priority value without removing it.
func (q *PriorityQueue[T]) Top() (T, bool) {
	if len(q.h) == 0 {
		var zero T
		return zero, false
	}
	return q.h[0].value, true
}

// IsEmpty reports whether the queue holds no items.
func (q *PriorityQueue[T]) IsEmpty() bool { return len(q.h) == 0 }

// Len reports the number of queued items.
func (q *PriorityQueue[T]) Len() int { return len(q.h) }
