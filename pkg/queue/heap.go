package queue

import "container/heap"

// Prioritizable is implemented by items stored in a MinHeap. Less must
// impose a total order so that heap pops are deterministic even among
// equal-priority items.
type Prioritizable[T any] interface {
	Less(other T) bool
	Index() int
	SetIndex(index int)
}

// MinHeap is a priority queue over Prioritizable items.
type MinHeap[T Prioritizable[T]] struct {
	queue innerQueue[T]
}

func NewMinHeap[T Prioritizable[T]]() *MinHeap[T] {
	h := &MinHeap[T]{queue: make(innerQueue[T], 0)}
	heap.Init(&h.queue)
	return h
}

func (h *MinHeap[T]) Len() int      { return h.queue.Len() }
func (h *MinHeap[T]) Push(item T)   { heap.Push(&h.queue, item) }
func (h *MinHeap[T]) Pop() T        { return heap.Pop(&h.queue).(T) }
func (h *MinHeap[T]) Peek() T       { return h.queue[0] }
func (h *MinHeap[T]) Update(item T) { heap.Fix(&h.queue, item.Index()) }

// Implements heap.Interface
type innerQueue[T Prioritizable[T]] []T

func (q innerQueue[T]) Len() int           { return len(q) }
func (q innerQueue[T]) Less(i, j int) bool { return q[i].Less(q[j]) }
func (q innerQueue[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].SetIndex(i)
	q[j].SetIndex(j)
}

func (q *innerQueue[T]) Push(item any) {
	n := len(*q)
	pqItem := item.(T)
	pqItem.SetIndex(n)
	*q = append(*q, pqItem)
}

func (q *innerQueue[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	item.SetIndex(-1) // for safety
	*q = old[:n-1]
	return item
}
