// This file is part of Dualview.
//
// Dualview is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dualview is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dualview.  If not, see <https://www.gnu.org/licenses/>.

// Package framequeue connects render sources to the GPU consumer. Queue is
// an unbounded lock-free queue for any number of producers and a single
// consumer. Channel is a bounded alternative that drops items when full.
//
// Both types are generic but in practice they carry *frame.Frame values.
package framequeue

import (
	"sync/atomic"
)

type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

// Queue is a multi-producer, single-consumer queue. Push() can be called
// from any goroutine and never blocks. Pop(), Drain() and Empty() must only
// be called by the consumer.
//
// The zero value is not usable. Use NewQueue().
type Queue[T any] struct {
	// producers swap themselves in at the head
	head atomic.Pointer[node[T]]

	// consumer only. tail is always a stub node whose value has already been
	// taken
	tail *node[T]

	length atomic.Int64
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	stub := &node[T]{}
	q.head.Store(stub)
	q.tail = stub
	return q
}

// Push adds an item to the queue.
func (q *Queue[T]) Push(v T) {
	n := &node[T]{val: v}
	prev := q.head.Swap(n)
	q.length.Add(1)
	prev.next.Store(n)
}

// TryPush adds an item to the queue. The queue is unbounded so this always
// succeeds. It exists so that Queue can be used wherever a Channel can.
func (q *Queue[T]) TryPush(v T) bool {
	q.Push(v)
	return true
}

// Pop removes the oldest item from the queue. Returns false if there is
// nothing to remove.
//
// An item that is midway through a Push() is not visible until the push has
// completed.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T

	next := q.tail.next.Load()
	if next == nil {
		return zero, false
	}

	v := next.val
	next.val = zero
	q.tail = next
	q.length.Add(-1)

	return v, true
}

// Drain appends every available item to dst and returns the extended slice.
func (q *Queue[T]) Drain(dst []T) []T {
	for {
		v, ok := q.Pop()
		if !ok {
			return dst
		}
		dst = append(dst, v)
	}
}

// Empty returns true if there is nothing for Pop() to return.
func (q *Queue[T]) Empty() bool {
	return q.tail.next.Load() == nil
}

// Len returns the approximate number of items in the queue.
func (q *Queue[T]) Len() int {
	return int(max(q.length.Load(), 0))
}
