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

package framequeue

import "sync/atomic"

// Channel is a bounded queue. Pushing to a full Channel drops the item and
// counts the drop.
type Channel[T any] struct {
	ch      chan T
	dropped atomic.Uint64
}

// NewChannel is the preferred method of initialisation for the Channel type.
// Capacity must be at least one.
func NewChannel[T any](capacity int) *Channel[T] {
	return &Channel[T]{
		ch: make(chan T, max(capacity, 1)),
	}
}

// TryPush adds an item to the channel without blocking. Returns false if the
// channel was full. Ownership of a rejected item stays with the caller.
func (c *Channel[T]) TryPush(v T) bool {
	select {
	case c.ch <- v:
		return true
	default:
		c.dropped.Add(1)
		return false
	}
}

// Pop removes the oldest item. Returns false if the channel is empty.
func (c *Channel[T]) Pop() (T, bool) {
	select {
	case v := <-c.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Drain appends every available item to dst and returns the extended slice.
func (c *Channel[T]) Drain(dst []T) []T {
	for {
		v, ok := c.Pop()
		if !ok {
			return dst
		}
		dst = append(dst, v)
	}
}

// Empty returns true if there is nothing to Pop().
func (c *Channel[T]) Empty() bool {
	return len(c.ch) == 0
}

// Len returns the number of items in the channel.
func (c *Channel[T]) Len() int {
	return len(c.ch)
}

// Cap returns the capacity of the channel.
func (c *Channel[T]) Cap() int {
	return cap(c.ch)
}

// Dropped returns the number of items rejected by TryPush().
func (c *Channel[T]) Dropped() uint64 {
	return c.dropped.Load()
}
