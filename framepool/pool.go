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

package framepool

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// DefaultSize is the number of slots in a pool unless otherwise specified.
// Three slots allow one frame to be written while one is queued and one is
// being uploaded.
const DefaultSize = 3

// MinimumSize is the smallest pool that can make progress. one slot in
// flight and one slot writable.
const MinimumSize = 2

// BytesPerPixel is fixed for all buffers in the pool.
const BytesPerPixel = 4

// Pool is a fixed set of reusable pixel buffers. It is owned by the producer
// side of the pipeline. AcquireForWrite() and Abandon() are intended to be
// called by a single producer but are safe if that isn't the case.
type Pool struct {
	slots  []*slot
	cursor atomic.Int64

	acquired  atomic.Uint64
	exhausted atomic.Uint64
	grown     atomic.Uint64
}

// NewPool is the preferred method of initialisation for the Pool type. Sizes
// smaller than MinimumSize are raised to MinimumSize.
func NewPool(size int) *Pool {
	if size < MinimumSize {
		size = MinimumSize
	}
	p := &Pool{
		slots: make([]*slot, size),
	}
	for i := range p.slots {
		p.slots[i] = &slot{}
		p.slots[i].refs.Store(1)
	}
	return p
}

// Size returns the number of slots in the pool.
func (p *Pool) Size() int {
	return len(p.slots)
}

// AcquireForWrite finds a slot that nobody else refers to and prepares it
// for a frame of the specified size. The returned pixels are valid until
// the slot is next acquired, which cannot happen until the claim on the slot
// has been passed on with BufferRef() and released, or given up with
// Abandon().
//
// Returns false if every slot is referenced. This is expected under load and
// the caller should drop the frame.
func (p *Pool) AcquireForWrite(width int, height int) (int, []byte, bool) {
	if width <= 0 || height <= 0 {
		return -1, nil, false
	}

	n := len(p.slots)
	start := int(p.cursor.Load())

	for i := 0; i < n; i++ {
		idx := (start + i) % n
		s := p.slots[idx]

		// a count of one means only the pool refers to the slot. the extra
		// reference taken here is the writer lease
		if !s.refs.CompareAndSwap(1, 2) {
			continue
		}
		s.leased.Store(true)

		// grow-only. a smaller frame reuses the existing allocation
		need := width * height * BytesPerPixel
		if len(s.data) < need {
			s.data = make([]byte, need)
			p.grown.Add(1)
		}
		s.width = width
		s.height = height

		p.cursor.Store(int64((idx + 1) % n))
		p.acquired.Add(1)

		return idx, s.data[:need], true
	}

	p.exhausted.Add(1)
	return -1, nil, false
}

// BufferRef returns a new shared handle to the slot's buffer. A writer lease
// taken by AcquireForWrite() is converted into the returned handle, otherwise
// the reference count is incremented.
//
// Must be called after the slot has been filled and before the handle is
// passed to the consumer.
func (p *Pool) BufferRef(idx int) (*Shared, bool) {
	if idx < 0 || idx >= len(p.slots) {
		return nil, false
	}

	s := p.slots[idx]
	if !s.leased.CompareAndSwap(true, false) {
		s.retain()
	}

	return &Shared{slot: s}, true
}

// Abandon gives up the writer lease taken by AcquireForWrite() without
// creating a handle. Has no effect if the slot is not leased.
func (p *Pool) Abandon(idx int) {
	if idx < 0 || idx >= len(p.slots) {
		return
	}
	s := p.slots[idx]
	if s.leased.CompareAndSwap(true, false) {
		s.release()
	}
}

// Stats is a snapshot of pool activity.
type Stats struct {
	Size int

	// number of successful calls to AcquireForWrite()
	Acquired uint64

	// number of calls to AcquireForWrite() that found no writable slot
	Exhausted uint64

	// number of times a slot's buffer was reallocated to a larger size
	Grown uint64

	// number of slots currently referenced outside of the pool
	InUse int

	// reference count for each slot, including the pool's own reference
	Refs []int
}

func (s Stats) String() string {
	r := make([]string, len(s.Refs))
	for i, c := range s.Refs {
		r[i] = fmt.Sprintf("%d", c)
	}
	return fmt.Sprintf("in use %d/%d [%s] acquired %d exhausted %d grown %d",
		s.InUse, s.Size, strings.Join(r, " "), s.Acquired, s.Exhausted, s.Grown)
}

// Stats returns a snapshot of the pool's activity.
func (p *Pool) Stats() Stats {
	st := Stats{
		Size:      len(p.slots),
		Acquired:  p.acquired.Load(),
		Exhausted: p.exhausted.Load(),
		Grown:     p.grown.Load(),
		Refs:      make([]int, len(p.slots)),
	}
	for i, s := range p.slots {
		st.Refs[i] = int(s.refs.Load())
		if st.Refs[i] > 1 {
			st.InUse++
		}
	}
	return st
}
