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
	"sync/atomic"
)

// slot is one pixel buffer in the pool. the data slice, width and height are
// only written by the holder of the writer lease, which is only granted when
// refs is exactly one.
type slot struct {
	refs   atomic.Int32
	leased atomic.Bool

	data   []byte
	width  int
	height int
}

func (s *slot) retain() {
	s.refs.Add(1)
}

func (s *slot) release() {
	if s.refs.Add(-1) < 1 {
		panic("framepool: slot released more times than it was retained")
	}
}

// Shared is a reference counted, read-only handle to the pixel data of one
// pool slot. Each handle must be released exactly once. Release() is
// idempotent so a handle can be released defensively on every exit path.
type Shared struct {
	slot     *slot
	released atomic.Bool
}

// Bytes returns the pixel data. The slice is tightly packed, four bytes per
// pixel, with Width()*4 bytes per row. Returns nil once the handle has been
// released.
func (sh *Shared) Bytes() []byte {
	if sh.Released() {
		return nil
	}
	return sh.slot.data[:sh.slot.width*sh.slot.height*4]
}

// Len is the number of bytes returned by Bytes().
func (sh *Shared) Len() int {
	return len(sh.Bytes())
}

// Width of the frame held in the buffer.
func (sh *Shared) Width() int {
	if sh.Released() {
		return 0
	}
	return sh.slot.width
}

// Height of the frame held in the buffer.
func (sh *Shared) Height() int {
	if sh.Released() {
		return 0
	}
	return sh.slot.height
}

// Retain returns a new handle to the same buffer. The buffer will not be
// reused until both handles have been released. Returns nil if the handle
// has already been released.
func (sh *Shared) Retain() *Shared {
	if sh.Released() {
		return nil
	}
	sh.slot.retain()
	return &Shared{slot: sh.slot}
}

// Release drops the handle's reference to the buffer.
func (sh *Shared) Release() {
	if sh == nil {
		return
	}
	if sh.released.CompareAndSwap(false, true) {
		sh.slot.release()
	}
}

// Released returns true if Release() has been called.
func (sh *Shared) Released() bool {
	return sh == nil || sh.released.Load()
}
