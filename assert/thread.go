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

package assert

import (
	"fmt"
	"sync/atomic"
)

// Thread records the goroutine that first calls Check() and, when assertions
// are enabled, panics if Check() is later called from any other goroutine.
// Used to make sure that code which must run on the GUI thread does so.
//
// The zero value is ready to use.
type Thread struct {
	owner atomic.Uint64
}

// Check that the calling goroutine is the same as the one that made the
// first call. Does nothing unless built with the "assertions" tag.
func (th *Thread) Check(where string) {
	if !enabled {
		return
	}
	if err := th.check(GetGoRoutineID()); err != nil {
		panic(fmt.Sprintf("%s: %v", where, err))
	}
}

func (th *Thread) check(id uint64) error {
	if th.owner.CompareAndSwap(0, id) {
		return nil
	}
	if owner := th.owner.Load(); owner != id {
		return fmt.Errorf("called from goroutine %d but owned by goroutine %d", id, owner)
	}
	return nil
}

// Reset forgets the owning goroutine. The next call to Check() will claim
// ownership.
func (th *Thread) Reset() {
	th.owner.Store(0)
}
