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

package scheduler

import (
	"time"
)

// FPSCounter counts events over one second windows. The count is emitted
// and reset to zero once a full second has passed since the window began.
type FPSCounter struct {
	now func() time.Time

	started bool
	start   time.Time
	count   int

	last int
}

// NewFPSCounter is the preferred method of initialisation for the FPSCounter
// type. The now argument can be nil, in which case time.Now() is used.
func NewFPSCounter(now func() time.Time) *FPSCounter {
	if now == nil {
		now = time.Now
	}
	return &FPSCounter{now: now}
}

// Tick counts one event. Returns the count and true if the window has just
// ended.
func (c *FPSCounter) Tick() (int, bool) {
	t := c.now()

	if !c.started {
		c.started = true
		c.start = t
	}

	c.count++

	if t.Sub(c.start) >= time.Second {
		c.last = c.count
		c.count = 0
		c.start = t
		return c.last, true
	}

	return 0, false
}

// FPS returns the most recently emitted count. Once a full window has
// passed without any events the count is zero.
func (c *FPSCounter) FPS() int {
	if c.started && c.now().Sub(c.start) >= 2*time.Second {
		return 0
	}
	return c.last
}

// Reset the counter. The next Tick() starts a new window.
func (c *FPSCounter) Reset() {
	c.started = false
	c.count = 0
	c.last = 0
}
