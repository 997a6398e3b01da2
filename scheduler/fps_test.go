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

package scheduler_test

import (
	"testing"
	"time"

	"github.com/dualview/dualview/scheduler"
	"github.com/dualview/dualview/test"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestFPSCounter(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	c := scheduler.NewFPSCounter(clk.now)

	var emitted int
	for range 100 {
		if _, ok := c.Tick(); ok {
			emitted++
		}
		clk.advance(10 * time.Millisecond)
	}

	// 100 ticks at 10ms intervals only span 990ms
	test.ExpectEquality(t, emitted, 0)
	test.ExpectEquality(t, c.FPS(), 0)

	n, ok := c.Tick()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, 101)
	test.ExpectEquality(t, c.FPS(), 101)

	// the count was reset so another tick straight away doesn't emit
	n, ok = c.Tick()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, n, 0)

	// never more than once a second
	for range 100 {
		clk.advance(time.Millisecond)
		_, ok := c.Tick()
		test.ExpectFailure(t, ok)
	}

	clk.advance(time.Second)
	n, ok = c.Tick()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, 102)

	c.Reset()
	test.ExpectEquality(t, c.FPS(), 0)
}

func TestFPSCounterIdle(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	c := scheduler.NewFPSCounter(clk.now)

	// the 101st tick is one second after the first
	for range 101 {
		c.Tick()
		clk.advance(10 * time.Millisecond)
	}
	test.DemandEquality(t, c.FPS(), 101)

	// events stop. the count holds until a further window has passed
	// without any events
	clk.advance(1980 * time.Millisecond)
	test.ExpectEquality(t, c.FPS(), 101)
	clk.advance(10 * time.Millisecond)
	test.ExpectEquality(t, c.FPS(), 0)

	// the first event after the pause ends the stale window
	n, ok := c.Tick()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, c.FPS(), 1)
}
