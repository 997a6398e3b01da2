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

	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/scheduler"
	"github.com/dualview/dualview/test"
)

func sized(w int, h int) *frame.Frame {
	return &frame.Frame{Width: w, Height: h, FullWidth: w, FullHeight: h}
}

func partial(w int, h int) *frame.Frame {
	return &frame.Frame{X: 1, Width: w - 1, Height: h, FullWidth: w, FullHeight: h}
}

func TestSkipResizing(t *testing.T) {
	f1 := sized(100, 100)
	f2 := sized(100, 100)
	f3 := sized(200, 200)

	// a frame is skipped when the next frame is a different size
	keep, skip := scheduler.SkipResizing{}.Select([]*frame.Frame{f1, f2, f3})
	test.DemandEquality(t, len(keep), 2)
	test.DemandEquality(t, len(skip), 1)
	test.ExpectEquality(t, keep[0], f1)
	test.ExpectEquality(t, keep[1], f3)
	test.ExpectEquality(t, skip[0], f2)
}

func TestSkipResizingEdges(t *testing.T) {
	keep, skip := scheduler.SkipResizing{}.Select(nil)
	test.ExpectEquality(t, len(keep), 0)
	test.ExpectEquality(t, len(skip), 0)

	one := sized(10, 10)
	keep, _ = scheduler.SkipResizing{}.Select([]*frame.Frame{one})
	test.DemandEquality(t, len(keep), 1)
	test.ExpectEquality(t, keep[0], one)

	// alternating sizes leave only the last frame
	frames := []*frame.Frame{sized(1, 1), sized(2, 2), sized(1, 1), sized(2, 2)}
	keep, skip = scheduler.SkipResizing{}.Select(frames)
	test.DemandEquality(t, len(keep), 1)
	test.ExpectEquality(t, keep[0], frames[3])
	test.ExpectEquality(t, len(skip), 3)
}

func TestLastPerSize(t *testing.T) {
	a1, a2, b1, b2 := sized(10, 10), sized(10, 10), sized(20, 20), sized(20, 20)
	keep, skip := scheduler.LastPerSize{}.Select([]*frame.Frame{a1, a2, b1, b2})
	test.DemandEquality(t, len(keep), 2)
	test.ExpectEquality(t, keep[0], a2)
	test.ExpectEquality(t, keep[1], b2)
	test.ExpectEquality(t, len(skip), 2)

	// a partial last frame keeps the entire run
	p1, p2 := sized(10, 10), partial(10, 10)
	keep, skip = scheduler.LastPerSize{}.Select([]*frame.Frame{p1, p2})
	test.ExpectEquality(t, len(keep), 2)
	test.ExpectEquality(t, len(skip), 0)
}

func TestCoalescerByName(t *testing.T) {
	_, ok := scheduler.CoalescerByName(environment.CoalesceLastPerSize).(scheduler.LastPerSize)
	test.ExpectSuccess(t, ok)
	_, ok = scheduler.CoalescerByName(environment.CoalesceSkipResizing).(scheduler.SkipResizing)
	test.ExpectSuccess(t, ok)
	_, ok = scheduler.CoalescerByName("").(scheduler.SkipResizing)
	test.ExpectSuccess(t, ok)
}
