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
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
)

// Coalescer decides which of a batch of frames, in the order they were
// produced, need to be uploaded. Frames that are skipped are not uploaded
// but must still be released by the caller.
type Coalescer interface {
	Select(frames []*frame.Frame) (keep []*frame.Frame, skip []*frame.Frame)
}

// SkipResizing skips a frame if the frame that follows it has different
// dimensions. The final frame in a batch is always kept.
//
// Only frames immediately before a size change are skipped. A run of frames
// of the same size are all uploaded because each may have a different dirty
// region.
type SkipResizing struct{}

// Select implements the Coalescer interface.
func (SkipResizing) Select(frames []*frame.Frame) ([]*frame.Frame, []*frame.Frame) {
	var keep, skip []*frame.Frame
	for i, f := range frames {
		if i+1 < len(frames) && !f.SameSize(frames[i+1]) {
			skip = append(skip, f)
			continue
		}
		keep = append(keep, f)
	}
	return keep, skip
}

// LastPerSize keeps only the last frame of a run of frames of the same
// size. If the last frame of the run has a partial dirty region then the
// entire run is kept, otherwise earlier changes would be lost.
type LastPerSize struct{}

// Select implements the Coalescer interface.
func (LastPerSize) Select(frames []*frame.Frame) ([]*frame.Frame, []*frame.Frame) {
	var keep, skip []*frame.Frame

	start := 0
	for i := range frames {
		last := i+1 == len(frames) || !frames[i].SameSize(frames[i+1])
		if !last {
			continue
		}

		run := frames[start : i+1]
		start = i + 1

		if !run[len(run)-1].Full() {
			keep = append(keep, run...)
			continue
		}

		skip = append(skip, run[:len(run)-1]...)
		keep = append(keep, run[len(run)-1])
	}

	return keep, skip
}

// CoalescerByName returns the coalescer named by one of the environment
// Coalesce* constants. Unknown names return SkipResizing.
func CoalescerByName(name string) Coalescer {
	switch name {
	case environment.CoalesceLastPerSize:
		return LastPerSize{}
	}
	return SkipResizing{}
}
