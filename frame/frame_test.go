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

package frame_test

import (
	"testing"

	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/test"
)

func TestBoundingBox(t *testing.T) {
	full := frame.Rect{W: 100, H: 50}

	test.ExpectEquality(t, frame.BoundingBox(nil, 100, 50), full)

	bb := frame.BoundingBox([]frame.Rect{{X: 10, Y: 10, W: 5, H: 5}, {X: 30, Y: 2, W: 10, H: 3}}, 100, 50)
	test.ExpectEquality(t, bb, frame.Rect{X: 10, Y: 2, W: 30, H: 13})

	// clamped to frame
	bb = frame.BoundingBox([]frame.Rect{{X: -5, Y: 40, W: 20, H: 20}}, 100, 50)
	test.ExpectEquality(t, bb, frame.Rect{X: 0, Y: 40, W: 15, H: 10})

	// entirely outside the frame falls back to the full frame
	bb = frame.BoundingBox([]frame.Rect{{X: 200, Y: 200, W: 10, H: 10}}, 100, 50)
	test.ExpectEquality(t, bb, full)

	// zero area
	bb = frame.BoundingBox([]frame.Rect{{X: 5, Y: 5}}, 100, 50)
	test.ExpectEquality(t, bb, full)
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func TestCopyRegionPartial(t *testing.T) {
	const w, h = 8, 6
	src := make([]byte, w*h*4)
	dst := make([]byte, w*h*4)
	fill(src, 0xff)
	fill(dst, 0x11)

	r := frame.Rect{X: 2, Y: 1, W: 3, H: 2}
	frame.CopyRegion(dst, src, w, r)

	for y := range h {
		for x := range w {
			o := (y*w + x) * 4
			inside := x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
			if inside {
				test.ExpectEquality(t, dst[o], byte(0xff))
			} else {
				test.ExpectEquality(t, dst[o], byte(0x11))
			}
		}
	}
}

func TestCopyRegionFull(t *testing.T) {
	const w, h = 4, 4
	src := make([]byte, w*h*4)
	dst := make([]byte, w*h*4)
	for i := range src {
		src[i] = byte(i)
	}
	frame.CopyRegion(dst, src, w, frame.Rect{W: w, H: h})
	test.ExpectEquality(t, string(dst), string(src))

	// whole rows
	fill(dst, 0)
	frame.CopyRegion(dst, src, w, frame.Rect{Y: 1, W: w, H: 2})
	test.ExpectEquality(t, dst[0], byte(0))
	test.ExpectEquality(t, dst[w*4], src[w*4])
	test.ExpectEquality(t, dst[3*w*4], byte(0))
}

func newFrame(t *testing.T, w int, h int) *frame.Frame {
	t.Helper()
	p := framepool.NewPool(2)
	idx, _, ok := p.AcquireForWrite(w, h)
	test.DemandSuccess(t, ok)
	sh, _ := p.BufferRef(idx)
	return &frame.Frame{
		Width: w, Height: h,
		FullWidth: w, FullHeight: h,
		Buffer: sh,
	}
}

func TestValid(t *testing.T) {
	f := newFrame(t, 10, 10)
	test.ExpectSuccess(t, f.Valid())
	test.ExpectSuccess(t, f.Full())

	f.X = 5
	test.ExpectFailure(t, f.Valid())
	f.Width = 5
	test.ExpectSuccess(t, f.Valid())
	test.ExpectFailure(t, f.Full())

	f.Release()
	test.ExpectFailure(t, f.Valid())
	f.Release()

	var nobuf frame.Frame
	nobuf.FullWidth, nobuf.FullHeight, nobuf.Width, nobuf.Height = 1, 1, 1, 1
	test.ExpectFailure(t, nobuf.Valid())

	var nilFrame *frame.Frame
	test.ExpectFailure(t, nilFrame.Valid())
}

func TestValidShortBuffer(t *testing.T) {
	f := newFrame(t, 4, 4)
	defer f.Release()

	// frame claims to be larger than the buffer
	f.FullWidth = 8
	f.Width = 8
	test.ExpectFailure(t, f.Valid())
}
