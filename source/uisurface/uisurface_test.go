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

package uisurface_test

import (
	"context"
	"testing"
	"time"

	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/source/uisurface"
	"github.com/dualview/dualview/test"
)

type paint struct {
	width, height int
	dirty         []frame.Rect
	pixels        []byte
}

type recorder struct {
	paints []paint
	refuse bool
}

func (r *recorder) Paint(pixels []byte, width int, height int, dirty []frame.Rect) bool {
	if r.refuse {
		return false
	}
	r.paints = append(r.paints, paint{
		width:  width,
		height: height,
		dirty:  append([]frame.Rect(nil), dirty...),
		pixels: append([]byte(nil), pixels...),
	})
	return true
}

func TestFirstPaintIsFull(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 320, 200, 30)

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	test.ExpectSuccess(t, s.Step(t0))
	test.DemandEquality(t, len(rec.paints), 1)
	test.ExpectEquality(t, len(rec.paints[0].dirty), 0)
	test.ExpectEquality(t, rec.paints[0].width, 320)
	test.ExpectEquality(t, len(rec.paints[0].pixels), 320*200*4)

	// the corner of the surface is the status bar. the colour has been
	// converted to BGRA
	px := rec.paints[0].pixels
	test.ExpectEquality(t, px[0], byte(0x48))
	test.ExpectEquality(t, px[2], byte(0x30))
	test.ExpectEquality(t, px[3], byte(0xff))

	// nothing has changed
	test.ExpectFailure(t, s.Step(t0))
	test.ExpectEquality(t, len(rec.paints), 1)
}

func TestPartialPaints(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 320, 200, 30)

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Step(t0)

	// one second later the clock has changed and the caret has moved
	test.ExpectSuccess(t, s.Step(t0.Add(time.Second)))
	test.DemandEquality(t, len(rec.paints), 2)

	p := rec.paints[1]
	test.ExpectInequality(t, len(p.dirty), 0)

	bb := frame.BoundingBox(p.dirty, p.width, p.height)
	test.ExpectFailure(t, bb == frame.Rect{W: 320, H: 200})

	for _, r := range p.dirty {
		test.ExpectSuccess(t, r.X >= 0 && r.Y >= 0 && r.X+r.W <= 320 && r.Y+r.H <= 200, r)
	}

	// half a second later the caret blinks off but the clock hasn't changed
	test.ExpectSuccess(t, s.Step(t0.Add(1500*time.Millisecond)))
	test.DemandEquality(t, len(rec.paints), 3)
	for _, r := range rec.paints[2].dirty {
		test.ExpectSuccess(t, r.Y >= 24, r)
	}
}

func TestResize(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 320, 200, 30)

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Step(t0)

	test.ExpectFailure(t, s.Resize(0, 10))
	test.ExpectSuccess(t, s.Resize(640, 400))
	w, h := s.Size()
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, h, 400)

	test.ExpectSuccess(t, s.Step(t0))
	test.DemandEquality(t, len(rec.paints), 2)
	test.ExpectEquality(t, rec.paints[1].width, 640)
	test.ExpectEquality(t, len(rec.paints[1].dirty), 0)
}

func TestRefusedPaint(t *testing.T) {
	rec := &recorder{refuse: true}
	s := uisurface.New(rec, 64, 64, 30)
	test.ExpectFailure(t, s.Step(time.Now()))
}

func TestRefusedResizePaint(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 320, 200, 30)

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	test.DemandSuccess(t, s.Step(t0))

	// the full paint at the new size is refused
	rec.refuse = true
	test.DemandSuccess(t, s.Resize(400, 240))
	test.ExpectFailure(t, s.Step(t0))

	// the next accepted paint must still be a full paint even though the
	// clock and caret have changed in the meantime
	rec.refuse = false
	test.ExpectSuccess(t, s.Step(t0.Add(time.Second)))
	test.DemandEquality(t, len(rec.paints), 2)
	test.ExpectEquality(t, rec.paints[1].width, 400)
	test.ExpectEquality(t, rec.paints[1].height, 240)
	test.ExpectEquality(t, len(rec.paints[1].dirty), 0)
	test.ExpectEquality(t, len(rec.paints[1].pixels), 400*240*4)

	// nothing is outstanding
	test.ExpectFailure(t, s.Step(t0.Add(time.Second)))
	test.ExpectEquality(t, len(rec.paints), 2)
}

func TestRefusedCaretPaint(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 320, 200, 30)

	// the caret is visible on even half seconds
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	test.DemandSuccess(t, s.Step(t0))

	// the caret blinks off but the paint is refused
	rec.refuse = true
	test.ExpectFailure(t, s.Step(t0.Add(500*time.Millisecond)))

	// nothing else changes but the cleared caret is painted again
	rec.refuse = false
	test.ExpectSuccess(t, s.Step(t0.Add(500*time.Millisecond)))
	test.DemandEquality(t, len(rec.paints), 2)

	p := rec.paints[1]
	test.DemandEquality(t, len(p.dirty), 1)
	r := p.dirty[0]
	test.ExpectEquality(t, r.W, 2)
	test.ExpectSuccess(t, r.Y >= 24, r)

	// the caret area has been cleared to the text field colour
	o := (r.Y*p.width + r.X) * 4
	test.ExpectEquality(t, p.pixels[o], byte(0x08))
	test.ExpectEquality(t, p.pixels[o+3], byte(0xff))

	test.ExpectFailure(t, s.Step(t0.Add(500*time.Millisecond)))
}

func TestRefusedPaintsCollapse(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 320, 200, 30)

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	test.DemandSuccess(t, s.Step(t0))

	// the caret moves every second so the outstanding rectangles pile up
	rec.refuse = true
	tm := t0
	for range 20 {
		tm = tm.Add(time.Second)
		test.ExpectFailure(t, s.Step(tm))
	}

	// too many rectangles have been carried over and a full paint is sent
	rec.refuse = false
	test.ExpectSuccess(t, s.Step(tm))
	test.DemandEquality(t, len(rec.paints), 2)
	test.ExpectEquality(t, len(rec.paints[1].dirty), 0)
}

func TestRun(t *testing.T) {
	rec := &recorder{}
	s := uisurface.New(rec, 64, 64, 200)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	test.ExpectSuccess(t, s.Run(ctx))
	test.ExpectInequality(t, len(rec.paints), 0)
	test.ExpectEquality(t, s.Name(), uisurface.Name)
}
