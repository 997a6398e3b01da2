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

package producer_test

import (
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/framequeue"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/producer"
	"github.com/dualview/dualview/test"
)

func pattern(w int, h int, v byte) []byte {
	b := make([]byte, w*h*4)
	for i := range b {
		b[i] = v
	}
	return b
}

func TestPaint(t *testing.T) {
	pool := framepool.NewPool(3)
	q := framequeue.NewQueue[*frame.Frame]()
	p := producer.NewProducer("ui", pool, q)

	dirty := []frame.Rect{{X: 1, Y: 1, W: 2, H: 2}}
	test.ExpectSuccess(t, p.Paint(pattern(4, 4, 0xaa), 4, 4, dirty))

	f, ok := q.Pop()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, f.Valid())
	test.ExpectEquality(t, f.Region(), frame.Rect{X: 1, Y: 1, W: 2, H: 2})
	test.ExpectEquality(t, f.FullWidth, 4)
	test.ExpectEquality(t, f.FullHeight, 4)
	test.ExpectEquality(t, f.Format, frame.FormatBGRA)
	test.ExpectEquality(t, f.Source, "ui")
	test.ExpectEquality(t, len(f.Dirty), 1)

	// pixel inside the dirty rect has been copied
	test.ExpectEquality(t, f.Buffer.Bytes()[(1*4+1)*4], byte(0xaa))

	f.Release()
	test.ExpectEquality(t, pool.Stats().InUse, 0)

	st := p.Stats()
	test.ExpectEquality(t, st.Painted, uint64(1))
	test.ExpectEquality(t, st.Queued, uint64(1))
	test.ExpectEquality(t, st.Dropped(), uint64(0))
}

func TestPoolExhaustion(t *testing.T) {
	pool := framepool.NewPool(3)
	q := framequeue.NewQueue[*frame.Frame]()
	p := producer.NewProducer("video", pool, q)

	px := pattern(2, 2, 1)
	for range 3 {
		test.ExpectSuccess(t, p.Paint(px, 2, 2, nil))
	}

	// nothing has been consumed so the fourth paint is dropped
	test.ExpectFailure(t, p.Paint(px, 2, 2, nil))
	test.ExpectEquality(t, p.Stats().DroppedPool, uint64(1))
	test.ExpectEquality(t, q.Len(), 3)

	for _, f := range q.Drain(nil) {
		f.Release()
	}
	test.ExpectSuccess(t, p.Paint(px, 2, 2, nil))
}

func TestSinkFull(t *testing.T) {
	pool := framepool.NewPool(3)
	ch := framequeue.NewChannel[*frame.Frame](1)
	p := producer.NewProducer("video", pool, ch)

	px := pattern(2, 2, 1)
	test.ExpectSuccess(t, p.Paint(px, 2, 2, nil))
	test.ExpectFailure(t, p.Paint(px, 2, 2, nil))
	test.ExpectEquality(t, p.Stats().DroppedSink, uint64(1))
	test.ExpectEquality(t, ch.Dropped(), uint64(1))

	// the rejected frame gave its buffer back
	test.ExpectEquality(t, pool.Stats().InUse, 1)
}

func TestRejectedInput(t *testing.T) {
	pool := framepool.NewPool(3)
	q := framequeue.NewQueue[*frame.Frame]()
	p := producer.NewProducer("ui", pool, q)

	test.ExpectFailure(t, p.Paint(nil, 0, 10, nil))
	test.ExpectFailure(t, p.Paint(make([]byte, 10), 4, 4, nil))
	test.ExpectFailure(t, p.PaintPointer(nil, 4, 4, nil))
	test.ExpectEquality(t, p.Stats().Rejected, uint64(3))
	test.ExpectSuccess(t, q.Empty())
	test.ExpectEquality(t, pool.Stats().InUse, 0)
}

func TestPaintPointer(t *testing.T) {
	pool := framepool.NewPool(3)
	q := framequeue.NewQueue[*frame.Frame]()
	p := producer.NewProducer("ui", pool, q)

	px := pattern(3, 3, 0x42)
	test.ExpectSuccess(t, p.PaintPointer(unsafe.Pointer(&px[0]), 3, 3, nil))

	// changing the source after the paint does not affect the frame
	px[0] = 0

	f, ok := q.Pop()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, f.Buffer.Bytes()[0], byte(0x42))
	test.ExpectSuccess(t, f.Full())
	f.Release()
}

func TestTimingDiagnostics(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	pool := framepool.NewPool(3)
	q := framequeue.NewQueue[*frame.Frame]()
	p := producer.NewProducer("slow", pool, q)

	now := time.Unix(1000, 0)
	step := 20 * time.Millisecond
	p.SetClock(func() time.Time {
		now = now.Add(step)
		return now
	})

	px := pattern(1, 1, 0)
	p.Paint(px, 1, 1, nil)
	test.ExpectEquality(t, p.Stats().SlowPaints, uint64(1))

	for _, f := range q.Drain(nil) {
		f.Release()
	}

	step = time.Second
	p.Paint(px, 1, 1, nil)
	test.ExpectEquality(t, p.Stats().Stalls, uint64(1))

	w := &test.Writer{}
	logger.Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "slow: slow paint"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "slow: paint stalled"))
}
