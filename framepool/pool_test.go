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

package framepool_test

import (
	"sync"
	"testing"

	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/test"
)

func TestMinimumSize(t *testing.T) {
	test.ExpectEquality(t, framepool.NewPool(0).Size(), framepool.MinimumSize)
	test.ExpectEquality(t, framepool.NewPool(1).Size(), framepool.MinimumSize)
	test.ExpectEquality(t, framepool.NewPool(framepool.DefaultSize).Size(), 3)
}

func TestExhaustion(t *testing.T) {
	p := framepool.NewPool(3)

	seen := make(map[int]bool)
	for range 3 {
		idx, pix, ok := p.AcquireForWrite(4, 4)
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, len(pix), 4*4*4)
		test.ExpectFailure(t, seen[idx])
		seen[idx] = true
	}

	idx, pix, ok := p.AcquireForWrite(4, 4)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, idx, -1)
	test.ExpectEquality(t, len(pix), 0)

	st := p.Stats()
	test.ExpectEquality(t, st.Acquired, uint64(3))
	test.ExpectEquality(t, st.Exhausted, uint64(1))
	test.ExpectEquality(t, st.InUse, 3)
}

func TestInvalidDimensions(t *testing.T) {
	p := framepool.NewPool(3)
	_, _, ok := p.AcquireForWrite(0, 10)
	test.ExpectFailure(t, ok)
	_, _, ok = p.AcquireForWrite(10, -1)
	test.ExpectFailure(t, ok)
}

func TestReleaseMakesSlotWritable(t *testing.T) {
	p := framepool.NewPool(2)

	a, _, ok := p.AcquireForWrite(2, 2)
	test.DemandSuccess(t, ok)
	sa, ok := p.BufferRef(a)
	test.DemandSuccess(t, ok)

	b, _, ok := p.AcquireForWrite(2, 2)
	test.DemandSuccess(t, ok)
	sb, ok := p.BufferRef(b)
	test.DemandSuccess(t, ok)

	_, _, ok = p.AcquireForWrite(2, 2)
	test.ExpectFailure(t, ok)

	sa.Release()
	c, _, ok := p.AcquireForWrite(2, 2)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c, a)

	// releasing twice has no further effect
	sa.Release()
	test.ExpectEquality(t, p.Stats().Refs[a], 2)

	p.Abandon(c)
	sb.Release()
	test.ExpectEquality(t, p.Stats().InUse, 0)
}

func TestAbandon(t *testing.T) {
	p := framepool.NewPool(2)
	idx, _, ok := p.AcquireForWrite(8, 8)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Stats().Refs[idx], 2)

	p.Abandon(idx)
	test.ExpectEquality(t, p.Stats().Refs[idx], 1)

	// abandoning a slot that isn't leased does nothing
	p.Abandon(idx)
	p.Abandon(99)
	test.ExpectEquality(t, p.Stats().Refs[idx], 1)
}

func TestHeldHandlePreventsReuse(t *testing.T) {
	p := framepool.NewPool(3)

	// with N-1 slots held there is always one writable slot
	held := make([]*framepool.Shared, 0, 2)
	for range 2 {
		idx, _, ok := p.AcquireForWrite(1, 1)
		test.DemandSuccess(t, ok)
		sh, _ := p.BufferRef(idx)
		held = append(held, sh)
	}

	for range 10 {
		idx, _, ok := p.AcquireForWrite(1, 1)
		test.DemandSuccess(t, ok)
		sh, _ := p.BufferRef(idx)
		sh.Release()
	}

	for _, sh := range held {
		sh.Release()
	}
	test.ExpectEquality(t, p.Stats().InUse, 0)
}

func TestRetain(t *testing.T) {
	p := framepool.NewPool(2)
	idx, _, _ := p.AcquireForWrite(1, 1)
	sh, _ := p.BufferRef(idx)
	sh2 := sh.Retain()
	test.ExpectEquality(t, p.Stats().Refs[idx], 3)

	sh.Release()
	test.ExpectSuccess(t, sh.Released())
	test.ExpectFailure(t, sh2.Released())
	test.ExpectEquality(t, sh.Bytes() == nil, true)
	test.ExpectEquality(t, sh.Retain() == nil, true)

	sh2.Release()
	test.ExpectEquality(t, p.Stats().Refs[idx], 1)
}

func TestGrowOnly(t *testing.T) {
	p := framepool.NewPool(2)

	idx, pix, _ := p.AcquireForWrite(10, 10)
	test.ExpectEquality(t, len(pix), 400)
	p.Abandon(idx)

	// same slot is not guaranteed so cycle through all slots at the large size
	idx, _, _ = p.AcquireForWrite(10, 10)
	p.Abandon(idx)
	test.ExpectEquality(t, p.Stats().Grown, uint64(2))

	// smaller frames reuse the existing buffers
	for range 4 {
		idx, pix, _ = p.AcquireForWrite(5, 2)
		test.ExpectEquality(t, len(pix), 40)
		sh, _ := p.BufferRef(idx)
		test.ExpectEquality(t, sh.Width(), 5)
		test.ExpectEquality(t, sh.Height(), 2)
		test.ExpectEquality(t, sh.Len(), 40)
		sh.Release()
	}
	test.ExpectEquality(t, p.Stats().Grown, uint64(2))
}

func TestCrossGoroutine(t *testing.T) {
	p := framepool.NewPool(3)

	const frames = 500
	ch := make(chan *framepool.Shared, 2)

	var wg sync.WaitGroup
	wg.Add(1)

	var mismatches int
	go func() {
		defer wg.Done()
		for sh := range ch {
			b := sh.Bytes()
			v := b[0]
			for _, c := range b {
				if c != v {
					mismatches++
					break
				}
			}
			sh.Release()
		}
	}()

	var n byte
	for sent := 0; sent < frames; {
		idx, pix, ok := p.AcquireForWrite(16, 16)
		if !ok {
			continue
		}
		n++
		for i := range pix {
			pix[i] = n
		}
		sh, _ := p.BufferRef(idx)
		ch <- sh
		sent++
	}
	close(ch)
	wg.Wait()

	test.ExpectEquality(t, mismatches, 0)
	test.ExpectEquality(t, p.Stats().InUse, 0)
}
