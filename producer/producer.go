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

// Package producer is the render source side of the frame pipeline. A
// Producer is called by the render source each time it paints. It copies the
// changed part of the paint into a pool buffer and queues a frame for the
// consumer.
//
// The render source's thread is never blocked. If the pool is exhausted or
// the sink is full the paint is dropped.
package producer

import (
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/logger"
)

// Sink accepts frames from a producer. TryPush() must not block. A frame
// that is rejected remains the responsibility of the caller.
type Sink interface {
	TryPush(*frame.Frame) bool
}

// thresholds for diagnostic logging
const (
	slowPaint  = 10 * time.Millisecond
	paintStall = 500 * time.Millisecond
)

// Producer turns paints from a render source into frames.
type Producer struct {
	name string
	pool *framepool.Pool
	sink Sink

	// the time of the previous paint. only accessed from the paint thread
	lastPaint time.Time

	// the clock can be replaced for testing
	now func() time.Time

	painted      atomic.Uint64
	queued       atomic.Uint64
	droppedPool  atomic.Uint64
	droppedSink  atomic.Uint64
	rejected     atomic.Uint64
	slowPaints   atomic.Uint64
	stalledPaint atomic.Uint64
}

// NewProducer is the preferred method of initialisation for the Producer
// type. The name is used in log entries and is recorded in every frame.
func NewProducer(name string, pool *framepool.Pool, sink Sink) *Producer {
	return &Producer{
		name: name,
		pool: pool,
		sink: sink,
		now:  time.Now,
	}
}

// SetClock replaces the function used to timestamp paints.
func (p *Producer) SetClock(now func() time.Time) {
	p.now = now
}

// Name of the producer.
func (p *Producer) Name() string {
	return p.name
}

// Paint queues a frame made from pixels, which holds an entire frame of
// width*height pixels, four bytes per pixel. Only the bounding box of the
// dirty rectangles is copied. An empty dirty list means the entire frame has
// changed.
//
// Returns true if the frame was queued. The pixels are not retained after
// Paint() returns.
func (p *Producer) Paint(pixels []byte, width int, height int, dirty []frame.Rect) bool {
	start := p.now()
	defer p.timing(start)

	p.painted.Add(1)

	if width <= 0 || height <= 0 {
		p.rejected.Add(1)
		logger.Logf(logger.Allow, p.name, "paint rejected: invalid dimensions %dx%d", width, height)
		return false
	}

	need := width * height * framepool.BytesPerPixel
	if len(pixels) < need {
		p.rejected.Add(1)
		logger.Logf(logger.Allow, p.name, "paint rejected: %d bytes is too short for %dx%d", len(pixels), width, height)
		return false
	}

	bb := frame.BoundingBox(dirty, width, height)

	idx, buf, ok := p.pool.AcquireForWrite(width, height)
	if !ok {
		p.droppedPool.Add(1)
		logger.Logf(logger.Debug, p.name, "frame dropped: no free buffer (%dx%d)", width, height)
		return false
	}

	frame.CopyRegion(buf, pixels[:need], width, bb)

	sh, ok := p.pool.BufferRef(idx)
	if !ok {
		p.pool.Abandon(idx)
		p.droppedPool.Add(1)
		return false
	}

	f := &frame.Frame{
		X:          bb.X,
		Y:          bb.Y,
		Width:      bb.W,
		Height:     bb.H,
		FullWidth:  width,
		FullHeight: height,
		Buffer:     sh,
		Dirty:      append([]frame.Rect(nil), dirty...),
		Format:     frame.FormatBGRA,
		Created:    start,
		Source:     p.name,
	}

	if !p.sink.TryPush(f) {
		f.Release()
		p.droppedSink.Add(1)
		logger.Logf(logger.Debug, p.name, "frame dropped: queue full (%dx%d)", width, height)
		return false
	}

	p.queued.Add(1)
	return true
}

// PaintPointer is the same as Paint() except that the pixels are supplied
// as a pointer to memory owned by the render source. The memory is only read
// for the duration of the call.
func (p *Producer) PaintPointer(ptr unsafe.Pointer, width int, height int, dirty []frame.Rect) bool {
	if ptr == nil || width <= 0 || height <= 0 {
		p.painted.Add(1)
		p.rejected.Add(1)
		logger.Logf(logger.Allow, p.name, "paint rejected: no pixels or invalid dimensions %dx%d", width, height)
		return false
	}
	pixels := unsafe.Slice((*byte)(ptr), width*height*framepool.BytesPerPixel)
	return p.Paint(pixels, width, height, dirty)
}

func (p *Producer) timing(start time.Time) {
	end := p.now()

	if d := end.Sub(start); d > slowPaint {
		p.slowPaints.Add(1)
		logger.Logf(logger.Allow, p.name, "slow paint: %.2fms", float64(d.Microseconds())/1000.0)
	}

	if !p.lastPaint.IsZero() {
		if gap := start.Sub(p.lastPaint); gap > paintStall {
			p.stalledPaint.Add(1)
			logger.Logf(logger.Allow, p.name, "paint stalled: %dms since previous paint", gap.Milliseconds())
		}
	}
	p.lastPaint = start
}

// Stats is a snapshot of producer activity.
type Stats struct {
	Painted     uint64
	Queued      uint64
	DroppedPool uint64
	DroppedSink uint64
	Rejected    uint64
	SlowPaints  uint64
	Stalls      uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("painted %d queued %d dropped %d/%d rejected %d slow %d stalls %d",
		s.Painted, s.Queued, s.DroppedPool, s.DroppedSink, s.Rejected, s.SlowPaints, s.Stalls)
}

// Dropped is the total number of frames dropped for any reason.
func (s Stats) Dropped() uint64 {
	return s.DroppedPool + s.DroppedSink
}

// Stats returns a snapshot of the producer's activity.
func (p *Producer) Stats() Stats {
	return Stats{
		Painted:     p.painted.Load(),
		Queued:      p.queued.Load(),
		DroppedPool: p.droppedPool.Load(),
		DroppedSink: p.droppedSink.Load(),
		Rejected:    p.rejected.Load(),
		SlowPaints:  p.slowPaints.Load(),
		Stalls:      p.stalledPaint.Load(),
	}
}
