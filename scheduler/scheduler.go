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

// Package scheduler is the consumer side of the frame pipeline. Once per
// display tick the Scheduler takes every pending frame, discards the frames
// that can't or needn't be uploaded, uploads the rest to a texture stage and
// draws the result.
//
// All Scheduler methods must be called from the thread that owns the GPU
// context. Producers only ever touch the Pending queue.
package scheduler

import (
	"fmt"
	"time"

	"github.com/dualview/dualview/assert"
	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/texstage"
)

// Pending is the consumer view of a frame queue.
type Pending interface {
	Drain(dst []*frame.Frame) []*frame.Frame
	Empty() bool
}

// Result summarises the work done by one call to Upload().
type Result struct {
	// frames taken from the queue
	Drained int

	// frames discarded because they had no pixels or a bad region
	Invalid int

	// frames discarded by the coalescer
	Skipped int

	// frames uploaded to the texture
	Uploaded int

	// frames that were selected for upload but failed
	Failed int
}

func (r Result) String() string {
	return fmt.Sprintf("drained %d invalid %d skipped %d uploaded %d failed %d",
		r.Drained, r.Invalid, r.Skipped, r.Uploaded, r.Failed)
}

// Stats are the accumulated results of every call to Upload().
type Stats struct {
	Ticks int
	Result

	// age of the most recently uploaded frame at the time of upload
	Latency time.Duration
}

// Scheduler moves frames from a Pending queue to a texture stage.
type Scheduler struct {
	name    string
	pending Pending
	stage   *texstage.Stage

	coalescer Coalescer
	now       func() time.Time
	fps       *FPSCounter
	onFPS     func(int)

	thread assert.Thread

	// reused between calls to Upload()
	batch []*frame.Frame

	stats Stats
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The SkipResizing coalescer is used unless SetCoalescer() is called.
func NewScheduler(name string, pending Pending, stage *texstage.Stage) *Scheduler {
	return &Scheduler{
		name:      name,
		pending:   pending,
		stage:     stage,
		coalescer: SkipResizing{},
		now:       time.Now,
		fps:       NewFPSCounter(nil),
	}
}

// Name of the scheduler.
func (sch *Scheduler) Name() string {
	return sch.name
}

// Stage returns the texture stage being uploaded to.
func (sch *Scheduler) Stage() *texstage.Stage {
	return sch.stage
}

// SetCoalescer changes how frames are selected for upload.
func (sch *Scheduler) SetCoalescer(c Coalescer) {
	if c == nil {
		c = SkipResizing{}
	}
	sch.coalescer = c
}

// SetClock replaces the clock used by the frame rate counter and the
// latency measurement.
func (sch *Scheduler) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	sch.now = now
	sch.fps = NewFPSCounter(now)
}

// OnFPS sets the function to call every time the frame rate is measured.
func (sch *Scheduler) OnFPS(f func(int)) {
	sch.onFPS = f
}

// FPS returns the most recent frame rate measurement.
func (sch *Scheduler) FPS() int {
	return sch.fps.FPS()
}

// HasPending returns true if there are frames waiting to be uploaded. It
// never blocks and can be called from any goroutine.
func (sch *Scheduler) HasPending() bool {
	return !sch.pending.Empty()
}

// Stats returns the accumulated results.
func (sch *Scheduler) Stats() Stats {
	return sch.stats
}

// Upload takes every pending frame and uploads the ones selected by the
// coalescer. Every frame taken from the queue is released before Upload()
// returns.
func (sch *Scheduler) Upload() Result {
	sch.thread.Check("scheduler")

	var res Result

	sch.batch = sch.pending.Drain(sch.batch[:0])
	defer func() {
		clear(sch.batch)
		sch.batch = sch.batch[:0]
	}()

	res.Drained = len(sch.batch)
	if res.Drained == 0 {
		return res
	}

	// invalid frames are removed before coalescing
	valid := sch.batch[:0]
	for _, f := range sch.batch {
		if !f.Valid() {
			res.Invalid++
			f.Release()
			continue
		}
		valid = append(valid, f)
	}

	keep, skip := sch.coalescer.Select(valid)

	for _, f := range skip {
		f.Release()
	}
	res.Skipped = len(skip)

	now := sch.now()

	for _, f := range keep {
		if sch.stage.Upload(f) {
			res.Uploaded++
			sch.stats.Latency = f.Age(now)
		} else {
			res.Failed++
		}
		f.Release()
	}

	if res.Uploaded > 0 {
		if fps, ok := sch.fps.Tick(); ok {
			logger.Logf(logger.Debug, sch.name, "%d fps", fps)
			if sch.onFPS != nil {
				sch.onFPS(fps)
			}
		}
	}

	sch.accumulate(res)

	return res
}

// UploadAndDraw uploads pending frames and then clears the view and draws
// the texture.
func (sch *Scheduler) UploadAndDraw(viewWidth int, viewHeight int) Result {
	res := sch.Upload()
	sch.stage.Present(viewWidth, viewHeight)
	return res
}

func (sch *Scheduler) accumulate(res Result) {
	sch.stats.Ticks++
	sch.stats.Drained += res.Drained
	sch.stats.Invalid += res.Invalid
	sch.stats.Skipped += res.Skipped
	sch.stats.Uploaded += res.Uploaded
	sch.stats.Failed += res.Failed
}
