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

// Package compositor builds the two frame pipelines that make up the shell,
// one for the video surface and one for the UI surface, and draws them on
// top of one another.
//
// The video layer is drawn first. The UI layer is drawn over it and is
// expected to be blended by its Device.
package compositor

import (
	"fmt"
	"strings"

	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/framequeue"
	"github.com/dualview/dualview/producer"
	"github.com/dualview/dualview/scheduler"
	"github.com/dualview/dualview/texstage"
)

// Names of the layers. Used for logging and in the HUD.
const (
	VideoLayer = "video"
	UILayer    = "ui"
)

// Layer is one complete frame pipeline.
type Layer struct {
	Name string

	Pool      *framepool.Pool
	Producer  *producer.Producer
	Stage     *texstage.Stage
	Scheduler *scheduler.Scheduler

	pending scheduler.Pending
}

// LayerStats is a snapshot of a layer's activity.
type LayerStats struct {
	Name      string
	FPS       int
	Pool      framepool.Stats
	Producer  producer.Stats
	Scheduler scheduler.Stats
	Stage     texstage.Stats
}

func (s LayerStats) String() string {
	return fmt.Sprintf("%s: %d fps; pool %s; %s; uploads %d skipped %d invalid %d; latency %.1fms",
		s.Name, s.FPS, s.Pool, s.Producer, s.Stage.Uploads, s.Scheduler.Skipped, s.Scheduler.Invalid,
		float64(s.Scheduler.Latency.Microseconds())/1000.0)
}

// DeviceCreator returns a new Device for the named layer.
type DeviceCreator func(layer string) texstage.Device

// Compositor owns the video and UI layers.
type Compositor struct {
	env *environment.Environment

	// video layer first, UI layer second
	layers []*Layer
}

// NewCompositor is the preferred method of initialisation for the Compositor
// type. The Realize() function must be called before the first Render().
func NewCompositor(env *environment.Environment, newDevice DeviceCreator) *Compositor {
	cmp := &Compositor{
		env: env,
	}

	size := env.Prefs.PoolBuffers()
	coalescer := scheduler.CoalescerByName(env.Prefs.CoalescePolicy())

	// the video source runs at a steady rate so a bounded channel is used
	// in place of the unbounded queue. a frame that doesn't fit is dropped
	// at the producer
	video := framequeue.NewChannel[*frame.Frame](size - 1)
	ui := framequeue.NewQueue[*frame.Frame]()

	cmp.layers = []*Layer{
		cmp.newLayer(VideoLayer, size, video, newDevice(VideoLayer), coalescer),
		cmp.newLayer(UILayer, size, ui, newDevice(UILayer), coalescer),
	}

	return cmp
}

type pendingSink interface {
	scheduler.Pending
	producer.Sink
}

func (cmp *Compositor) newLayer(name string, size int, q pendingSink, dev texstage.Device, c scheduler.Coalescer) *Layer {
	l := &Layer{
		Name:    name,
		Pool:    framepool.NewPool(size),
		pending: q,
	}
	l.Producer = producer.NewProducer(name, l.Pool, q)
	l.Stage = texstage.NewStage(name, cmp.env, dev)
	l.Scheduler = scheduler.NewScheduler(name, q, l.Stage)
	l.Scheduler.SetCoalescer(c)
	return l
}

// Layer returns the named layer. Returns nil if there is no such layer.
func (cmp *Compositor) Layer(name string) *Layer {
	for _, l := range cmp.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns every layer in drawing order.
func (cmp *Compositor) Layers() []*Layer {
	return cmp.layers
}

// Realize the GPU resources for every layer. On error, every layer that was
// realized is unrealized again.
func (cmp *Compositor) Realize() error {
	for i, l := range cmp.layers {
		if err := l.Stage.Realize(); err != nil {
			for _, r := range cmp.layers[:i] {
				r.Stage.Unrealize()
			}
			return err
		}
	}
	return nil
}

// Unrealize frees the GPU resources of every layer. Frames still waiting to
// be uploaded are released.
func (cmp *Compositor) Unrealize() {
	for _, l := range cmp.layers {
		for _, f := range l.pending.Drain(nil) {
			f.Release()
		}
		l.Stage.Unrealize()
	}
}

// SetCoalescer changes the coalescing policy of every layer.
func (cmp *Compositor) SetCoalescer(c scheduler.Coalescer) {
	for _, l := range cmp.layers {
		l.Scheduler.SetCoalescer(c)
	}
}

// HasPending returns true if any layer has frames waiting to be uploaded.
func (cmp *Compositor) HasPending() bool {
	for _, l := range cmp.layers {
		if l.Scheduler.HasPending() {
			return true
		}
	}
	return false
}

// Render uploads pending frames for every layer, clears the view and draws
// the layers in order. Returns the number of frames uploaded.
func (cmp *Compositor) Render(viewWidth int, viewHeight int) int {
	var uploaded int
	for _, l := range cmp.layers {
		uploaded += l.Scheduler.Upload().Uploaded
	}

	if len(cmp.layers) > 0 {
		cmp.layers[0].Stage.Clear()
	}
	for _, l := range cmp.layers {
		l.Stage.Draw(viewWidth, viewHeight)
	}

	return uploaded
}

// Stats returns a snapshot of the activity of every layer.
func (cmp *Compositor) Stats() []LayerStats {
	st := make([]LayerStats, 0, len(cmp.layers))
	for _, l := range cmp.layers {
		st = append(st, LayerStats{
			Name:      l.Name,
			FPS:       l.Scheduler.FPS(),
			Pool:      l.Pool.Stats(),
			Producer:  l.Producer.Stats(),
			Scheduler: l.Scheduler.Stats(),
			Stage:     l.Stage.Stats(),
		})
	}
	return st
}

func (cmp *Compositor) String() string {
	s := strings.Builder{}
	for _, l := range cmp.Stats() {
		s.WriteString(l.String())
		s.WriteString("\n")
	}
	return s.String()
}
