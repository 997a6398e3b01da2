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

//go:build gstreamer

package gstvideo

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/source"
)

// Video is the GStreamer video source.
type Video struct {
	source.Identity

	painter source.Painter
	uri     string
	width   int
	height  int

	samples atomic.Uint64
	dropped atomic.Uint64
}

// New is the preferred method of initialisation for the Video type. The
// decoded video is scaled to width and height.
func New(painter source.Painter, uri string, width int, height int) (source.Source, error) {
	if uri == "" {
		return nil, curated.Errorf(source.SourceError, Name, "no uri")
	}
	if width <= 0 || height <= 0 {
		return nil, curated.Errorf(source.SourceError, Name, "invalid size")
	}
	return &Video{
		Identity: source.NewIdentity(Name),
		painter:  painter,
		uri:      uri,
		width:    width,
		height:   height,
	}, nil
}

// Run implements the source.Source interface. Returns nil at the end of the
// stream or when the context is cancelled.
func (v *Video) Run(ctx context.Context) error {
	gst.Init(nil)

	pipeline, err := gst.NewPipelineFromString(fmt.Sprintf(pipelineTemplate, v.uri, v.width, v.height))
	if err != nil {
		return curated.Errorf(source.SourceError, Name, err)
	}

	elem, err := pipeline.GetElementByName("sink")
	if err != nil {
		return curated.Errorf(source.SourceError, Name, err)
	}
	sink := app.SinkFromElement(elem)

	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: v.newSample,
	})

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return curated.Errorf(source.SourceError, Name, err)
	}
	defer func() {
		_ = pipeline.SetState(gst.StateNull)
		logger.Logf(logger.Allow, v.Tag(), "%d samples, %d not accepted", v.samples.Load(), v.dropped.Load())
	}()

	logger.Logf(logger.Allow, v.Tag(), "playing %s", v.uri)

	bus := pipeline.GetPipelineBus()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// short timeout for a responsive shutdown
		msg := bus.TimedPop(50 * time.Millisecond)
		if msg == nil {
			continue
		}

		switch msg.Type() {
		case gst.MessageEOS:
			logger.Logf(logger.Allow, v.Tag(), "end of stream")
			return nil
		case gst.MessageError:
			gerr := msg.ParseError()
			logger.Logf(logger.Debug, v.Tag(), "%s", gerr.DebugString())
			return curated.Errorf(source.SourceError, Name, gerr.Error())
		}
	}
}

// newSample is called on a GStreamer streaming thread. The mapped buffer is
// only valid until Unmap() so it is painted before returning.
func (v *Video) newSample(sink *app.Sink) gst.FlowReturn {
	sample := sink.PullSample()
	if sample == nil {
		return gst.FlowOK
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return gst.FlowOK
	}

	mapInfo := buffer.Map(gst.MapRead)
	defer buffer.Unmap()

	data := mapInfo.Bytes()
	if len(data) == 0 {
		return gst.FlowOK
	}

	v.samples.Add(1)
	if !v.painter.Paint(data, v.width, v.height, nil) {
		v.dropped.Add(1)
	}

	return gst.FlowOK
}
