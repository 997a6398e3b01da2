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

// Package gstvideo is a video source that decodes a URI with GStreamer. The
// decoded frames are scaled and converted to BGRA by the pipeline and taken
// from an appsink.
//
// The package is only functional when built with the "gstreamer" build tag,
// which requires the GStreamer development libraries. Without the tag New()
// returns the source.UnsupportedSource error and the shell falls back to the
// test card.
package gstvideo

// Name of the source.
const Name = "video"

// the pipeline description. the appsink keeps only the most recent sample
// so a slow consumer causes frames to be dropped inside GStreamer rather
// than queued
const pipelineTemplate = "uridecodebin uri=%s ! videoconvert ! videoscale ! " +
	"video/x-raw,format=BGRA,width=%d,height=%d ! " +
	"appsink name=sink sync=true max-buffers=1 drop=true"
