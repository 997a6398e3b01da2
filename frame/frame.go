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

// Package frame defines the unit of work passed from a render source to the
// GPU upload consumer, along with the dirty region arithmetic used on both
// sides of the pipeline.
package frame

import (
	"fmt"
	"time"

	"github.com/dualview/dualview/framepool"
)

// Rect is a rectangle in pixel coordinates. The origin is the top-left of the
// frame.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Format of the pixel data.
type Format uint32

// List of valid Format values.
const (
	FormatBGRA Format = iota
)

func (f Format) String() string {
	switch f {
	case FormatBGRA:
		return "BGRA"
	}
	return fmt.Sprintf("format(%d)", uint32(f))
}

// Frame is one paint from a render source. The pixel buffer always holds the
// entire frame but only the bounding box of the dirty region (X, Y, Width,
// Height) is guaranteed to be up to date.
type Frame struct {
	// bounding box of the dirty region
	X, Y          int
	Width, Height int

	// size of the entire frame
	FullWidth, FullHeight int

	// shared reference to the pixels. may be nil
	Buffer *framepool.Shared

	// the dirty rectangles as reported by the render source
	Dirty []Rect

	Format Format

	// when the frame was produced and by what
	Created time.Time
	Source  string
}

func (f *Frame) String() string {
	return fmt.Sprintf("%s %dx%d [%s] %s", f.Source, f.FullWidth, f.FullHeight, f.Region(), f.Format)
}

// Region returns the bounding box of the dirty region as a Rect.
func (f *Frame) Region() Rect {
	return Rect{X: f.X, Y: f.Y, W: f.Width, H: f.Height}
}

// Valid returns false if the frame can't be uploaded. Either because there
// are no pixels or because the dirty region doesn't fit the frame.
func (f *Frame) Valid() bool {
	if f == nil || f.Buffer.Released() || f.Buffer.Len() == 0 {
		return false
	}
	if f.FullWidth <= 0 || f.FullHeight <= 0 {
		return false
	}
	if f.Buffer.Len() < f.FullWidth*f.FullHeight*framepool.BytesPerPixel {
		return false
	}
	if f.X < 0 || f.Y < 0 || f.Width <= 0 || f.Height <= 0 {
		return false
	}
	return f.X+f.Width <= f.FullWidth && f.Y+f.Height <= f.FullHeight
}

// Full returns true if the dirty region covers the entire frame.
func (f *Frame) Full() bool {
	return f.X == 0 && f.Y == 0 && f.Width == f.FullWidth && f.Height == f.FullHeight
}

// SameSize returns true if both frames have the same full dimensions.
func (f *Frame) SameSize(o *Frame) bool {
	return f.FullWidth == o.FullWidth && f.FullHeight == o.FullHeight
}

// Release drops the frame's reference to the pixel buffer. Safe to call more
// than once.
func (f *Frame) Release() {
	if f == nil {
		return
	}
	f.Buffer.Release()
}

// Age returns how long ago the frame was produced.
func (f *Frame) Age(now time.Time) time.Duration {
	if f.Created.IsZero() {
		return 0
	}
	return now.Sub(f.Created)
}
