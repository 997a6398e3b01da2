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

package texstage

import (
	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/logger"
)

// Sentinel error patterns.
const (
	RealizeError = "texstage: %v"
)

// Stage is a texture and the transfer buffers used to update it.
type Stage struct {
	name string
	env  *environment.Environment
	dev  Device

	realized bool

	// index of the transfer buffer used by the next upload
	next int

	// size of the texture. zero until the first upload
	width  int
	height int

	stats Stats
}

// Stats is a record of the work done by a Stage.
type Stats struct {
	Uploads     uint64
	MapFailures uint64
	Resizes     uint64
	Grows       uint64
	Presents    uint64

	// bytes copied into transfer buffers
	Bytes uint64
}

// NewStage is the preferred method of initialisation for the Stage type.
func NewStage(name string, env *environment.Environment, dev Device) *Stage {
	return &Stage{
		name: name,
		env:  env,
		dev:  dev,
	}
}

// Realize allocates the GPU resources. A failure here means the stage can
// never draw and rendering should be disabled.
func (st *Stage) Realize() error {
	if st.realized {
		return nil
	}

	var info environment.GPU
	if err := st.dev.Realize(&info); err != nil {
		return curated.Errorf(RealizeError, err)
	}
	st.realized = true
	st.next = 0
	st.width = 0
	st.height = 0

	if st.env != nil && st.env.SetGPU(info) {
		logger.Logf(logger.Allow, st.name, "vendor: %s", info.Vendor)
		logger.Logf(logger.Allow, st.name, "renderer: %s", info.Renderer)
		logger.Logf(logger.Allow, st.name, "version: %s", info.Version)
	}

	return nil
}

// Unrealize frees the GPU resources. The stage can be realized again.
func (st *Stage) Unrealize() {
	if !st.realized {
		return
	}
	st.dev.Destroy()
	st.realized = false
}

// Realized returns true if the stage has GPU resources.
func (st *Stage) Realized() bool {
	return st.realized
}

// Size returns the current size of the texture.
func (st *Stage) Size() (int, int) {
	return st.width, st.height
}

// Stats returns a copy of the stage statistics.
func (st *Stage) Stats() Stats {
	return st.stats
}

// Upload copies the dirty region of the frame into the texture. The frame is
// not released. Returns false if nothing was uploaded.
func (st *Stage) Upload(f *frame.Frame) bool {
	if !st.realized || !f.Valid() {
		return false
	}

	size := f.FullWidth * f.FullHeight * framepool.BytesPerPixel

	// the texture is only reallocated when the frame size changes
	if f.FullWidth != st.width || f.FullHeight != st.height {
		for i := range NumTransferBuffers {
			if st.dev.TransferCapacity(i) < size {
				st.dev.GrowTransfer(i, size)
				st.stats.Grows++
			}
		}
		st.dev.ResizeTexture(f.FullWidth, f.FullHeight)
		st.width = f.FullWidth
		st.height = f.FullHeight
		st.stats.Resizes++
		logger.Logf(logger.Debug, st.name, "texture resized to %dx%d", st.width, st.height)
	}

	i := st.next
	st.next = (st.next + 1) % NumTransferBuffers

	dst := st.dev.MapTransfer(i, size)
	if dst == nil {
		st.stats.MapFailures++
		logger.Logf(logger.Debug, st.name, "transfer buffer %d could not be mapped", i)
		return false
	}

	r := f.Region()
	frame.CopyRegion(dst, f.Buffer.Bytes(), f.FullWidth, r)
	st.dev.UnmapTransfer(i)
	st.dev.UpdateTexture(i, r, f.FullWidth)

	st.stats.Uploads++
	st.stats.Bytes += uint64(r.W * r.H * framepool.BytesPerPixel)

	return true
}

// Present clears the view and draws the texture.
func (st *Stage) Present(viewWidth int, viewHeight int) {
	if !st.realized {
		return
	}
	st.dev.Clear()
	st.Draw(viewWidth, viewHeight)
}

// Draw draws the texture without clearing the view first. Nothing is drawn
// until a frame has been uploaded.
func (st *Stage) Draw(viewWidth int, viewHeight int) {
	if !st.realized || st.width == 0 || st.height == 0 {
		return
	}
	st.dev.Draw(viewWidth, viewHeight)
	st.stats.Presents++
}

// Clear clears the view.
func (st *Stage) Clear() {
	if !st.realized {
		return
	}
	st.dev.Clear()
}
