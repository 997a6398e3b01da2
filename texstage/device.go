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

// Package texstage uploads frames to a GPU texture and draws the texture as
// a full-view quad. The GPU itself is hidden behind the Device interface so
// that the upload logic is the same for the OpenGL window and for the
// headless software renderer.
//
// Uploads go through one of two transfer buffers, alternating between them
// on every upload, so that writing the next frame does not wait for the
// previous transfer to complete.
package texstage

import (
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
)

// NumTransferBuffers is the number of transfer buffers used by a Stage.
const NumTransferBuffers = 2

// Device is the GPU as seen by a Stage. All methods are called from the
// thread that owns the GPU context.
type Device interface {
	// Realize allocates the texture, the transfer buffers and anything
	// needed to draw. Information about the GPU should be written to info.
	Realize(info *environment.GPU) error

	// Destroy frees everything allocated by Realize.
	Destroy()

	// TransferCapacity returns the size in bytes of transfer buffer i.
	TransferCapacity(i int) int

	// GrowTransfer reallocates transfer buffer i to hold size bytes.
	GrowTransfer(i int, size int)

	// MapTransfer maps size bytes of transfer buffer i for writing. The
	// previous content of the buffer is discarded. Returns nil if the buffer
	// could not be mapped.
	MapTransfer(i int, size int) []byte

	// UnmapTransfer ends the mapping created by MapTransfer.
	UnmapTransfer(i int)

	// ResizeTexture reallocates the texture. The content is undefined until
	// the next UpdateTexture.
	ResizeTexture(width int, height int)

	// UpdateTexture copies the rectangle r from transfer buffer i to the
	// same position in the texture. The data for r starts at byte offset
	// (r.Y*rowLength+r.X)*4 in the transfer buffer and rows are rowLength
	// pixels apart.
	UpdateTexture(i int, r frame.Rect, rowLength int)

	// Clear the view.
	Clear()

	// Draw the texture to a view of the specified size.
	Draw(viewWidth int, viewHeight int)
}
