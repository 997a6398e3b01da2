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
	"fmt"
	"image"

	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
)

// SoftDevice is a Device that keeps the texture in normal memory. It is
// used by the headless mode and for testing.
type SoftDevice struct {
	// if FailRealize is not nil then it is returned by Realize()
	FailRealize error

	// the next FailMaps calls to MapTransfer() will fail
	FailMaps int

	realized bool

	transfer [NumTransferBuffers][]byte
	mapped   [NumTransferBuffers]bool

	texture []byte
	width   int
	height  int

	// counts of device operations
	Clears  int
	Draws   int
	Updates int
	Resizes int

	// the last rectangle passed to UpdateTexture()
	LastUpdate frame.Rect
}

// NewSoftDevice is the preferred method of initialisation for the SoftDevice
// type.
func NewSoftDevice() *SoftDevice {
	return &SoftDevice{}
}

// Realize implements the Device interface.
func (dev *SoftDevice) Realize(info *environment.GPU) error {
	if dev.FailRealize != nil {
		return dev.FailRealize
	}
	dev.realized = true
	info.Vendor = "dualview"
	info.Renderer = "software"
	info.Version = "1.0"
	return nil
}

// Destroy implements the Device interface.
func (dev *SoftDevice) Destroy() {
	dev.realized = false
	dev.transfer = [NumTransferBuffers][]byte{}
	dev.mapped = [NumTransferBuffers]bool{}
	dev.texture = nil
	dev.width = 0
	dev.height = 0
}

// TransferCapacity implements the Device interface.
func (dev *SoftDevice) TransferCapacity(i int) int {
	return len(dev.transfer[i])
}

// GrowTransfer implements the Device interface.
func (dev *SoftDevice) GrowTransfer(i int, size int) {
	dev.transfer[i] = make([]byte, size)
}

// MapTransfer implements the Device interface.
func (dev *SoftDevice) MapTransfer(i int, size int) []byte {
	if !dev.realized || dev.mapped[i] || size > len(dev.transfer[i]) {
		return nil
	}
	if dev.FailMaps > 0 {
		dev.FailMaps--
		return nil
	}
	dev.mapped[i] = true
	return dev.transfer[i][:size]
}

// UnmapTransfer implements the Device interface.
func (dev *SoftDevice) UnmapTransfer(i int) {
	dev.mapped[i] = false
}

// ResizeTexture implements the Device interface.
func (dev *SoftDevice) ResizeTexture(width int, height int) {
	dev.texture = make([]byte, width*height*4)
	dev.width = width
	dev.height = height
	dev.Resizes++
}

// UpdateTexture implements the Device interface.
func (dev *SoftDevice) UpdateTexture(i int, r frame.Rect, rowLength int) {
	if dev.mapped[i] {
		panic(fmt.Sprintf("texstage: transfer buffer %d updated while mapped", i))
	}
	if rowLength != dev.width {
		panic(fmt.Sprintf("texstage: row length %d does not match texture width %d", rowLength, dev.width))
	}
	frame.CopyRegion(dev.texture, dev.transfer[i], rowLength, r)
	dev.LastUpdate = r
	dev.Updates++
}

// Clear implements the Device interface.
func (dev *SoftDevice) Clear() {
	dev.Clears++
}

// Draw implements the Device interface.
func (dev *SoftDevice) Draw(viewWidth int, viewHeight int) {
	dev.Draws++
}

// Texture returns the content of the texture.
func (dev *SoftDevice) Texture() ([]byte, int, int) {
	return dev.texture, dev.width, dev.height
}

// Image returns a copy of the texture as an image. The BGRA pixels are
// converted to RGBA.
func (dev *SoftDevice) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, dev.width, dev.height))
	for o := 0; o+3 < len(dev.texture); o += 4 {
		img.Pix[o] = dev.texture[o+2]
		img.Pix[o+1] = dev.texture[o+1]
		img.Pix[o+2] = dev.texture[o]
		img.Pix[o+3] = dev.texture[o+3]
	}
	return img
}
