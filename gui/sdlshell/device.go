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

package sdlshell

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/framepool"
	"github.com/dualview/dualview/texstage"
)

// device implements texstage.Device with OpenGL 3.2. Transfer buffers are
// pixel unpack buffers, which allows the copy from the transfer buffer to
// the texture to happen asynchronously.
type device struct {
	layer string

	// the texture is blended with whatever has already been drawn. the
	// texture data is expected to have premultiplied alpha
	blend bool

	texture uint32
	pbo     [texstage.NumTransferBuffers]uint32
	quad    *quad
}

// NewDevice returns an OpenGL device for the named layer. It is a
// compositor.DeviceCreator. No GL calls are made until the device is
// realized, which must happen on the thread with the GL context.
func NewDevice(layer string) texstage.Device {
	return &device{
		layer: layer,
		blend: layer == compositor.UILayer,
	}
}

// Realize implements the texstage.Device interface.
func (dev *device) Realize(info *environment.GPU) error {
	info.Vendor = gl.GoStr(gl.GetString(gl.VENDOR))
	info.Renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	info.Version = gl.GoStr(gl.GetString(gl.VERSION))

	var err error
	dev.quad, err = newQuad()
	if err != nil {
		return fmt.Errorf("%s: %w", dev.layer, err)
	}

	gl.GenTextures(1, &dev.texture)
	gl.BindTexture(gl.TEXTURE_2D, dev.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenBuffers(int32(len(dev.pbo)), &dev.pbo[0])

	if e := gl.GetError(); e != gl.NO_ERROR {
		dev.Destroy()
		return fmt.Errorf("%s: gl error %#x", dev.layer, e)
	}

	return nil
}

// Destroy implements the texstage.Device interface.
func (dev *device) Destroy() {
	if dev.pbo[0] != 0 {
		gl.DeleteBuffers(int32(len(dev.pbo)), &dev.pbo[0])
		dev.pbo = [texstage.NumTransferBuffers]uint32{}
	}
	if dev.texture != 0 {
		gl.DeleteTextures(1, &dev.texture)
		dev.texture = 0
	}
	if dev.quad != nil {
		dev.quad.destroy()
		dev.quad = nil
	}
}

// TransferCapacity implements the texstage.Device interface.
func (dev *device) TransferCapacity(i int) int {
	var size int32
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, dev.pbo[i])
	gl.GetBufferParameteriv(gl.PIXEL_UNPACK_BUFFER, gl.BUFFER_SIZE, &size)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	return int(size)
}

// GrowTransfer implements the texstage.Device interface.
func (dev *device) GrowTransfer(i int, size int) {
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, dev.pbo[i])
	gl.BufferData(gl.PIXEL_UNPACK_BUFFER, size, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
}

// MapTransfer implements the texstage.Device interface.
func (dev *device) MapTransfer(i int, size int) []byte {
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, dev.pbo[i])
	defer gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)

	// invalidating the buffer means the driver doesn't need to wait for any
	// previous transfer from the buffer to complete
	ptr := gl.MapBufferRange(gl.PIXEL_UNPACK_BUFFER, 0, size, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_BUFFER_BIT)
	if ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), size)
}

// UnmapTransfer implements the texstage.Device interface.
func (dev *device) UnmapTransfer(i int) {
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, dev.pbo[i])
	gl.UnmapBuffer(gl.PIXEL_UNPACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
}

// ResizeTexture implements the texstage.Device interface.
func (dev *device) ResizeTexture(width int, height int) {
	gl.BindTexture(gl.TEXTURE_2D, dev.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// UpdateTexture implements the texstage.Device interface.
func (dev *device) UpdateTexture(i int, r frame.Rect, rowLength int) {
	offset := (r.Y*rowLength + r.X) * framepool.BytesPerPixel

	gl.BindTexture(gl.TEXTURE_2D, dev.texture)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, dev.pbo[i])
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rowLength))

	// with a pixel unpack buffer bound the pointer argument is an offset
	// into the buffer
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(r.X), int32(r.Y), int32(r.W), int32(r.H),
		gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, gl.PtrOffset(offset))

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Clear implements the texstage.Device interface.
func (dev *device) Clear() {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Draw implements the texstage.Device interface.
func (dev *device) Draw(viewWidth int, viewHeight int) {
	gl.Viewport(0, 0, int32(viewWidth), int32(viewHeight))
	gl.Disable(gl.SCISSOR_TEST)

	if dev.blend {
		gl.Enable(gl.BLEND)
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}

	dev.quad.draw(dev.texture)

	if dev.blend {
		gl.Disable(gl.BLEND)
	}
}
