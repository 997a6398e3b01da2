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

package frame

// BoundingBox returns the smallest rectangle containing every dirty
// rectangle, clamped to the frame. The entire frame is returned if there are
// no dirty rectangles or if nothing is left after clamping.
func BoundingBox(dirty []Rect, width int, height int) Rect {
	full := Rect{W: width, H: height}
	if len(dirty) == 0 {
		return full
	}

	minX, minY := width, height
	maxX, maxY := 0, 0

	for _, r := range dirty {
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.X+r.W)
		maxY = max(maxY, r.Y+r.H)
	}

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, width)
	maxY = min(maxY, height)

	if maxX <= minX || maxY <= minY {
		return full
	}

	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// CopyRegion copies the pixels inside r from src to the same position in
// dst. Both slices hold entire frames of fullWidth pixels per row. A region
// that covers entire rows is copied in one go.
//
// The region must fit inside both slices. Pixels outside the region are not
// touched.
func CopyRegion(dst []byte, src []byte, fullWidth int, r Rect) {
	if r.Empty() {
		return
	}

	const bpp = 4
	stride := fullWidth * bpp

	if r.X == 0 && r.W == fullWidth {
		start := r.Y * stride
		end := start + r.H*stride
		copy(dst[start:end], src[start:end])
		return
	}

	rowLen := r.W * bpp
	for row := 0; row < r.H; row++ {
		o := (r.Y+row)*stride + r.X*bpp
		copy(dst[o:o+rowLen], src[o:o+rowLen])
	}
}
