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

//go:build !gstreamer

package gstvideo

import (
	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/source"
)

// New returns the source.UnsupportedSource error unless built with the
// gstreamer build tag.
func New(_ source.Painter, _ string, _ int, _ int) (source.Source, error) {
	return nil, curated.Errorf(source.UnsupportedSource, "gstreamer video")
}
