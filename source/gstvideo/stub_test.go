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

package gstvideo_test

import (
	"testing"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/source"
	"github.com/dualview/dualview/source/gstvideo"
	"github.com/dualview/dualview/test"
)

func TestUnsupported(t *testing.T) {
	s, err := gstvideo.New(nil, "file:///dev/null", 640, 360)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, source.UnsupportedSource))
	test.ExpectEquality(t, s, nil)
}
