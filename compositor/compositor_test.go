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

package compositor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/texstage"
	"github.com/dualview/dualview/test"
)

type devices map[string]*texstage.SoftDevice

func (d devices) create(layer string) texstage.Device {
	dev := texstage.NewSoftDevice()
	d[layer] = dev
	return dev
}

func newCompositor(t *testing.T) (*compositor.Compositor, devices) {
	t.Helper()
	t.Chdir(t.TempDir())

	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	test.DemandSuccess(t, err)

	devs := make(devices)
	cmp := compositor.NewCompositor(env, devs.create)
	test.DemandSuccess(t, cmp.Realize())

	g, ok := env.GPU()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, g.Renderer, "software")

	return cmp, devs
}

func pixels(w int, h int) []byte {
	return make([]byte, w*h*4)
}

func TestLayers(t *testing.T) {
	cmp, devs := newCompositor(t)
	test.DemandEquality(t, len(cmp.Layers()), 2)
	test.ExpectEquality(t, cmp.Layers()[0].Name, compositor.VideoLayer)
	test.ExpectEquality(t, cmp.Layers()[1].Name, compositor.UILayer)
	test.ExpectEquality(t, cmp.Layer("nothing") == nil, true)
	test.ExpectEquality(t, len(devs), 2)
	test.ExpectEquality(t, cmp.Layer(compositor.UILayer).Pool.Size(), 3)
}

func TestRender(t *testing.T) {
	cmp, devs := newCompositor(t)
	test.ExpectFailure(t, cmp.HasPending())

	cmp.Layer(compositor.VideoLayer).Producer.Paint(pixels(32, 18), 32, 18, nil)
	cmp.Layer(compositor.UILayer).Producer.Paint(pixels(16, 16), 16, 16, nil)
	test.ExpectSuccess(t, cmp.HasPending())

	test.ExpectEquality(t, cmp.Render(100, 100), 2)
	test.ExpectFailure(t, cmp.HasPending())

	// the view is cleared once and both layers are drawn
	test.ExpectEquality(t, devs[compositor.VideoLayer].Clears, 1)
	test.ExpectEquality(t, devs[compositor.UILayer].Clears, 0)
	test.ExpectEquality(t, devs[compositor.VideoLayer].Draws, 1)
	test.ExpectEquality(t, devs[compositor.UILayer].Draws, 1)

	// layers without new frames are still drawn
	test.ExpectEquality(t, cmp.Render(100, 100), 0)
	test.ExpectEquality(t, devs[compositor.UILayer].Draws, 2)

	st := cmp.Stats()
	test.DemandEquality(t, len(st), 2)
	test.ExpectEquality(t, st[0].Stage.Uploads, uint64(1))
	test.ExpectEquality(t, st[1].Producer.Queued, uint64(1))
	test.ExpectSuccess(t, strings.Contains(cmp.String(), "video:"))
}

func TestVideoBackpressure(t *testing.T) {
	cmp, _ := newCompositor(t)
	video := cmp.Layer(compositor.VideoLayer)

	// the video channel holds one less than the pool size
	for range 3 {
		video.Producer.Paint(pixels(4, 4), 4, 4, nil)
	}
	st := video.Producer.Stats()
	test.ExpectEquality(t, st.Queued, uint64(2))
	test.ExpectEquality(t, st.DroppedSink, uint64(1))

	cmp.Unrealize()
	test.ExpectEquality(t, video.Pool.Stats().InUse, 0)
	test.ExpectFailure(t, cmp.HasPending())
}

func TestRealizeFailure(t *testing.T) {
	t.Chdir(t.TempDir())

	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	test.DemandSuccess(t, err)

	var first *texstage.SoftDevice
	cmp := compositor.NewCompositor(env, func(layer string) texstage.Device {
		dev := texstage.NewSoftDevice()
		if layer == compositor.UILayer {
			dev.FailRealize = errors.New("no memory")
		} else {
			first = dev
		}
		return dev
	})

	test.ExpectFailure(t, cmp.Realize())
	test.ExpectFailure(t, cmp.Layer(compositor.VideoLayer).Stage.Realized())

	_, w, _ := first.Texture()
	test.ExpectEquality(t, w, 0)
}
