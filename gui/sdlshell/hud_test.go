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
	"testing"
	"time"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/test"
)

func TestHUDHistory(t *testing.T) {
	h := &hud{history: make(map[string][]float32)}

	for i := range hudHistory + 10 {
		h.sample([]compositor.LayerStats{
			{Name: compositor.VideoLayer, FPS: i},
			{Name: compositor.UILayer, FPS: 30},
		})
	}

	video := h.history[compositor.VideoLayer]
	test.ExpectEquality(t, len(video), hudHistory)
	test.ExpectEquality(t, video[0], float32(10))
	test.ExpectEquality(t, video[len(video)-1], float32(hudHistory+9))
	test.ExpectEquality(t, len(h.history[compositor.UILayer]), hudHistory)
}

func TestHUDDue(t *testing.T) {
	h := &hud{}
	now := time.Now()

	// never due while hidden
	test.ExpectFailure(t, h.due(now))

	h.visible = true
	test.ExpectSuccess(t, h.due(now))

	h.last = now
	test.ExpectFailure(t, h.due(now.Add(hudRefresh/2)))
	test.ExpectSuccess(t, h.due(now.Add(hudRefresh)))
}
