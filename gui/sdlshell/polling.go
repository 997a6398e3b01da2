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
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/dualview/dualview/gui"
)

// time periods in milliseconds that wait() sleeps for when there is nothing
// for the service loop to do.
const (
	// short enough that a frame arriving from a source is picked up well
	// within a display refresh
	activeSleepPeriod = 4

	// the window is minimised or hidden
	idleSleepPeriod = 100
)

type polling struct {
	shl *SdlShell

	// SetFeature() and GetFeature() hand off requests to these channels for
	// servicing in the main thread
	featureSet     chan featureRequest
	featureSetErr  chan error
	featureGet     chan featureRequest
	featureGetData chan gui.FeatureReqData
	featureGetErr  chan error
}

func newPolling(shl *SdlShell) *polling {
	return &polling{
		shl:            shl,
		featureSet:     make(chan featureRequest, 1),
		featureSetErr:  make(chan error, 1),
		featureGet:     make(chan featureRequest, 1),
		featureGetData: make(chan gui.FeatureReqData, 1),
		featureGetErr:  make(chan error, 1),
	}
}

// wait services any outstanding feature request and then waits for an SDL
// event. It does not wait if there are frames waiting to be uploaded or if
// the HUD needs redrawing.
func (pol *polling) wait() sdl.Event {
	select {
	case r := <-pol.featureSet:
		pol.shl.serviceSetFeature(r)
	case r := <-pol.featureGet:
		pol.shl.serviceGetFeature(r)
	default:
	}

	if pol.shl.redraw || pol.shl.cmp.HasPending() || pol.shl.hud.due(time.Now()) {
		return sdl.PollEvent()
	}

	timeout := activeSleepPeriod
	if pol.shl.minimised {
		timeout = idleSleepPeriod
	}

	return sdl.WaitEventTimeout(timeout)
}
