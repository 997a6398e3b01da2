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

package main

import (
	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/source"
	"github.com/dualview/dualview/source/gstvideo"
	"github.com/dualview/dualview/source/testcard"
	"github.com/dualview/dualview/source/uisurface"
)

// the rate at which the UI surface paints, if it has anything to paint
const uiRate = 60.0

type sources struct {
	video source.Source
	ui    *uisurface.Surface
}

func (s sources) all() []source.Source {
	return []source.Source{s.video, s.ui}
}

// newSources creates the render sources and connects them to the producers
// of the compositor's layers. The uri argument overrides the video.uri
// preference if it is not empty. If the video can't be decoded in this build
// then the test card is used in its place.
func newSources(env *environment.Environment, cmp *compositor.Compositor, uri string) (sources, error) {
	width := env.Prefs.UIWidth.Get().(int)
	height := env.Prefs.UIHeight.Get().(int)
	rate := env.Prefs.VideoFPS.Get().(float64)

	if uri == "" {
		uri = env.Prefs.VideoURI.Get().(string)
	}

	videoPainter := cmp.Layer(compositor.VideoLayer).Producer
	uiPainter := cmp.Layer(compositor.UILayer).Producer

	var s sources
	var err error

	if uri != "" {
		s.video, err = gstvideo.New(videoPainter, uri, width, height)
		if err != nil {
			if !curated.Is(err, source.UnsupportedSource) {
				return sources{}, err
			}
			logger.Logf(logger.Allow, "dualview", "%v: using test card", err)
			s.video = nil
		}
	}

	if s.video == nil {
		s.video, err = testcard.New(videoPainter, width, height, rate)
		if err != nil {
			return sources{}, err
		}
	}

	s.ui = uisurface.New(uiPainter, width, height, uiRate)

	return s, nil
}
