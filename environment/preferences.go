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

package environment

import (
	"fmt"

	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/paths"
	"github.com/dualview/dualview/prefs"
)

// DefaultPrefsFile is the name of the preferences file in the resource
// directory.
const DefaultPrefsFile = "preferences"

// Names of the frame coalescing policies accepted by the Coalesce
// preference.
const (
	CoalesceSkipResizing = "skip-resizing"
	CoalesceLastPerSize  = "last-per-size"
)

// Limits for the PoolSize preference.
const (
	MinPoolSize = 2
	MaxPoolSize = 8
)

// Preferences defines and collates the preference values used by the
// compositing pipeline.
type Preferences struct {
	dsk *prefs.Disk

	// number of buffers in each frame pool
	PoolSize prefs.Int

	// frame coalescing policy. one of the Coalesce* constants
	Coalesce prefs.String

	// present frames in time with the display refresh
	VSync prefs.Bool

	// show the heads up display
	HUD prefs.Bool

	// enable logging with the logger.Debug permission
	Debug prefs.Bool

	// size of the synthetic UI surface
	UIWidth  prefs.Int
	UIHeight prefs.Int

	// frame rate of the video source
	VideoFPS prefs.Float

	// location of the video to decode. an empty string selects the test card
	VideoURI prefs.String
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Coalesce.SetHookPre(func(v prefs.Value) error {
		switch v.(string) {
		case "", CoalesceSkipResizing, CoalesceLastPerSize:
			return nil
		}
		return fmt.Errorf("unknown coalescing policy: %v", v)
	})

	p.Debug.SetHookPost(func(v prefs.Value) error {
		logger.SetDebug(v.(bool))
		return nil
	})

	p.VideoURI.SetMaxLen(1024)

	pth, err := paths.ResourcePath("", DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("pipeline.poolsize", &p.PoolSize)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("pipeline.coalesce", &p.Coalesce)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.vsync", &p.VSync)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("display.hud", &p.HUD)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("log.debug", &p.Debug)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("ui.width", &p.UIWidth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("ui.height", &p.UIHeight)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("video.fps", &p.VideoFPS)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("video.uri", &p.VideoURI)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.PoolSize.Set(3)
	p.Coalesce.Set(CoalesceSkipResizing)
	p.VSync.Set(true)
	p.HUD.Set(true)
	p.Debug.Set(false)
	p.UIWidth.Set(640)
	p.UIHeight.Set(360)
	p.VideoFPS.Set(60.0)
	p.VideoURI.Set("")
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// PoolBuffers returns the PoolSize preference limited to the supported
// range.
func (p *Preferences) PoolBuffers() int {
	return min(max(p.PoolSize.Get().(int), MinPoolSize), MaxPoolSize)
}

// CoalescePolicy returns the name of the coalescing policy. An empty
// preference selects CoalesceSkipResizing.
func (p *Preferences) CoalescePolicy() string {
	if s := p.Coalesce.String(); s != "" {
		return s
	}
	return CoalesceSkipResizing
}
