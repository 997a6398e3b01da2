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

// Package sdlshell is the windowed shell. It opens an SDL window with an
// OpenGL 3.2 context and draws the compositor's layers into it, with an
// optional heads-up display of pipeline statistics drawn by dear imgui.
//
// All GL work happens on the main thread, in the Service() function.
// Requests from other goroutines are made through the gui.GUI interface.
//
// Keys: F1 toggles the HUD, F11 toggles full screen, F12 logs pipeline
// statistics and Escape quits.
package sdlshell

import (
	"io"
	"sync"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/gui"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/version"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// SdlShell is an SDL and OpenGL implementation of the gui.GUI interface.
type SdlShell struct {
	env *environment.Environment
	cmp *compositor.Compositor

	plt     *platform
	hud     *hud
	polling *polling

	// something other than a new frame requires the window to be redrawn
	redraw    bool
	minimised bool

	resizeHook gui.ResizeHook

	quitOnce sync.Once
	quitting chan struct{}
}

// NewSdlShell is the preferred method of initialisation for type SdlShell.
// The compositor should have been created with NewDevice() as the
// DeviceCreator. It will be realized by this function.
//
// MUST ONLY be called from the main thread.
func NewSdlShell(env *environment.Environment, cmp *compositor.Compositor) (*SdlShell, error) {
	shl := &SdlShell{
		env:      env,
		cmp:      cmp,
		redraw:   true,
		quitting: make(chan struct{}),
	}

	w := env.Prefs.UIWidth.Get().(int)
	h := env.Prefs.UIHeight.Get().(int)

	var err error

	shl.plt, err = newPlatform(version.String(), w, h)
	if err != nil {
		return nil, curated.Errorf("sdlshell: %v", err)
	}

	err = gl.Init()
	if err != nil {
		_ = shl.plt.destroy()
		return nil, curated.Errorf("sdlshell: %v", err)
	}

	err = cmp.Realize()
	if err != nil {
		_ = shl.plt.destroy()
		return nil, curated.Errorf("sdlshell: %v", err)
	}

	shl.hud, err = newHUD(shl)
	if err != nil {
		cmp.Unrealize()
		_ = shl.plt.destroy()
		return nil, curated.Errorf("sdlshell: %v", err)
	}
	shl.hud.visible = env.Prefs.HUD.Get().(bool)

	shl.plt.setSwapInterval(env.Prefs.VSync.Get().(bool))

	shl.polling = newPolling(shl)

	logger.Logf(logger.Allow, "sdlshell", "window created for %s", env)

	return shl, nil
}

// Destroy implements GuiCreator interface.
//
// MUST ONLY be called from the main thread.
func (shl *SdlShell) Destroy(output io.Writer) {
	shl.quit()
	shl.hud.destroy()
	shl.cmp.Unrealize()

	err := shl.plt.destroy()
	if err != nil {
		output.Write([]byte(err.Error()))
	}
}

// Quit returns a channel that is closed when the user has asked for the
// window to close.
func (shl *SdlShell) Quit() <-chan struct{} {
	return shl.quitting
}
