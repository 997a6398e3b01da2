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

	"github.com/dualview/dualview/logger"
)

// Service implements GuiCreator interface.
//
// MUST ONLY be called from the main thread.
func (shl *SdlShell) Service() {
	// poll for sdl event or timeout
	ev := shl.polling.wait()

	for ; ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			shl.quit()

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				shl.resized()
			case sdl.WINDOWEVENT_MINIMIZED:
				shl.minimised = true
			case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_MAXIMIZED:
				shl.minimised = false
				shl.redraw = true
			case sdl.WINDOWEVENT_EXPOSED:
				shl.redraw = true
			}

		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYUP {
				break
			}
			switch ev.Keysym.Sym {
			case sdl.K_ESCAPE:
				if shl.plt.fullScreen {
					shl.plt.setFullScreen(false)
					shl.redraw = true
				} else {
					shl.quit()
				}
			case sdl.K_F1:
				shl.setHUD(!shl.hud.visible)
			case sdl.K_F11:
				shl.plt.setFullScreen(!shl.plt.fullScreen)
				shl.redraw = true
			case sdl.K_F12:
				logger.Log(logger.Allow, "sdlshell", shl.cmp.String())
			}
		}
	}

	shl.render()
}

// render the composited layers and the HUD. nothing is drawn if nothing has
// changed.
func (shl *SdlShell) render() {
	if shl.minimised {
		return
	}

	now := time.Now()
	if !shl.redraw && !shl.cmp.HasPending() && !shl.hud.due(now) {
		return
	}
	shl.redraw = false

	fbw, fbh := shl.plt.framebufferSize()
	if fbw <= 0 || fbh <= 0 {
		return
	}

	shl.cmp.Render(fbw, fbh)

	winw, winh := shl.plt.windowSize()
	shl.hud.draw(now, winw, winh, fbw, fbh)

	shl.plt.postRender()
}

// resized is called when the drawable area of the window may have changed.
func (shl *SdlShell) resized() {
	shl.redraw = true
	w, h := shl.plt.framebufferSize()
	if w <= 0 || h <= 0 {
		return
	}
	if shl.resizeHook != nil {
		shl.resizeHook(w, h)
	}
}

func (shl *SdlShell) setHUD(visible bool) {
	shl.hud.visible = visible
	shl.redraw = true
	if err := shl.env.Prefs.HUD.Set(visible); err != nil {
		logger.Log(logger.Allow, "sdlshell", err)
	}
}

// quit closes the channel returned by Quit(). Safe to call more than once.
func (shl *SdlShell) quit() {
	shl.quitOnce.Do(func() {
		close(shl.quitting)
	})
}
