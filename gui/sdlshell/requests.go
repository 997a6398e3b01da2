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
	"fmt"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/gui"
	"github.com/dualview/dualview/logger"
)

type featureRequest struct {
	request gui.FeatureReq
	args    []gui.FeatureReqData

	// the result of the request is logged rather than returned
	noError bool
}

// SetFeature implements gui.GUI interface.
//
// Must not be called from the main thread.
func (shl *SdlShell) SetFeature(request gui.FeatureReq, args ...gui.FeatureReqData) error {
	shl.polling.featureSet <- featureRequest{request: request, args: args}
	return <-shl.polling.featureSetErr
}

// SetFeatureNoError implements gui.GUI interface.
func (shl *SdlShell) SetFeatureNoError(request gui.FeatureReq, args ...gui.FeatureReqData) {
	shl.polling.featureSet <- featureRequest{request: request, args: args, noError: true}
}

// GetFeature implements gui.GUI interface.
//
// Must not be called from the main thread.
func (shl *SdlShell) GetFeature(request gui.FeatureReq) (gui.FeatureReqData, error) {
	shl.polling.featureGet <- featureRequest{request: request}
	return <-shl.polling.featureGetData, <-shl.polling.featureGetErr
}

func (shl *SdlShell) serviceSetFeature(request featureRequest) {
	err := shl.setFeature(request)
	if request.noError {
		if err != nil {
			logger.Log(logger.Allow, "sdlshell", err)
		}
		return
	}
	shl.polling.featureSetErr <- err
}

func (shl *SdlShell) setFeature(request featureRequest) (returnedErr error) {
	// lazy (but clear) handling of type assertion errors
	defer func() {
		if r := recover(); r != nil {
			returnedErr = curated.Errorf("sdlshell: %v: %v", request.request, r)
		}
	}()

	switch request.request {
	case gui.ReqSetHUD:
		shl.setHUD(request.args[0].(bool))

	case gui.ReqSetVSync:
		shl.plt.setSwapInterval(request.args[0].(bool))

	case gui.ReqSetTitle:
		shl.plt.window.SetTitle(request.args[0].(string))

	case gui.ReqFullScreen:
		shl.plt.setFullScreen(request.args[0].(bool))
		shl.redraw = true

	case gui.ReqSetResizeHook:
		switch hook := request.args[0].(type) {
		case gui.ResizeHook:
			shl.resizeHook = hook
		case func(int, int):
			shl.resizeHook = hook
		case nil:
			shl.resizeHook = nil
		default:
			panic(fmt.Sprintf("unexpected type %T", hook))
		}
		shl.resized()

	default:
		return curated.Errorf(gui.UnsupportedGuiFeature, request.request)
	}

	return nil
}

func (shl *SdlShell) serviceGetFeature(request featureRequest) {
	var data gui.FeatureReqData
	var err error

	switch request.request {
	case gui.ReqSetHUD:
		data = shl.hud.visible
	case gui.ReqSetVSync:
		data = shl.plt.vsync
	case gui.ReqSetTitle:
		data = shl.plt.window.GetTitle()
	case gui.ReqFullScreen:
		data = shl.plt.fullScreen
	case gui.ReqDrawableSize:
		w, h := shl.plt.framebufferSize()
		data = [2]int{w, h}
	default:
		err = curated.Errorf(gui.UnsupportedGuiFeature, request.request)
	}

	shl.polling.featureGetData <- data
	shl.polling.featureGetErr <- err
}
