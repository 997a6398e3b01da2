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

package gui

// FeatureReq is used to request the setting of a gui attribute
// eg. toggling the HUD.
type FeatureReq string

// FeatureReqData represents the information associated with a FeatureReq. See
// commentary for the defined FeatureReq values for the underlying type.
type FeatureReqData any

// ResizeHook is called by the GUI whenever the size of the drawable area of
// the window changes. It is called from the GUI goroutine and should not
// block.
type ResizeHook func(width int, height int)

// List of valid feature requests. argument must be of the type specified or
// else the type conversion will fail and an error will be returned.
//
// Note that, like the name suggests, these are requests, they may or may not
// be satisfied depending other conditions in the GUI.
const (
	// show or hide the heads-up display of pipeline statistics.
	ReqSetHUD FeatureReq = "ReqSetHUD" // bool

	// whether swapping of the window buffers should wait for the vertical
	// retrace of the monitor.
	ReqSetVSync FeatureReq = "ReqSetVSync" // bool

	// change the window title.
	ReqSetTitle FeatureReq = "ReqSetTitle" // string

	// put gui output into full-screen mode.
	ReqFullScreen FeatureReq = "ReqFullScreen" // bool

	// hook to call when the drawable area changes size. the hook is called
	// immediately with the current size.
	ReqSetResizeHook FeatureReq = "ReqSetResizeHook" // ResizeHook

	// the size of the drawable area. GetFeature() only.
	ReqDrawableSize FeatureReq = "ReqDrawableSize" // [2]int
)
