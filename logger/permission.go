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

package logger

import "sync/atomic"

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should always be allowed.
var Allow Permission = allow{}

type debug struct {
	enabled atomic.Bool
}

func (d *debug) AllowLogging() bool {
	return d.enabled.Load()
}

var debugPermission = &debug{}

// Debug permits logging only when debug logging has been enabled with
// SetDebug(). Used for events that happen at frame rate, like dropped
// frames, which would otherwise flood the log.
var Debug Permission = debugPermission

// SetDebug enables or disables logging with the Debug permission.
func SetDebug(enable bool) {
	debugPermission.enabled.Store(enable)
}

func allowed(perm Permission) bool {
	if perm == nil {
		return false
	}
	return perm == Allow || perm.AllowLogging()
}
