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

// Package statsview serves live charts of the Go runtime statistics (heap,
// goroutines, GC pauses) while the shell is running. Useful when checking
// that the frame pipeline isn't allocating on every frame.
//
// The package is only functional when built with the "statsview" build tag.
// Without it Available() returns false and Launch() does nothing.
package statsview

// Address is the address on which the statistics server listens.
const Address = "localhost:12600"

// the path of the charts on the server
const url = "/debug/statsview"
