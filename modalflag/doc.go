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

// Package modalflag wraps the flag package from the standard library and adds
// the concept of program modes. Each mode has its own set of flags.
//
// Arguments are supplied once with NewArgs(). Parse() then consumes arguments
// up to and including the first non-flag argument that matches one of the
// sub-modes added with AddSubModes(). Calling NewMode() starts a new flag set
// for the remaining arguments:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "HEADLESS")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "HEADLESS":
//		md.NewMode()
//		ticks := md.AddInt("ticks", 0, "number of ticks before exiting")
//		...
//	}
//
// The first sub-mode is the default and is selected when the first argument
// is not a recognised mode. Mode comparisons are case insensitive.
package modalflag
