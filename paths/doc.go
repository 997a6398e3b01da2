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

// Package paths prepares paths to dualview resources, such as the
// preferences file and profiling output.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate base directory, creating the directory if required. For a
// release build the base is the user's config directory, on a modern Linux
// system for example:
//
//	/home/user/.config/dualview/preferences
//
// For development builds the base is ".dualview" in the current directory.
package paths
