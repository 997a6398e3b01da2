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

package prefs

import "slices"

// list of preference keys that are no longer used. they are dropped from the
// file on the next save.
var defunct = []string{
	"pipeline.queuedepth",
	"pipeline.singlebuffer",
}

func isDefunct(key string) bool {
	return slices.Contains(defunct, key)
}
