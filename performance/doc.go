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

// Package performance contains helper functions relating to performance.
//
// RunProfiler() wraps a function with the profile types requested on the
// command line. The profiles are written to files when the function returns.
//
// StartPyroscope() pushes profiles to a pyroscope server for as long as the
// program runs. It is useful for watching a long running session where a
// profile file would be too coarse.
//
// CalcFPS() calculates frames-per-second in aggregate along with an accuracy
// value, as compared to the expected rate. It is not suitable for "live" FPS
// monitoring. For that see the scheduler package.
package performance
