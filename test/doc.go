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

// Package test contains helper functions to remove common boilerplate from
// the standard go test harness.
//
// The Expect functions record a failure and allow the test to continue. The
// Demand functions stop the test immediately and should be used when later
// parts of the test depend on the value being correct. For example, testing
// the number of frames drained from a queue before indexing into them.
//
// The ExpectSuccess() and ExpectFailure() functions interpret their argument
// according to its type:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// The nil type is always a success because of how errors are usually
// returned.
//
// The Writer type implements io.Writer and should be used to capture output.
package test
