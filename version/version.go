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

// Package version reports the application name and the version and vcs
// revision of the build.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Dualview"

// number is set by the linker for release builds
//
//	go build -ldflags "-X github.com/dualview/dualview/version.number=v0.1.0"
var number string

// the version and revision as decided by init()
var version string
var revision string

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// If the version string is "unreleased" then the application was built from
// a vcs checkout without a version number. If the version string is "local"
// there is no version number and no vcs information. This happens when
// running with "go run .".
//
// The revision is suffixed with "+dirty" if the checkout had uncommitted
// changes.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns a one line description of the application version suitable
// for logging and the window title.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

func init() {
	info, _ := debug.ReadBuildInfo()
	version, revision = decide(number, info)
}

// decide the version and revision strings from the release number and the
// build information, which may be nil.
func decide(number string, info *debug.BuildInfo) (string, string) {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if info != nil {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	rev := "no revision information"
	if vcsRevision != "" {
		rev = vcsRevision
		if vcsModified {
			rev = fmt.Sprintf("%s+dirty", rev)
		}
	}

	if number != "" {
		return number, rev
	}
	if vcs {
		return "unreleased", rev
	}
	return "local", rev
}
