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

package performance

import (
	"github.com/grafana/pyroscope-go"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/version"
)

// pyroscopeLogger directs messages from the pyroscope agent to the central
// logger. Debug messages are only logged with the logger.Debug permission.
type pyroscopeLogger struct{}

func (pyroscopeLogger) Infof(format string, args ...any) {
	logger.Logf(logger.Allow, "pyroscope", format, args...)
}

func (pyroscopeLogger) Debugf(format string, args ...any) {
	logger.Logf(logger.Debug, "pyroscope", format, args...)
}

func (pyroscopeLogger) Errorf(format string, args ...any) {
	logger.Logf(logger.Allow, "pyroscope", format, args...)
}

// StartPyroscope begins pushing profiles to the pyroscope server at the
// specified address. The returned function stops the agent and must be
// called before the program exits.
func StartPyroscope(address string, tags map[string]string) (func(), error) {
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: version.ApplicationName,
		ServerAddress:   address,
		Tags:            tags,
		Logger:          pyroscopeLogger{},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		return func() {}, curated.Errorf(ProfileError, err)
	}

	logger.Logf(logger.Allow, "pyroscope", "pushing profiles to %s", address)

	return func() {
		if err := profiler.Stop(); err != nil {
			logger.Log(logger.Allow, "pyroscope", err)
		}
	}, nil
}
