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

package performance_test

import (
	"errors"
	"os"
	"testing"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/performance"
	"github.com/dualview/dualview/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("cpu, mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)
	test.ExpectEquality(t, p.String(), "cpu,mem")

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)

	p, err = performance.ParseProfileString("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "none")

	_, err = performance.ParseProfileString("cpu,gpu")
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, performance.ProfileError))
}

func TestRunProfiler(t *testing.T) {
	t.Chdir(t.TempDir())

	var ran bool
	err := performance.RunProfiler(performance.ProfileMem, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat("test_mem.profile")
	test.ExpectSuccess(t, err)

	// errors from the function are returned unchanged
	sentinel := errors.New("stop")
	err = performance.RunProfiler(performance.ProfileNone, "test", func() error {
		return sentinel
	})
	test.ExpectSuccess(t, errors.Is(err, sentinel))
}

func TestCalcFPS(t *testing.T) {
	fps, acc := performance.CalcFPS(300, 5, 60)
	test.ExpectApproximate(t, fps, 60.0, 0.001)
	test.ExpectApproximate(t, acc, 100.0, 0.001)

	fps, acc = performance.CalcFPS(100, 0, 60)
	test.ExpectEquality(t, fps, 0.0)
	test.ExpectEquality(t, acc, 0.0)
}
