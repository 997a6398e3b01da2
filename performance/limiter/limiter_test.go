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

package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/performance/limiter"
	"github.com/dualview/dualview/test"
)

func TestInvalidRate(t *testing.T) {
	_, err := limiter.NewFPSLimiter(0)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, limiter.InvalidRate))
}

func TestWait(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(100)
	test.DemandSuccess(t, err)
	defer lim.Close()

	start := time.Now()
	for range 10 {
		lim.Wait()
	}

	// ten waits at 100fps take at least 90ms. the first tick is immediate
	test.ExpectSuccess(t, time.Since(start) >= 80*time.Millisecond)
}

func TestWaitContext(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(0.1)
	test.DemandSuccess(t, err)
	defer lim.Close()

	// the first tick is immediate
	test.ExpectSuccess(t, lim.WaitContext(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	test.ExpectFailure(t, lim.WaitContext(ctx))
}

func TestClose(t *testing.T) {
	lim, err := limiter.NewFPSLimiter(0.1)
	test.DemandSuccess(t, err)
	lim.Wait()
	lim.Close()

	// returns immediately after Close()
	lim.Wait()
	test.ExpectSuccess(t, lim.WaitContext(context.Background()))
}
