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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(60)
//	defer fps.Close()
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		fps.Wait()
//		renderImage()
//	}
package limiter

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dualview/dualview/curated"
)

// InvalidRate is returned by NewFPSLimiter() if the rate is not positive.
const InvalidRate = "limiter: invalid rate (%v)"

// this is a really rough attempt at frame rate limiting. probably only any
// good if base performance of the machine is well above the required rate.

// FpsLimiter will trigger every frames per second.
type FpsLimiter struct {
	secondsPerFrame atomic.Int64

	tick chan bool
	quit chan struct{}
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter
// type. Close() should be called when the limiter is no longer required.
func NewFPSLimiter(framesPerSecond float64) (*FpsLimiter, error) {
	lim := &FpsLimiter{
		tick: make(chan bool),
		quit: make(chan struct{}),
	}

	if err := lim.SetLimit(framesPerSecond); err != nil {
		return nil, err
	}

	// run ticker concurrently
	go func() {
		adjustedSecondPerFrame := lim.period()
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}

			time.Sleep(max(adjustedSecondPerFrame, 0))

			nt := time.Now()
			adjustedSecondPerFrame -= nt.Sub(t) - lim.period()

			// don't let the adjustment run away after a long stall
			adjustedSecondPerFrame = min(adjustedSecondPerFrame, lim.period())
			t = nt
		}
	}()

	return lim, nil
}

func (lim *FpsLimiter) period() time.Duration {
	return time.Duration(lim.secondsPerFrame.Load())
}

// SetLimit changes the limit at which the FpsLimiter waits.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) error {
	if framesPerSecond <= 0 {
		return curated.Errorf(InvalidRate, framesPerSecond)
	}
	lim.secondsPerFrame.Store(int64(float64(time.Second) / framesPerSecond))
	return nil
}

// Wait will block until trigger.
func (lim *FpsLimiter) Wait() {
	select {
	case <-lim.tick:
	case <-lim.quit:
	}
}

// WaitContext is the same as Wait() but will return early with the context
// error if the context is done.
func (lim *FpsLimiter) WaitContext(ctx context.Context) error {
	select {
	case <-lim.tick:
		return nil
	case <-lim.quit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HasWaited will return true if time has already elapsed and false it it is
// still yet to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		// default case means that the channel receiving case doesn't block
		return false
	}
}

// Close stops the limiter. Any call to Wait() will return immediately.
// Close must only be called once.
func (lim *FpsLimiter) Close() {
	close(lim.quit)
}
