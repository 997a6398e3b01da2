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

// Package terminal reads single key presses from the controlling terminal.
// The terminal is put into cbreak mode so that keys are available without
// the user pressing return and so that the interrupt key still works.
package terminal

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pkg/term"

	"github.com/dualview/dualview/curated"
)

// TerminalError is the pattern for errors returned by this package.
const TerminalError = "terminal: %v"

// the device to open for key presses
const device = "/dev/tty"

// how long a single read waits before checking the context for cancellation
const pollPeriod = 100 * time.Millisecond

// Keys is an open terminal.
type Keys struct {
	t *term.Term
}

// Open the controlling terminal. Fails if the process has no controlling
// terminal.
func Open() (*Keys, error) {
	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	err = t.SetReadTimeout(pollPeriod)
	if err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, curated.Errorf(TerminalError, err)
	}

	return &Keys{t: t}, nil
}

// Close restores the terminal to the mode it was in before Open().
func (k *Keys) Close() error {
	err := k.t.Restore()
	if cerr := k.t.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}

// Run calls handle for every key pressed until the context is cancelled or
// handle returns false.
func (k *Keys) Run(ctx context.Context, handle func(key byte) bool) error {
	return run(ctx, k.t, handle)
}

// run is separate from Keys.Run() so that it can be tested with any reader.
// A read that returns io.EOF is a read that timed out.
func run(ctx context.Context, r io.Reader, handle func(key byte) bool) error {
	b := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := r.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			return curated.Errorf(TerminalError, err)
		}
		if n == 1 && !handle(b[0]) {
			return nil
		}
	}
	return nil
}
