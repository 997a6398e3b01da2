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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/sync/errgroup"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/modalflag"
	"github.com/dualview/dualview/performance"
	"github.com/dualview/dualview/performance/limiter"
	"github.com/dualview/dualview/source"
	"github.com/dualview/dualview/terminal"
	"github.com/dualview/dualview/texstage"
)

// name of the file written by the memviz key command
const memvizFile = "dualview_stats.dot"

// number of log entries printed by the log key command
const logTail = 20

const headlessKeys = `keys: q quit, s statistics, l log, m memviz, h help`

// keyCommand is the action associated with a key press in headless mode.
type keyCommand int

const (
	keyNone keyCommand = iota
	keyQuit
	keyStats
	keyLog
	keyMemviz
	keyHelp
)

func parseKey(key byte) keyCommand {
	switch key {
	case 'q', 'Q', 0x1b:
		return keyQuit
	case 's', 'S':
		return keyStats
	case 'l', 'L':
		return keyLog
	case 'm', 'M':
		return keyMemviz
	case 'h', 'H', '?':
		return keyHelp
	}
	return keyNone
}

// headlessRenderer drives the compositor with software devices. All access to
// the compositor after it is realized happens in the render loop. Other
// goroutines use the service channel.
type headlessRenderer struct {
	cmp    *compositor.Compositor
	output io.Writer

	width  int
	height int
	rate   float64

	service chan func()

	// number of renders that uploaded at least one frame
	renders int
}

func newHeadlessRenderer(cmp *compositor.Compositor, output io.Writer, width int, height int, rate float64) *headlessRenderer {
	return &headlessRenderer{
		cmp:     cmp,
		output:  output,
		width:   width,
		height:  height,
		rate:    rate,
		service: make(chan func(), 1),
	}
}

// loop renders at the specified rate until the context is cancelled.
func (hr *headlessRenderer) loop(ctx context.Context) error {
	lim, err := limiter.NewFPSLimiter(hr.rate)
	if err != nil {
		return err
	}
	defer lim.Close()

	for {
		select {
		case f := <-hr.service:
			f()
		default:
		}

		if err := lim.WaitContext(ctx); err != nil {
			return nil
		}

		hr.render()
	}
}

// render if there is anything to render.
func (hr *headlessRenderer) render() {
	if !hr.cmp.HasPending() {
		return
	}
	if hr.cmp.Render(hr.width, hr.height) > 0 {
		hr.renders++
	}
}

// push a function to be run in the render loop. Waits for the function to
// complete or for the context to be cancelled.
func (hr *headlessRenderer) push(ctx context.Context, f func()) {
	done := make(chan struct{})
	select {
	case hr.service <- func() { f(); close(done) }:
	case <-ctx.Done():
		return
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// key handles a single key press. Returns false if the key was the quit key.
func (hr *headlessRenderer) key(ctx context.Context, key byte) bool {
	switch parseKey(key) {
	case keyQuit:
		return false

	case keyStats:
		hr.push(ctx, func() {
			fmt.Fprintf(hr.output, "\r%s", hr.cmp)
		})

	case keyLog:
		logger.Tail(hr.output, logTail)

	case keyMemviz:
		hr.push(ctx, func() {
			if err := hr.memviz(memvizFile); err != nil {
				logger.Log(logger.Allow, "headless", err)
				return
			}
			fmt.Fprintf(hr.output, "\rstatistics graph written to %s\n", memvizFile)
		})

	case keyHelp:
		fmt.Fprintf(hr.output, "\r%s\n", headlessKeys)
	}

	return true
}

// memviz writes a graph of the current pipeline statistics to the named file.
func (hr *headlessRenderer) memviz(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	stats := hr.cmp.Stats()
	memviz.Map(f, &stats)

	return nil
}

func headless(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	flags := addCommonFlags(md)
	duration := md.AddDuration("duration", 0, "run for a fixed duration. zero runs until quit")
	rate := md.AddFloat64("fps", 60.0, "rate at which the compositor renders")
	keys := md.AddBool("keys", true, "read commands from the terminal")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env, stop, err := flags.setup(md)
	if err != nil {
		return err
	}
	defer stop()

	cmp := compositor.NewCompositor(env, func(_ string) texstage.Device {
		return texstage.NewSoftDevice()
	})
	err = cmp.Realize()
	if err != nil {
		return err
	}
	defer cmp.Unrealize()

	srcs, err := newSources(env, cmp, *flags.video)
	if err != nil {
		return err
	}

	ctx, cancel := interruptible(sync)
	defer cancel()

	if *duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	width, height := srcs.ui.Size()
	hr := newHeadlessRenderer(cmp, md.Output, width, height, *rate)

	start := time.Now()

	err = flags.runProfiled(md, func() error {
		g, ctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			return source.RunAll(ctx, srcs.all()...)
		})

		g.Go(func() error {
			return hr.loop(ctx)
		})

		if *keys {
			kb, err := terminal.Open()
			if err != nil {
				logger.Log(logger.Allow, "headless", err)
			} else {
				fmt.Fprintln(md.Output, headlessKeys)
				g.Go(func() error {
					defer kb.Close()
					err := kb.Run(ctx, func(key byte) bool {
						return hr.key(ctx, key)
					})
					cancel()
					return err
				})
			}
		}

		return g.Wait()
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fps, _ := performance.CalcFPS(hr.renders, elapsed.Seconds(), *rate)
	fmt.Fprintf(md.Output, "\r%d renders in %.2fs (%.2f fps)\n", hr.renders, elapsed.Seconds(), fps)
	fmt.Fprint(md.Output, cmp)

	return env.Prefs.Save()
}
