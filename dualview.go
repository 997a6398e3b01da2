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
	"os/signal"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/gui"
	"github.com/dualview/dualview/gui/sdlshell"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/modalflag"
	"github.com/dualview/dualview/performance"
	"github.com/dualview/dualview/prefs"
	"github.com/dualview/dualview/source"
	"github.com/dualview/dualview/statsview"
	"github.com/dualview/dualview/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// replace the default interrupt handling. the main thread calls the
	// function instead of quitting immediately.
	//
	// takes a func() argument.
	reqIntHandler stateReq = "INTHANDLER"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which accepts
// a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread. It
	// should service all gui events that are not safe to do in sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this is
// required because SDL requires window event handling (including creation) to
// occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be replaced with the reqIntHandler request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	var intHandler func()

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			if intHandler != nil {
				intHandler()
			} else {
				fmt.Println("\r")
				done = true
			}

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// an interface holding a nil pointer is not itself nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqIntHandler:
				if v, ok := state.args.(func()); ok {
					intHandler = v
				} else {
					panic(fmt.Sprintf("cannot convert %s arguments into func()", reqIntHandler))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "HEADLESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "HEADLESS":
		err = headless(md, sync)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags common to the RUN and HEADLESS modes.
type commonFlags struct {
	prefs     *string
	log       *bool
	debug     *bool
	video     *string
	profile   *string
	pyroscope *string
	statsview *bool
}

func addCommonFlags(md *modalflag.Modes) *commonFlags {
	return &commonFlags{
		prefs:     md.AddString("prefs", "", "preferences for this run only. eg. \"pipeline.coalesce::last-per-size\""),
		log:       md.AddBool("log", false, "echo log to stdout"),
		debug:     md.AddBool("debug", false, "log frame rate and dropped frames"),
		video:     md.AddString("video", "", "URI of video to decode. overrides the video.uri preference"),
		profile:   md.AddString("profile", "none", "run with profiling: cpu, mem, trace, all (comma separated)"),
		pyroscope: md.AddString("pyroscope", "", "address of pyroscope server for continuous profiling"),
		statsview: md.AddBool("statsview", false, "serve runtime statistics charts"),
	}
}

// setup acts on the common flags and creates the environment. The returned
// function should be called when the mode has finished.
func (f *commonFlags) setup(md *modalflag.Modes) (*environment.Environment, func(), error) {
	if *f.log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	prefs.PushCommandLineStack(*f.prefs)
	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "dualview", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, func() {}, err
	}

	if *f.debug {
		_ = env.Prefs.Debug.Set(true)
	}

	if *f.statsview {
		if statsview.Available() {
			statsview.Launch(md.Output)
		} else {
			fmt.Fprintln(md.Output, "! statsview not available in this build")
		}
	}

	stop := func() {}
	if *f.pyroscope != "" {
		stop, err = performance.StartPyroscope(*f.pyroscope, map[string]string{
			"mode": md.Mode(),
		})
		if err != nil {
			return nil, func() {}, err
		}
	}

	logger.Log(logger.Allow, "dualview", version.String())

	return env, stop, nil
}

// runProfiled runs the function with the profiling requested by the -profile
// flag.
func (f *commonFlags) runProfiled(md *modalflag.Modes, run func() error) error {
	profile, err := performance.ParseProfileString(*f.profile)
	if err != nil {
		return err
	}
	return performance.RunProfiler(profile, fmt.Sprintf("dualview_%s", md.Mode()), run)
}

// interruptible returns a context that is cancelled by the interrupt
// signal instead of the main thread quitting.
func interruptible(sync *mainSync) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sync.state <- stateRequest{req: reqIntHandler, args: func() {
		logger.Log(logger.Allow, "dualview", "interrupted")
		cancel()
	}}
	return ctx, cancel
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	flags := addCommonFlags(md)

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

	cmp := compositor.NewCompositor(env, sdlshell.NewDevice)

	// create gui
	sync.creator <- func() (GuiCreator, error) {
		return sdlshell.NewSdlShell(env, cmp)
	}

	// wait for creator result
	var shl *sdlshell.SdlShell
	select {
	case g := <-sync.creation:
		shl = g.(*sdlshell.SdlShell)
	case err := <-sync.creationError:
		return err
	}

	ctx, cancel := interruptible(sync)
	defer cancel()

	go func() {
		select {
		case <-shl.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	srcs, err := newSources(env, cmp, *flags.video)
	if err != nil {
		return err
	}

	err = shl.SetFeature(gui.ReqSetTitle, fmt.Sprintf("%s - %s", version.String(), srcs.video.Name()))
	if err != nil {
		return err
	}

	// the UI surface follows the size of the window
	err = shl.SetFeature(gui.ReqSetResizeHook, gui.ResizeHook(func(width int, height int) {
		if err := srcs.ui.Resize(width, height); err != nil {
			logger.Log(logger.Allow, "dualview", err)
		}
	}))
	if err != nil {
		return err
	}

	err = flags.runProfiled(md, func() error {
		return source.RunAll(ctx, srcs.all()...)
	})
	if err != nil {
		return err
	}

	return env.Prefs.Save()
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	if *revision {
		fmt.Fprintln(md.Output, r)
	} else {
		fmt.Fprintln(md.Output, v)
	}

	return nil
}
