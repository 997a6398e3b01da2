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
	"os"
	"strings"
	"testing"

	"github.com/dualview/dualview/compositor"
	"github.com/dualview/dualview/environment"
	"github.com/dualview/dualview/source/testcard"
	"github.com/dualview/dualview/test"
	"github.com/dualview/dualview/texstage"
)

func newHeadlessCompositor(t *testing.T) (*environment.Environment, *compositor.Compositor) {
	t.Helper()
	t.Chdir(t.TempDir())

	env, err := environment.NewEnvironment(environment.MainLabel, nil)
	test.DemandSuccess(t, err)

	cmp := compositor.NewCompositor(env, func(_ string) texstage.Device {
		return texstage.NewSoftDevice()
	})
	test.DemandSuccess(t, cmp.Realize())
	t.Cleanup(cmp.Unrealize)

	return env, cmp
}

func TestParseKey(t *testing.T) {
	test.ExpectEquality(t, parseKey('q'), keyQuit)
	test.ExpectEquality(t, parseKey(0x1b), keyQuit)
	test.ExpectEquality(t, parseKey('S'), keyStats)
	test.ExpectEquality(t, parseKey('l'), keyLog)
	test.ExpectEquality(t, parseKey('m'), keyMemviz)
	test.ExpectEquality(t, parseKey('?'), keyHelp)
	test.ExpectEquality(t, parseKey('x'), keyNone)
}

func TestSourcesFallBackToTestCard(t *testing.T) {
	env, cmp := newHeadlessCompositor(t)

	srcs, err := newSources(env, cmp, "")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, srcs.video.Name(), testcard.Name)
	test.ExpectEquality(t, len(srcs.all()), 2)

	w, h := srcs.ui.Size()
	test.ExpectEquality(t, w, 640)
	test.ExpectEquality(t, h, 360)
}

func TestHeadlessRender(t *testing.T) {
	env, cmp := newHeadlessCompositor(t)

	srcs, err := newSources(env, cmp, "")
	test.DemandSuccess(t, err)

	card := srcs.video.(*testcard.Card)
	test.ExpectSuccess(t, card.Step())

	w := &test.Writer{}
	hr := newHeadlessRenderer(cmp, w, 640, 360, 60)

	hr.render()
	test.ExpectEquality(t, hr.renders, 1)
	test.ExpectFailure(t, cmp.HasPending())

	// nothing pending so nothing rendered
	hr.render()
	test.ExpectEquality(t, hr.renders, 1)
}

func TestHeadlessKeys(t *testing.T) {
	_, cmp := newHeadlessCompositor(t)

	w := &test.Writer{}
	hr := newHeadlessRenderer(cmp, w, 640, 360, 120)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error)
	go func() {
		done <- hr.loop(ctx)
	}()

	test.ExpectSuccess(t, hr.key(ctx, 's'))
	test.ExpectSuccess(t, strings.Contains(w.String(), compositor.VideoLayer))

	test.ExpectSuccess(t, hr.key(ctx, 'm'))
	_, err := os.Stat(memvizFile)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, hr.key(ctx, 'x'))
	test.ExpectFailure(t, hr.key(ctx, 'q'))

	cancel()
	test.ExpectSuccess(t, <-done)
}
