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

package logger_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	w.Reset()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeatedEntries(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "producer", "dropped")
	log.Log(logger.Allow, "producer", "dropped")
	log.Log(logger.Allow, "producer", "dropped")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "producer: dropped (repeat x3)\n")
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", 1)
	log.Log(logger.Allow, "b", 2)
	log.Log(logger.Allow, "c", 3)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}

func TestDebugPermission(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	logger.SetDebug(false)
	log.Log(logger.Debug, "tag", "hidden")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	logger.SetDebug(true)
	defer logger.SetDebug(false)
	log.Log(logger.Debug, "tag", "visible")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: visible\n")
}

func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("test error")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Reset()

	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestStringerLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", stringerTest{})
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "early", "entry")
	log.SetEcho(w, true)
	log.Log(logger.Allow, "late", "entry")
	test.ExpectEquality(t, w.String(), "early: entry\nlate: entry\n")

	log.SetEcho(nil, false)
	log.Log(logger.Allow, "after", "entry")
	test.ExpectEquality(t, w.String(), "early: entry\nlate: entry\n")
}

// the producer logs from the render thread while the GUI reads
func TestConcurrentLogging(t *testing.T) {
	log := logger.NewLogger(10)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				log.Logf(logger.Allow, "writer", "%d %d", i, j)
			}
		}()
	}
	wg.Wait()

	test.ExpectEquality(t, len(log.Copy()), 10)
}
