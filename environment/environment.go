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

package environment

import (
	"fmt"
	"sync"
)

// Label is used to name the environment.
type Label string

// MainLabel is the label of the environment belonging to the main window.
const MainLabel = Label("")

// Environment provides context for one compositing pipeline. It replaces any
// process-wide state: the GPU description, the preferences and the name of
// the instance all travel with the Environment.
type Environment struct {
	Label Label

	// the pipeline preferences
	Prefs *Preferences

	gpuOnce sync.Once
	gpu     GPU
	gpuSet  chan struct{}
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created and loaded from disk. Providing a non-nil value allows more than
// one environment to share preferences.
func NewEnvironment(label Label, prefs *Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		gpuSet: make(chan struct{}),
	}

	if prefs == nil {
		var err error
		prefs, err = NewPreferences()
		if err != nil {
			return nil, err
		}
	}
	env.Prefs = prefs

	return env, nil
}

func (env *Environment) String() string {
	if env.IsMain() {
		return "main"
	}
	return string(env.Label)
}

// IsMain returns true if the environment is for the main window.
func (env *Environment) IsMain() bool {
	return env.Label == MainLabel
}

// Is checks the environment label and returns true if it matches.
func (env *Environment) Is(label Label) bool {
	return env.Label == label
}

// GPU describes the graphics device in use.
type GPU struct {
	Vendor   string
	Renderer string
	Version  string
}

func (g GPU) String() string {
	if g.Renderer == "" {
		return "unknown GPU"
	}
	return fmt.Sprintf("%s (%s) %s", g.Renderer, g.Vendor, g.Version)
}

// SetGPU records the GPU description. Only the first call has any effect.
// Returns false if the GPU had already been set.
func (env *Environment) SetGPU(g GPU) bool {
	set := false
	env.gpuOnce.Do(func() {
		env.gpu = g
		close(env.gpuSet)
		set = true
	})
	return set
}

// GPU returns the description of the GPU. The second return value is false
// if the GPU has not yet been set.
func (env *Environment) GPU() (GPU, bool) {
	select {
	case <-env.gpuSet:
		return env.gpu, true
	default:
		return GPU{}, false
	}
}
