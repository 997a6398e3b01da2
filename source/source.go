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

// Package source defines the render sources that feed the frame pipelines.
// A source runs on its own goroutine, standing in for the render thread of
// an embedded browser or video decoder, and paints frames through a Painter.
//
// Concrete sources are in the sub-packages.
package source

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/logger"
)

// Sentinel error patterns.
const (
	UnsupportedSource = "source: %s is not supported in this build"
	SourceError       = "source: %s: %v"
)

// Painter receives paints from a source. The producer.Producer type
// implements this interface.
type Painter interface {
	Paint(pixels []byte, width int, height int, dirty []frame.Rect) bool
}

// Source is a render source.
type Source interface {
	Name() string

	// unique for every instance of a source
	ID() uuid.UUID

	// Run paints frames until the context is cancelled or the source comes
	// to an end. Returns nil in both of those cases.
	Run(ctx context.Context) error
}

// Identity implements the Name() and ID() functions of the Source interface.
// It can be embedded in a source implementation.
type Identity struct {
	name string
	id   uuid.UUID
}

// NewIdentity creates an identity with a new random ID.
func NewIdentity(name string) Identity {
	return Identity{
		name: name,
		id:   uuid.New(),
	}
}

// Name implements the Source interface.
func (id Identity) Name() string {
	return id.name
}

// ID implements the Source interface.
func (id Identity) ID() uuid.UUID {
	return id.id
}

// Tag returns a string suitable for use as a logger tag.
func (id Identity) Tag() string {
	return id.name + "/" + id.id.String()[:8]
}

// RunAll runs every source on its own goroutine. If any source fails the
// context passed to the other sources is cancelled. Returns the first error.
func RunAll(ctx context.Context, sources ...Source) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range sources {
		g.Go(func() error {
			logger.Logf(logger.Allow, "source", "starting %s (%s)", s.Name(), s.ID())
			err := s.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				logger.Logf(logger.Allow, "source", "%s ended: %v", s.Name(), err)
				return err
			}
			logger.Logf(logger.Allow, "source", "%s ended", s.Name())
			return nil
		})
	}
	return g.Wait()
}
