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

// Package uisurface is a synthetic stand-in for the off-screen browser that
// renders the shell's user interface. It paints a status bar with a clock
// and a text field with a moving caret. Only the parts of the surface that
// change are reported as dirty, which is how an off-screen browser reports
// its paints.
//
// The surface can be resized at any time. The next paint after a resize is
// a full paint at the new size.
//
// A paint that is not accepted by the painter is not lost. Its dirty
// rectangles are carried over to the next paint, and a full paint is
// repeated until one is accepted.
package uisurface

import (
	"context"
	"image"
	"image/color"
	"slices"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/frame"
	"github.com/dualview/dualview/logger"
	"github.com/dualview/dualview/performance/limiter"
	"github.com/dualview/dualview/source"
	"github.com/dualview/dualview/version"
)

// Name of the source.
const Name = "ui"

// layout of the surface
const (
	barHeight   = 24
	margin      = 8
	fieldTop    = barHeight + 16
	fieldHeight = 16
	caretWidth  = 2
	caretSteps  = 32
	blinkPeriod = 500 * time.Millisecond

	// carried over rectangles are collapsed into a full paint beyond this
	maxDirty = 16
)

var (
	background = color.RGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xc0}
	bar        = color.RGBA{R: 0x30, G: 0x30, B: 0x48, A: 0xff}
	field      = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xff}
	foreground = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	caretColor = color.RGBA{R: 0x60, G: 0xc0, B: 0xff, A: 0xff}
)

// Surface is the synthetic UI source.
type Surface struct {
	source.Identity

	painter source.Painter
	rate    float64
	face    font.Face

	// requested size. protected by crit because Resize() can be called from
	// any goroutine
	crit   sync.Mutex
	width  int
	height int

	// the following fields are only accessed by the goroutine calling Step()
	canvas *image.RGBA
	bgra   []byte
	clock  string
	caret  image.Rectangle

	// rectangles not yet accepted by the painter
	dirty []frame.Rect

	// a full paint is outstanding
	full bool
}

// New is the preferred method of initialisation for the Surface type. The
// surface paints at most rate times a second.
func New(painter source.Painter, width int, height int, rate float64) *Surface {
	return &Surface{
		Identity: source.NewIdentity(Name),
		painter:  painter,
		rate:     rate,
		face:     basicfont.Face7x13,
		width:    width,
		height:   height,
	}
}

// Resize the surface. Safe to call from any goroutine.
func (s *Surface) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return curated.Errorf(source.SourceError, Name, "invalid size")
	}
	s.crit.Lock()
	defer s.crit.Unlock()
	s.width = width
	s.height = height
	return nil
}

// Size returns the current requested size of the surface.
func (s *Surface) Size() (int, int) {
	s.crit.Lock()
	defer s.crit.Unlock()
	return s.width, s.height
}

// Run implements the source.Source interface.
func (s *Surface) Run(ctx context.Context) error {
	lim, err := limiter.NewFPSLimiter(s.rate)
	if err != nil {
		return curated.Errorf(source.SourceError, Name, err)
	}
	defer lim.Close()

	for {
		if err := lim.WaitContext(ctx); err != nil {
			return nil
		}
		s.Step(time.Now())
	}
}

// Step paints the surface as it should appear at time t. Nothing is painted
// if nothing has changed and no earlier paint is outstanding. Returns true if
// a paint was accepted by the painter.
func (s *Surface) Step(t time.Time) bool {
	w, h := s.Size()

	if s.canvas == nil || s.canvas.Rect.Dx() != w || s.canvas.Rect.Dy() != h {
		s.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
		s.bgra = make([]byte, len(s.canvas.Pix))
		s.redraw(t)
		s.convert(s.canvas.Rect)
		s.dirty = s.dirty[:0]
		s.full = true
	} else {
		if c := t.Format("15:04:05"); c != s.clock {
			s.markDirty(s.drawClock(c))
		}

		if r := s.caretRect(t); r != s.caret {
			s.markDirty(s.clearCaret())
			s.markDirty(s.drawCaret(r))
		}
	}

	if len(s.dirty) > maxDirty {
		s.full = true
	}

	if s.full {
		// an empty dirty list is a full paint
		return s.paint(w, h, nil)
	}

	if len(s.dirty) == 0 {
		return false
	}

	return s.paint(w, h, s.dirty)
}

// paint sends the surface to the painter. The outstanding dirty rectangles
// and the full paint flag are only cleared once the paint is accepted.
func (s *Surface) paint(w int, h int, dirty []frame.Rect) bool {
	if !s.painter.Paint(s.bgra, w, h, dirty) {
		logger.Logf(logger.Debug, s.Tag(), "paint not accepted: %d rectangles outstanding", len(s.dirty))
		return false
	}
	s.dirty = s.dirty[:0]
	s.full = false
	return true
}

// markDirty converts the rectangle to BGRA and adds it to the dirty list.
func (s *Surface) markDirty(r image.Rectangle) {
	r = r.Intersect(s.canvas.Rect)
	if r.Empty() {
		return
	}
	s.convert(r)
	d := frame.Rect{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
	if !slices.Contains(s.dirty, d) {
		s.dirty = append(s.dirty, d)
	}
}

// convert the area of the canvas to BGRA.
func (s *Surface) convert(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		o := s.canvas.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			s.bgra[o] = s.canvas.Pix[o+2]
			s.bgra[o+1] = s.canvas.Pix[o+1]
			s.bgra[o+2] = s.canvas.Pix[o]
			s.bgra[o+3] = s.canvas.Pix[o+3]
			o += 4
		}
	}
}

func (s *Surface) fill(r image.Rectangle, c color.Color) {
	draw.Draw(s.canvas, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (s *Surface) text(x int, baseline int, str string) image.Rectangle {
	d := font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(foreground),
		Face: s.face,
		Dot:  fixed.P(x, baseline),
	}
	b, _ := d.BoundString(str)
	d.DrawString(str)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

func (s *Surface) redraw(t time.Time) {
	w := s.canvas.Rect.Dx()

	s.fill(s.canvas.Rect, background)
	s.fill(image.Rect(0, 0, w, barHeight), bar)
	s.text(margin, barHeight-margin, version.ApplicationName)
	s.fill(s.fieldRect(), field)

	s.clock = ""
	s.drawClock(t.Format("15:04:05"))
	s.caret = image.Rectangle{}
	s.drawCaret(s.caretRect(t))
}

// clockRect is the area of the status bar occupied by the clock.
func (s *Surface) clockRect() image.Rectangle {
	width := font.MeasureString(s.face, "00:00:00").Ceil()
	x := s.canvas.Rect.Dx() - margin - width
	return image.Rect(x, 0, x+width, barHeight)
}

func (s *Surface) drawClock(c string) image.Rectangle {
	r := s.clockRect()
	s.fill(r, bar)
	s.text(r.Min.X, barHeight-margin, c)
	s.clock = c
	return r
}

func (s *Surface) fieldRect() image.Rectangle {
	return image.Rect(margin, fieldTop, s.canvas.Rect.Dx()-margin, fieldTop+fieldHeight)
}

// caretRect returns the position of the caret at time t. The rectangle is
// empty while the caret is blinked off.
func (s *Surface) caretRect(t time.Time) image.Rectangle {
	if (t.UnixMilli()/blinkPeriod.Milliseconds())%2 == 1 {
		return image.Rectangle{}
	}
	f := s.fieldRect()
	advance := s.face.Metrics().Height.Ceil() / 2
	pos := int(t.Unix()%caretSteps) * advance
	x := f.Min.X + 2 + pos%max(f.Dx()-4, 1)
	return image.Rect(x, f.Min.Y+2, x+caretWidth, f.Max.Y-2)
}

func (s *Surface) clearCaret() image.Rectangle {
	r := s.caret
	if !r.Empty() {
		s.fill(r, field)
	}
	s.caret = image.Rectangle{}
	return r
}

func (s *Surface) drawCaret(r image.Rectangle) image.Rectangle {
	if !r.Empty() {
		s.fill(r, caretColor)
	}
	s.caret = r
	return r
}
