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

// Package testcard is a synthetic video source. It paints moving colour
// bars, always as a full frame, at a fixed rate.
package testcard

import (
	"context"
	"time"

	"github.com/dualview/dualview/curated"
	"github.com/dualview/dualview/performance/limiter"
	"github.com/dualview/dualview/source"
)

// Name of the source.
const Name = "testcard"

// the colour bars in BGRA order
var bars = [][4]byte{
	{0xc0, 0xc0, 0xc0, 0xff}, // white
	{0x00, 0xc0, 0xc0, 0xff}, // yellow
	{0xc0, 0xc0, 0x00, 0xff}, // cyan
	{0x00, 0xc0, 0x00, 0xff}, // green
	{0xc0, 0x00, 0xc0, 0xff}, // magenta
	{0x00, 0x00, 0xc0, 0xff}, // red
	{0xc0, 0x00, 0x00, 0xff}, // blue
}

// Card is the test card source.
type Card struct {
	source.Identity

	painter source.Painter
	width   int
	height  int
	rate    float64

	pixels []byte
	frame  int
}

// New is the preferred method of initialisation for the Card type.
func New(painter source.Painter, width int, height int, rate float64) (*Card, error) {
	if width <= 0 || height <= 0 {
		return nil, curated.Errorf(source.SourceError, Name, "invalid size")
	}
	return &Card{
		Identity: source.NewIdentity(Name),
		painter:  painter,
		width:    width,
		height:   height,
		rate:     rate,
		pixels:   make([]byte, width*height*4),
	}, nil
}

// Run implements the source.Source interface.
func (c *Card) Run(ctx context.Context) error {
	lim, err := limiter.NewFPSLimiter(c.rate)
	if err != nil {
		return curated.Errorf(source.SourceError, Name, err)
	}
	defer lim.Close()

	for {
		if err := lim.WaitContext(ctx); err != nil {
			return nil
		}
		c.Step()
	}
}

// Step paints the next frame. Returns true if the paint was accepted.
func (c *Card) Step() bool {
	c.render()
	c.frame++
	return c.painter.Paint(c.pixels, c.width, c.height, nil)
}

// Frame returns the number of frames painted.
func (c *Card) Frame() int {
	return c.frame
}

func (c *Card) render() {
	barWidth := max(c.width/len(bars), 1)

	// the bars scroll one pixel per frame. the bottom eighth of the card is
	// a frame counter strip that shows whether frames are being dropped
	stripTop := c.height - c.height/8

	for y := range c.height {
		row := c.pixels[y*c.width*4 : (y+1)*c.width*4]
		for x := range c.width {
			var px [4]byte
			if y < stripTop {
				px = bars[((x+c.frame)/barWidth)%len(bars)]
			} else if x*60/c.width == c.frame%60 {
				px = [4]byte{0xff, 0xff, 0xff, 0xff}
			} else {
				px = [4]byte{0x10, 0x10, 0x10, 0xff}
			}
			copy(row[x*4:], px[:])
		}
	}
}

// Duration returns the time taken to paint the specified number of frames
// at the card's rate.
func (c *Card) Duration(frames int) time.Duration {
	return time.Duration(float64(frames) / c.rate * float64(time.Second))
}
