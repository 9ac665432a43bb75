// This file is part of Smokescreen.
//
// Smokescreen is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Smokescreen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Smokescreen.  If not, see <https://www.gnu.org/licenses/>.

package rig

import "image/color"

// pattern functions decide the colour of a single pixel. they must be pure,
// the same arguments always produce the same colour. frame numbers begin at
// 1, not 0.
type pattern func(x int, y int, frame int) color.RGBA

// patterns that can be named by the pattern directive of a scene script.
var patterns = map[string]pattern{
	"blank":    blank,
	"bars":     bars,
	"gradient": gradient,
	"checker":  checker,
}

func blank(x int, y int, frame int) color.RGBA {
	return color.RGBA{A: 255}
}

// palette for the bars pattern. loosely the order of a broadcast test card.
var barsPalette = []color.RGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 0, G: 255, B: 255, A: 255},
	{R: 0, G: 255, B: 0, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 0, G: 0, B: 0, A: 255},
}

// vertical colour bars that creep one pixel to the left per frame.
func bars(x int, y int, frame int) color.RGBA {
	barWidth := FrameWidth / len(barsPalette)
	return barsPalette[((x+frame)/barWidth)%len(barsPalette)]
}

// red increases left to right, green top to bottom and blue with the frame
// number. exercises every channel of the comparator.
func gradient(x int, y int, frame int) color.RGBA {
	return color.RGBA{
		R: uint8(x * 255 / (FrameWidth - 1)),
		G: uint8(y * 255 / (FrameHeight - 1)),
		B: uint8(frame % 256),
		A: 255,
	}
}

// checkerboard of 16 pixel squares. the phase flips every 32 frames.
func checker(x int, y int, frame int) color.RGBA {
	if (x/16+y/16+frame/32)%2 == 0 {
		return color.RGBA{R: 230, G: 230, B: 230, A: 255}
	}
	return color.RGBA{R: 25, G: 25, B: 25, A: 255}
}
