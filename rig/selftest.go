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

import (
	"fmt"
	"image/color"

	"github.com/ferrovia/smokescreen/expect"
	"github.com/ferrovia/smokescreen/unittest"
)

// Catalog returns the unit test modules built into the rig. the standalone
// binary registers these so that .test files in the test directory have
// something to resolve against.
func Catalog() (*unittest.Catalog, error) {
	cat := unittest.NewCatalog()

	for _, mod := range []unittest.Module{
		patternsModule(),
		captureModule(),
	} {
		if err := cat.Register(mod); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

func patternsModule() unittest.Module {
	return unittest.Module{
		Name: "patterns",
		Cases: []unittest.Case{
			{Name: "blank_is_black", Run: func(rec *expect.Recorder) {
				for _, frame := range []int{1, 100, 600} {
					expect.Equal(rec, blank(10, 10, frame), color.RGBA{A: 255},
						fmt.Sprintf("blank pixel on frame %d", frame))
				}
			}},
			{Name: "determinism", Run: func(rec *expect.Recorder) {
				// the comparator depends on every pattern producing the same
				// pixel for the same arguments on every call
				for name, p := range patterns {
					expect.Equal(rec, p(17, 23, 99), p(17, 23, 99), name)
				}
			}},
			{Name: "gradient_corners", Run: func(rec *expect.Recorder) {
				expect.Equal(rec, gradient(0, 0, 256),
					color.RGBA{A: 255}, "top left")
				expect.Equal(rec, gradient(FrameWidth-1, FrameHeight-1, 256),
					color.RGBA{R: 255, G: 255, A: 255}, "bottom right")
			}},
			{Name: "bars_animate", Run: func(rec *expect.Recorder) {
				// the bar boundary moves with the frame number. pixel 38 sits
				// one short of the first boundary on frame 1 and crosses it
				// on frame 2
				a := bars(38, 0, 1)
				b := bars(38, 0, 2)
				rec.Expect(a != b, "bar boundary did not move between frames")
			}},
		},
	}
}

func captureModule() unittest.Module {
	var r *Rig

	return unittest.Module{
		Name: "capture",
		BeforeEach: func(rec *expect.Recorder) {
			r = NewRig()
			r.Tick()
		},
		Cases: []unittest.Case{
			{Name: "dimensions", Run: func(rec *expect.Recorder) {
				img, err := r.CaptureFrame()
				if !rec.Expect(err == nil, "capture failed") {
					return
				}
				sz := img.Bounds().Size()
				expect.Equal(rec, sz.X, FrameWidth, "width")
				expect.Equal(rec, sz.Y, FrameHeight, "height")
			}},
			{Name: "copy_isolated", Run: func(rec *expect.Recorder) {
				// writing to a captured frame must not show up in later
				// captures
				img, err := r.CaptureFrame()
				if !rec.Expect(err == nil, "capture failed") {
					return
				}
				img.Pix[0] = 99

				again, err := r.CaptureFrame()
				if !rec.Expect(err == nil, "capture failed") {
					return
				}
				expect.Equal(rec, again.Pix[0], uint8(0), "first red byte")
			}},
			{Name: "blank_without_scene", Run: func(rec *expect.Recorder) {
				img, err := r.CaptureFrame()
				if !rec.Expect(err == nil, "capture failed") {
					return
				}
				expect.Equal(rec, img.RGBAAt(100, 100), color.RGBA{A: 255}, "pixel")
			}},
		},
	}
}
