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
	"image"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/host"
)

// dimensions of the rendered frame.
const (
	FrameWidth  = 320
	FrameHeight = 240
)

// Rig is a deterministic stand in for a real application. it implements the
// host.Renderer interface. must be created with NewRig().
type Rig struct {
	frame    *image.RGBA
	frameNum int
	current  *Scene
	quit     bool

	// the comparator fault that stopped the rig, if any
	fault error
}

// NewRig is the preferred method of initialisation for the Rig type.
func NewRig() *Rig {
	return &Rig{
		frame: image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}
}

// Quit asks the rig to stop. the next call to Tick() will return false.
func (rig *Rig) Quit() {
	rig.quit = true
}

// Fault returns the error that stopped the rig, or nil if the rig has not
// stopped because of one. gives the caller something better to report than
// the bare fact that the application quit.
func (rig *Rig) Fault() error {
	return rig.fault
}

// Tick renders the next frame and advances the loaded scene, if there is
// one.
func (rig *Rig) Tick() bool {
	if rig.quit {
		return false
	}
	rig.frameNum++

	if scn := rig.current; scn != nil {
		scn.frame++

		// patterns are driven by the scene relative frame number so that a
		// screenshot looks the same however many frames ran before the
		// scene was loaded
		rig.render(scn.pattern, scn.frame)
		scn.execute()
	} else {
		rig.render(patterns["blank"], rig.frameNum)
	}

	return true
}

// LoadScene reads a scene script and makes it the current scene. only one
// scene can be loaded at a time.
func (rig *Rig) LoadScene(path string) (host.Scene, error) {
	if rig.current != nil {
		return nil, curated.Errorf("rig: %s is still loaded", rig.current.name)
	}

	scn, err := loadScript(path)
	if err != nil {
		return nil, err
	}
	scn.rig = rig

	rig.current = scn
	return scn, nil
}

// UnloadScene removes the current scene. the scene argument must be the
// scene returned by the matching LoadScene().
func (rig *Rig) UnloadScene(scene host.Scene) error {
	if rig.current == nil || scene != rig.current {
		return curated.Errorf("rig: scene is not loaded")
	}
	rig.current = nil
	return nil
}

// CaptureFrame returns a copy of the most recently rendered frame.
func (rig *Rig) CaptureFrame() (*image.RGBA, error) {
	img := image.NewRGBA(rig.frame.Bounds())
	copy(img.Pix, rig.frame.Pix)
	return img, nil
}

func (rig *Rig) render(p pattern, frame int) {
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			rig.frame.SetRGBA(x, y, p(x, y, frame))
		}
	}
}
