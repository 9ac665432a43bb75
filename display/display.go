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

// Package display is the optional preview window. it shows the frames
// captured from the application while the scene tests run. the harness does
// not need it, a run with no display behaves identically.
//
// SDL requires that the window is created, serviced and destroyed on the
// main OS thread. frames arrive from the harness goroutine through
// SetFrame(), which never blocks. when the harness outpaces the display the
// stale frame is dropped.
package display

import (
	"fmt"
	"image"
	"io"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// sentinel errors returned by the package.
const (
	// the user has closed the window. the harness drops its preview when it
	// sees this, the run itself carries on
	WindowClosed = "display: window closed"
)

// Display is an SDL window showing captured frames as they arrive. must be
// created with NewDisplay().
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// dimensions of the current texture. the texture is recreated when a
	// frame of a different size arrives
	width  int32
	height int32

	scale float32

	// frames crossing from the harness goroutine to the main thread
	frames chan *image.RGBA

	// closed by Service() when the user closes the window
	windowClosed chan struct{}
}

// NewDisplay is the preferred method of initialisation for the Display type.
//
// MUST ONLY be called from the main thread.
func NewDisplay(scale float32) (*Display, error) {
	if scale <= 0 {
		scale = 1.0
	}

	dsp := &Display{
		scale:        scale,
		frames:       make(chan *image.RGBA, 1),
		windowClosed: make(chan struct{}),
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, curated.Errorf("display: %v", err)
	}

	var err error

	// the window starts hidden and sized to nothing. it is shown when the
	// first frame arrives and we learn how big the application renders
	dsp.window, err = sdl.CreateWindow("Smokescreen",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, curated.Errorf("display: %v", err)
	}

	dsp.renderer, err = sdl.CreateRenderer(dsp.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("display: %v", err)
	}

	return dsp, nil
}

// SetFrame hands a frame to the display. the caller must not write to the
// image afterwards. safe to call from any goroutine.
//
// frames are dropped when the main thread has not serviced the previous one
// yet. dropping is preferable to stalling the test run.
func (dsp *Display) SetFrame(img *image.RGBA) error {
	select {
	case <-dsp.windowClosed:
		return curated.Errorf(WindowClosed)
	default:
	}

	select {
	case dsp.frames <- img:
	default:
	}

	return nil
}

// Service the display, showing the most recent frame and reacting to window
// events. intended to be called repeatedly as part of the main loop.
//
// MUST ONLY be called from the main thread.
func (dsp *Display) Service() {
	select {
	case img := <-dsp.frames:
		if err := dsp.show(img); err != nil {
			logger.Log(logger.Allow, "display", err)
		}
	default:
	}

	// loop until there are no more events to retrieve, timing out straight
	// away when the queue is empty
	empty := false
	for !empty {
		switch sdl.WaitEventTimeout(1).(type) {
		case *sdl.QuitEvent:
			select {
			case <-dsp.windowClosed:
			default:
				close(dsp.windowClosed)
				dsp.window.Hide()
			}
		case nil:
			empty = true
		}
	}
}

func (dsp *Display) show(img *image.RGBA) error {
	sz := img.Bounds().Size()
	if dsp.texture == nil || int32(sz.X) != dsp.width || int32(sz.Y) != dsp.height {
		if err := dsp.resize(int32(sz.X), int32(sz.Y)); err != nil {
			return err
		}
	}

	// the byte layout of an image.RGBA matches ABGR8888 on little endian
	// machines
	if err := dsp.texture.Update(nil, img.Pix, img.Stride); err != nil {
		return curated.Errorf("display: %v", err)
	}
	if err := dsp.renderer.Copy(dsp.texture, nil, nil); err != nil {
		return curated.Errorf("display: %v", err)
	}
	dsp.renderer.Present()

	return nil
}

func (dsp *Display) resize(width int32, height int32) error {
	if dsp.texture != nil {
		_ = dsp.texture.Destroy()
	}

	var err error

	dsp.texture, err = dsp.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), width, height)
	if err != nil {
		return curated.Errorf("display: %v", err)
	}
	dsp.width = width
	dsp.height = height

	dsp.window.SetSize(int32(float32(width)*dsp.scale), int32(float32(height)*dsp.scale))
	if err := dsp.renderer.SetScale(dsp.scale, dsp.scale); err != nil {
		return curated.Errorf("display: %v", err)
	}
	dsp.window.Show()

	return nil
}

// Destroy the display and free its resources.
//
// MUST ONLY be called from the main thread.
func (dsp *Display) Destroy(output io.Writer) {
	if dsp.texture != nil {
		if err := dsp.texture.Destroy(); err != nil {
			output.Write([]byte(fmt.Sprintf("%v\n", err)))
		}
	}
	if dsp.renderer != nil {
		if err := dsp.renderer.Destroy(); err != nil {
			output.Write([]byte(fmt.Sprintf("%v\n", err)))
		}
	}
	if dsp.window != nil {
		if err := dsp.window.Destroy(); err != nil {
			output.Write([]byte(fmt.Sprintf("%v\n", err)))
		}
	}
}
