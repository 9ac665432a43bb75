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

// Package host defines the connection between the test harness and the
// rendering application under test. The harness drives the application
// through these interfaces and nothing else, meaning any application that can
// satisfy the Renderer interface can be put under test.
//
// The package deliberately knows nothing about how the application renders a
// frame. It exists mainly to avoid a circular import between the application
// and the harness packages.
package host

import "image"

// Renderer is a minimal abstraction of the rendering application. The harness
// calls Tick() once per frame of the application's render loop and the
// application must not block inside it.
type Renderer interface {
	// Tick advances the application by a single frame. The return value
	// indicates whether the application is still running. Once Tick()
	// returns false the harness abandons the run.
	Tick() bool

	// LoadScene prepares the scene test stored in the named file. The scene
	// begins executing on subsequent calls to Tick().
	LoadScene(path string) (Scene, error)

	// UnloadScene releases any resources held by a scene previously returned
	// by LoadScene().
	UnloadScene(scene Scene) error

	// CaptureFrame returns a copy of the most recently completed frame. The
	// caller owns the returned image.
	CaptureFrame() (*image.RGBA, error)
}

// Scene is a single scene test running inside the application.
type Scene interface {
	// Name of the scene as it should appear in logs and verdict lines.
	Name() string

	// OnFinished registers the function the scene calls when it reaches its
	// own verdict. The ok argument is true if the scene test passed.
	//
	// The scene must call the registered function at most once per load.
	OnFinished(finished func(ok bool))
}
