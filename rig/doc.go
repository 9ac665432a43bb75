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

// Package rig is a small, deterministic implementation of the host.Renderer
// interface. it stands in for a real application so that the harness can be
// tested, demonstrated and profiled without one.
//
// frames are filled from a named pattern generator. every pattern is a pure
// function of pixel position and frame number, which makes captured frames
// reproducible from one run to the next. that reproducibility is what the
// self test scenes rely on.
//
// scenes are described by short scripts, one directive per line. lines
// beginning with # are comments. the directives are
//
//	pattern <name>
//	screenshot <frame> <name>
//	finish <frame> <pass|fail>
//
// frame numbers are relative to the start of the scene and begin at 1. the
// finish directive reports the scene's verdict, although a verdict of pass
// will be downgraded if any screenshot comparison has failed by then. a
// script without a finish directive never signals a result, which is a handy
// way of testing frame budgets.
package rig
