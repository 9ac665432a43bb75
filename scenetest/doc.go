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

// Package scenetest schedules scene tests over the frame loop of the host
// application. the application remains in control of time: the harness calls
// Tick() once per rendered frame and the scheduler advances its state machine
// by at most one transition in response.
//
// scenes queue up as Descriptors before the run starts. on each tick of an
// idle scheduler the next descriptor is popped (most recently pushed first,
// unless FIFO ordering has been asked for) and its scene loaded into the
// application. the scene then has a budget of frames in which to signal a
// result through the completion function registered with it. a scene that
// stays silent past its budget is failed by the scheduler.
//
// the scheduler is not safe for concurrent use. it expects to be ticked from
// the same goroutine that drives the application, which in practice means the
// main thread.
package scenetest
