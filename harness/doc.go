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

// Package harness discovers and runs the tests found in a test directory.
//
// discovery is deliberately simple. the named directory is scanned without
// descending into subdirectories and every file is classified by its
// extension. a file ending in .test names a unit test module that must have
// been registered with the catalogue at build time. a file ending in .scene
// is a scene description that will be given to the host application to
// interpret. files with any other extension are noted in the log and
// ignored.
//
// unit test modules all run before the first scene is loaded. unit tests are
// soft failures, a failing case is counted and reported but never stops the
// run. scene tests then run under the scenetest scheduler, one scene per
// frame loop, until the queue has drained.
//
// the names of failing tests are written to the fails file in the resources
// directory at the end of every run. the FailedOnly option reruns only the
// tests named in that file, which is a convenient way of retesting after a
// fix.
package harness
