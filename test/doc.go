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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect group of functions test a value against an expectation and mark
// the test as having failed when the expectation is not met. The Demand group
// test the same expectations but treat an unmet expectation as a testing
// fatality.
//
// ExpectSuccess() and ExpectFailure() interpret their argument according to
// its type. The documentation for those functions describe the currently
// supported types.
//
// It is worth describing how these functions handle the nil type because it
// is not obvious. The nil type is considered a success and consequently will
// cause ExpectFailure to fail and ExpectSuccess to succeed. This may not be
// how we want to interpret nil in all situations but because of how errors
// usually work (nil to indicate no error) we *need* to interpret nil in this
// way.
//
// The Writer type meanwhile, implements the io.Writer interface and should be
// used to capture output. The Writer.Compare() function can then be used to
// test for equality.
package test
