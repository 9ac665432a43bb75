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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It works like the
// Errorf() function in the fmt package, taking a formatting pattern and
// placeholder values, and returning an error.
//
// The Is() function checks whether an error is a curated error made with a
// specific pattern. For example:
//
//	a := 10
//	e := curated.Errorf("error: value = %d", a)
//
//	if curated.Is(e, "error: value = %d") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain, not just at the head.
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. Another way of thinking about the distinction is 'expected' and
// 'unexpected' errors, depending on how the result of the function call is to
// be handled.
//
// The Error() function for curated errors normalises the error chain, making
// sure the chain does not contain duplicate adjacent parts. Parts are
// delimited by the sub-string ": " as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan). The practical advantage is that
// wrapping errors at every return site does not produce messages like:
//
//	scene test: scene test: file not found
//
// There is no special provision for sentinel errors but they are achievable
// with the Is() and Has() functions. Sentinel patterns should be stored as
// const strings, suitably named and commented.
package curated
