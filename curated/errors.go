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

package curated

import (
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error.
//
// Unlike the Errorf() function in the fmt package the first argument is named
// "pattern" and not "format". The pattern is used as the identity of the
// error by the Is() and Has() functions so the name seems more appropriate.
func Errorf(pattern string, values ...any) error {
	// the error is not formatted yet, despite the function name. the pattern
	// and values are stored as given and formatting happens in the Error()
	// function
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error returns the normalised error message. Normalisation being the removal
// of duplicate adjacent parts in the message chain. Parts are delimited by
// the sub-string ": ". Letter-case and white space are not affected.
//
// Implements the go language error interface.
func (er curated) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	// de-duplicate error message parts
	p := strings.SplitN(s, ": ", 3)
	if len(p) > 1 && p[0] == p[1] {
		return strings.Join(p[1:], ": ")
	}

	return strings.Join(p, ": ")
}

// IsAny checks if the error is a curated error, whatever the pattern.
func IsAny(err error) bool {
	if err == nil {
		return false
	}

	_, ok := err.(curated)
	return ok
}

// Is checks if the error is a curated error with the specified pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}

	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}

	return false
}

// Has checks if the specified pattern appears anywhere in the error chain.
func Has(err error, pattern string) bool {
	if err == nil || !IsAny(err) {
		return false
	}

	if Is(err, pattern) {
		return true
	}

	for _, v := range err.(curated).values {
		if er, ok := v.(curated); ok {
			if Has(er, pattern) {
				return true
			}
		}
	}

	return false
}
