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

package test

import (
	"fmt"
	"strings"
	"testing"
)

// id builds the prefix used for test failure messages from the list of tags.
// an empty tag list produces an empty prefix
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}

	var s strings.Builder
	for i, tag := range tags {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(fmt.Sprintf("%v", tag))
	}

	return fmt.Sprintf("%s: ", s.String())
}

// expect converts argument v to a success condition suitable for its type:
//
//	bool -> bool == true
//	error -> error == nil
//	nil -> true
//
// an unsupported type is a testing fatality
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}

	return false
}

// ExpectEquality is used to test equality between one value and another
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is used to test inequality between one value and another.
// ie. the test does not want the values to be equal
func ExpectInequality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v == expectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectSuccess tests argument v for a success condition suitable for its
// type. see the expect() function for the supported types and what is
// considered a success value for each
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Errorf("%sa success value is expected for type %T", id(tags...), v)
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for its
// type. a failure condition is the inverse of the success condition described
// by the expect() function
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sa failure value is expected for type %T", id(tags...), v)
		return false
	}
	return true
}

// ExpectImplements tests whether an instance is an implementation of type T
func ExpectImplements[T comparable](t *testing.T, instance any, implements T, tags ...any) bool {
	t.Helper()
	if _, ok := instance.(T); !ok {
		t.Errorf("%simplementation test failed: type %T does not implement %T", id(tags...), instance, implements)
		return false
	}
	return true
}
