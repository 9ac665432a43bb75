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

package curated_test

import (
	"errors"
	"testing"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/test"
)

const testPattern = "test error: %s"

func TestIdentity(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")

	test.ExpectEquality(t, curated.IsAny(e), true)
	test.ExpectEquality(t, curated.Is(e, testPattern), true)
	test.ExpectEquality(t, curated.Is(e, "some other pattern"), false)

	// plain errors are never curated
	p := errors.New("plain error")
	test.ExpectEquality(t, curated.IsAny(p), false)
	test.ExpectEquality(t, curated.Is(p, testPattern), false)

	// nil is not an error of any kind
	test.ExpectEquality(t, curated.IsAny(nil), false)
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, "foo")
	f := curated.Errorf("wrapping: %v", e)

	// Is() only matches the head of the chain
	test.ExpectEquality(t, curated.Is(f, testPattern), false)
	test.ExpectEquality(t, curated.Is(f, "wrapping: %v"), true)

	// Has() matches anywhere in the chain
	test.ExpectEquality(t, curated.Has(f, testPattern), true)
	test.ExpectEquality(t, curated.Has(f, "wrapping: %v"), true)
	test.ExpectEquality(t, curated.Has(e, "wrapping: %v"), false)
}

func TestNormalisation(t *testing.T) {
	// adjacent duplicate parts are removed when the error message is printed
	e := curated.Errorf("scene test: %v", curated.Errorf("scene test: %v", errors.New("file not found")))
	test.ExpectEquality(t, e.Error(), "scene test: file not found")

	// non-adjacent parts are left alone
	f := curated.Errorf("harness: %v", curated.Errorf("scene test: %v", errors.New("file not found")))
	test.ExpectEquality(t, f.Error(), "harness: scene test: file not found")
}
