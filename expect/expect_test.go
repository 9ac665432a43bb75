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

package expect_test

import (
	"testing"

	"github.com/ferrovia/smokescreen/expect"
	"github.com/ferrovia/smokescreen/test"
)

func TestExpect(t *testing.T) {
	rec := &expect.Recorder{}
	test.ExpectEquality(t, rec.Failed(), false)

	// a true condition leaves the recorder untouched
	test.ExpectEquality(t, rec.Expect(true, "should not be recorded"), true)
	test.ExpectEquality(t, rec.Failed(), false)
	test.ExpectEquality(t, len(rec.Diagnostics()), 0)

	// a false condition fails the recorder but execution continues
	test.ExpectEquality(t, rec.Expect(false, "first failure"), false)
	test.ExpectEquality(t, rec.Failed(), true)

	// the recorder never recovers from a failure
	rec.Expect(true, "should not be recorded")
	test.ExpectEquality(t, rec.Failed(), true)
}

// equality of a value with itself never fails, whatever the type
func TestEqualIdentity(t *testing.T) {
	rec := &expect.Recorder{}

	expect.Equal(rec, 100, 100, "int")
	expect.Equal(rec, "scene", "scene", "string")
	expect.Equal(rec, true, true, "bool")
	expect.Equal(rec, 0.1, 0.1, "float")

	test.ExpectEquality(t, rec.Failed(), false)
	test.ExpectEquality(t, len(rec.Diagnostics()), 0)
}

func TestEqualDiagnostic(t *testing.T) {
	rec := &expect.Recorder{}

	test.ExpectEquality(t, expect.Equal(rec, 1, 2, "one is two"), false)
	test.ExpectEquality(t, rec.Failed(), true)

	diag := rec.Diagnostics()
	if len(diag) != 1 {
		t.Fatal("expected a single diagnostic")
	}
	test.ExpectEquality(t, diag[0], "one is two: '1' does not equal '2'")
}

// diagnostics accumulate in the order the failures occurred
func TestDiagnosticOrder(t *testing.T) {
	rec := &expect.Recorder{}

	rec.Expect(false, "first")
	expect.Equal(rec, "a", "b", "second")
	rec.Expect(false, "third")

	diag := rec.Diagnostics()
	if len(diag) != 3 {
		t.Fatal("expected three diagnostics")
	}
	test.ExpectEquality(t, diag[0], "first")
	test.ExpectEquality(t, diag[1], "second: 'a' does not equal 'b'")
	test.ExpectEquality(t, diag[2], "third")
}
