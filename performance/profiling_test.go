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

package performance_test

import (
	"testing"

	"github.com/ferrovia/smokescreen/performance"
	"github.com/ferrovia/smokescreen/test"
)

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfileString("CPU")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU)

	p, err = performance.ParseProfileString("Trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileTrace)

	p, err = performance.ParseProfileString("all")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileAll)
	test.ExpectEquality(t, p&performance.ProfileMem, performance.ProfileMem)

	_, err = performance.ParseProfileString("quantum")
	test.ExpectFailure(t, err)
}

// RunProfiler passes errors from the wrapped function through untouched
func TestRunPassthrough(t *testing.T) {
	ran := false
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ran, true)
}
