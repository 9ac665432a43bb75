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

package main_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrovia/smokescreen/harness"
	"github.com/ferrovia/smokescreen/rig"
)

// a complete run of a hundred frame scene against the built in rig. gives a
// rough idea of the overhead the harness adds to each frame of the
// application under test.
func BenchmarkSceneRun(b *testing.B) {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := os.Chdir(wd); err != nil {
			panic(err)
		}
	}()

	// a portable resources directory keeps the fails file inside the
	// benchmark's temporary directory
	dir := b.TempDir()
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	if err := os.Mkdir(".smokescreen", 0700); err != nil {
		panic(err)
	}
	if err := os.Mkdir("tests", 0700); err != nil {
		panic(err)
	}

	script := "pattern bars\nfinish 100 pass\n"
	if err := os.WriteFile(filepath.Join("tests", "bench.scene"), []byte(script), 0644); err != nil {
		panic(err)
	}

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		har, err := harness.NewHarness(io.Discard, rig.NewRig(), nil, harness.Options{
			Dir:        "tests",
			ScreensDir: "screens",
		})
		if err != nil {
			panic(err)
		}
		if err := har.Run(); err != nil {
			panic(err)
		}
		if har.Failures() != 0 {
			panic("benchmark scene failed")
		}
	}
}
