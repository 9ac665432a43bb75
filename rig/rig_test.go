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

package rig_test

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/host"
	"github.com/ferrovia/smokescreen/rig"
	"github.com/ferrovia/smokescreen/screens"
	"github.com/ferrovia/smokescreen/test"
	"github.com/ferrovia/smokescreen/unittest"
)

func writeScene(t *testing.T, dir string, name string, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScriptErrors(t *testing.T) {
	scripts := []string{
		"wobble 1 pass\n",
		"pattern\n",
		"pattern plaid\n",
		"screenshot one shot\n",
		"screenshot 0 shot\n",
		"screenshot 5\n",
		"finish 5 maybe\n",
		"finish -1 pass\n",
	}

	dir := t.TempDir()

	for i, script := range scripts {
		path := writeScene(t, dir, "bad.scene", script)

		r := rig.NewRig()
		_, err := r.LoadScene(path)
		test.ExpectFailure(t, err)
		if !curated.Is(err, rig.ScriptError) {
			t.Errorf("script %d: expected the script error sentinel: %v", i, err)
		}
	}
}

func TestMissingScript(t *testing.T) {
	r := rig.NewRig()
	_, err := r.LoadScene(filepath.Join(t.TempDir(), "nothing.scene"))
	test.ExpectFailure(t, err)
}

// comments and blank lines are skipped and the reported line number accounts
// for them
func TestScriptLineNumbers(t *testing.T) {
	script := "# comment\n\npattern bars\nfinish x pass\n"
	path := writeScene(t, t.TempDir(), "lines.scene", script)

	r := rig.NewRig()
	_, err := r.LoadScene(path)
	test.ExpectFailure(t, err)
	if !test.ExpectEquality(t, err.Error(), "rig: lines: line 4: frame numbers begin at 1 (x)") {
		t.Logf("got: %v", err)
	}
}

func TestSceneVerdict(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "verdict.scene", "pattern checker\nfinish 3 pass\n")

	r := rig.NewRig()
	scn, err := r.LoadScene(path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, scn.Name(), "verdict")

	calls := 0
	verdict := false
	scn.OnFinished(func(ok bool) {
		calls++
		verdict = ok
	})

	for i := 0; i < 3; i++ {
		test.ExpectEquality(t, r.Tick(), true)
	}

	// the verdict arrives on the named frame and only once
	test.ExpectEquality(t, calls, 1)
	test.ExpectEquality(t, verdict, true)

	test.ExpectSuccess(t, r.UnloadScene(scn))
}

func TestSceneFailVerdict(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "broken.scene", "finish 2 fail\n")

	r := rig.NewRig()
	scn, err := r.LoadScene(path)
	test.DemandSuccess(t, err)

	verdict := true
	scn.OnFinished(func(ok bool) {
		verdict = ok
	})

	r.Tick()
	r.Tick()
	test.ExpectEquality(t, verdict, false)
}

// a script without a finish directive leaves the scene to the scheduler's
// frame budget
func TestNoFinish(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "endless.scene", "pattern bars\n")

	r := rig.NewRig()
	scn, err := r.LoadScene(path)
	test.DemandSuccess(t, err)

	scn.OnFinished(func(ok bool) {
		t.Error("scene signalled a verdict it should not have")
	})

	for i := 0; i < 50; i++ {
		r.Tick()
	}
}

func TestOneSceneAtATime(t *testing.T) {
	dir := t.TempDir()
	first := writeScene(t, dir, "first.scene", "finish 5 pass\n")
	second := writeScene(t, dir, "second.scene", "finish 5 pass\n")

	r := rig.NewRig()
	scn, err := r.LoadScene(first)
	test.DemandSuccess(t, err)

	_, err = r.LoadScene(second)
	test.ExpectFailure(t, err)

	// unloading anything but the loaded scene is an error
	test.ExpectFailure(t, r.UnloadScene(nil))

	test.ExpectSuccess(t, r.UnloadScene(scn))

	// with the first scene gone the second can load
	_, err = r.LoadScene(second)
	test.ExpectSuccess(t, err)
}

// the scheduler offers the comparator to a scene through a type assertion,
// which the compiler cannot check. pin the interface here so a signature
// change does not silently cut scenes off from their screenshots
func TestSceneImplementsScreensUser(t *testing.T) {
	path := writeScene(t, t.TempDir(), "iface.scene", "pattern blank\nfinish 1 pass\n")

	r := rig.NewRig()
	test.ExpectImplements[host.Renderer](t, r, nil)

	scn, err := r.LoadScene(path)
	test.DemandSuccess(t, err)
	test.ExpectImplements[screens.User](t, scn, nil)
}

// identical scripts render identical frames on every run. the screenshot
// comparator relies on this
func TestDeterminism(t *testing.T) {
	dir := t.TempDir()
	path := writeScene(t, dir, "twin.scene", "pattern bars\n")

	frame := func() []byte {
		r := rig.NewRig()
		_, err := r.LoadScene(path)
		test.DemandSuccess(t, err)
		for i := 0; i < 40; i++ {
			r.Tick()
		}
		img, err := r.CaptureFrame()
		test.DemandSuccess(t, err)
		return img.Pix
	}

	if !bytes.Equal(frame(), frame()) {
		t.Error("two runs of the same scene rendered different frames")
	}
}

func TestScreenshotRoundTrip(t *testing.T) {
	sceneDir := t.TempDir()
	screenDir := t.TempDir()
	path := writeScene(t, sceneDir, "trip.scene", "pattern gradient\nscreenshot 2 trip\nfinish 3 pass\n")

	run := func(script string, record bool) bool {
		r := rig.NewRig()
		scn, err := r.LoadScene(script)
		test.DemandSuccess(t, err)

		scr, err := screens.NewScreens(r, screenDir, record, screens.DefaultThreshold)
		test.DemandSuccess(t, err)

		user, ok := scn.(screens.User)
		test.DemandSuccess(t, ok)
		user.UseScreens(scr)

		verdict := false
		scn.OnFinished(func(ok bool) {
			verdict = ok
		})

		for i := 0; i < 3; i++ {
			test.DemandEquality(t, r.Tick(), true)
		}
		test.DemandSuccess(t, r.Fault())

		return verdict
	}

	// recording passes and leaves a baseline behind
	test.ExpectEquality(t, run(path, true), true)
	if _, err := os.Stat(filepath.Join(screenDir, "trip_truth.png")); err != nil {
		t.Error("no baseline image was recorded")
	}

	// a second run renders the same frames and matches the baseline
	test.ExpectEquality(t, run(path, false), true)

	// a scene rendering a different pattern fails the comparison, which
	// downgrades its pass verdict
	other := writeScene(t, sceneDir, "trap.scene", "pattern checker\nscreenshot 2 trip\nfinish 3 pass\n")
	test.ExpectEquality(t, run(other, false), false)
}

// tinyRenderer records baselines at a size the rig never renders.
type tinyRenderer struct{}

func (tinyRenderer) Tick() bool {
	return false
}

func (tinyRenderer) LoadScene(path string) (host.Scene, error) {
	return nil, curated.Errorf("tiny: no scenes")
}

func (tinyRenderer) UnloadScene(scene host.Scene) error {
	return nil
}

func (tinyRenderer) CaptureFrame() (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
}

// a comparator error is a fault with the test environment. the rig stops
// ticking and keeps the error for the caller
func TestComparatorFaultStopsRig(t *testing.T) {
	sceneDir := t.TempDir()
	screenDir := t.TempDir()

	rec, err := screens.NewScreens(tinyRenderer{}, screenDir, true, screens.DefaultThreshold)
	test.DemandSuccess(t, err)
	_, err = rec.Check("clash")
	test.DemandSuccess(t, err)

	path := writeScene(t, sceneDir, "clash.scene", "screenshot 1 clash\nfinish 2 pass\n")

	r := rig.NewRig()
	scn, err := r.LoadScene(path)
	test.DemandSuccess(t, err)

	scr, err := screens.NewScreens(r, screenDir, false, screens.DefaultThreshold)
	test.DemandSuccess(t, err)
	scn.(screens.User).UseScreens(scr)

	scn.OnFinished(func(ok bool) {
		t.Error("a faulting scene should never reach a verdict")
	})

	// the fault happens inside the first tick. the rig notices on the next
	test.ExpectEquality(t, r.Tick(), true)
	test.ExpectEquality(t, r.Tick(), false)

	test.ExpectFailure(t, r.Fault())
	if !curated.Is(r.Fault(), screens.DimensionMismatch) {
		t.Errorf("expected the dimension mismatch sentinel: %v", r.Fault())
	}
}

// the built in self test modules should pass when run against the current
// build
func TestCatalog(t *testing.T) {
	cat, err := rig.Catalog()
	test.DemandSuccess(t, err)

	names := cat.Names()
	test.DemandEquality(t, len(names), 2)
	test.ExpectEquality(t, names[0], "patterns")
	test.ExpectEquality(t, names[1], "capture")

	tw := &test.Writer{}
	for _, name := range names {
		mod, ok := cat.Lookup(name)
		test.DemandSuccess(t, ok)

		results, err := unittest.RunModule(tw, true, mod)
		test.ExpectSuccess(t, err)
		for _, res := range results {
			test.ExpectEquality(t, res.Passed, true)
		}
	}
}
