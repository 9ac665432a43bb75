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

package scenetest_test

import (
	"errors"
	"image"
	"testing"

	"github.com/ferrovia/smokescreen/host"
	"github.com/ferrovia/smokescreen/scenetest"
	"github.com/ferrovia/smokescreen/test"
)

// fakeScript describes how a fakeScene behaves once loaded. a signalOn value
// of zero means the scene never signals a result.
type fakeScript struct {
	signalOn int
	verdict  bool

	// signal a second, contradictory verdict immediately after the first
	double bool
}

type fakeScene struct {
	name     string
	script   fakeScript
	finished func(bool)
	tick     int
}

func (scn *fakeScene) Name() string {
	return scn.name
}

func (scn *fakeScene) OnFinished(finished func(ok bool)) {
	scn.finished = finished
}

type fakeRenderer struct {
	scripts map[string]fakeScript
	loaded  *fakeScene
	loads   []string
	unloads []string
	loadErr error
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{scripts: make(map[string]fakeScript)}
}

func (rend *fakeRenderer) Tick() bool {
	if rend.loaded == nil {
		return false
	}
	scn := rend.loaded
	scn.tick++
	if scn.script.signalOn > 0 && scn.tick == scn.script.signalOn {
		scn.finished(scn.script.verdict)
		if scn.script.double {
			scn.finished(!scn.script.verdict)
		}
	}
	return true
}

func (rend *fakeRenderer) LoadScene(path string) (host.Scene, error) {
	if rend.loadErr != nil {
		return nil, rend.loadErr
	}
	scn := &fakeScene{name: path, script: rend.scripts[path]}
	rend.loaded = scn
	rend.loads = append(rend.loads, path)
	return scn, nil
}

func (rend *fakeRenderer) UnloadScene(scene host.Scene) error {
	rend.unloads = append(rend.unloads, scene.Name())
	rend.loaded = nil
	return nil
}

func (rend *fakeRenderer) CaptureFrame() (*image.RGBA, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

// drive the scheduler until it has drained, mimicking the frame loop of the
// host application.
func drive(t *testing.T, rend *fakeRenderer, sch *scenetest.Scheduler) {
	t.Helper()
	for i := 0; sch.State() != scenetest.Drained; i++ {
		if i > 10000 {
			t.Fatal("scheduler did not drain")
		}
		rend.Tick()
		test.DemandSuccess(t, sch.Tick())
	}
}

func TestSchedulingOrder(t *testing.T) {
	rend := newFakeRenderer()
	rend.scripts["x"] = fakeScript{signalOn: 1, verdict: true}
	rend.scripts["y"] = fakeScript{signalOn: 1, verdict: true}

	// the default order runs the most recently pushed scene first
	sch := scenetest.NewScheduler(rend, nil, scenetest.Lifo)
	sch.Push(scenetest.Descriptor{Name: "x", ScenePath: "x"})
	sch.Push(scenetest.Descriptor{Name: "y", ScenePath: "y"})
	test.ExpectEquality(t, sch.Queued(), 2)

	drive(t, rend, sch)

	test.DemandEquality(t, len(rend.loads), 2)
	test.ExpectEquality(t, rend.loads[0], "y")
	test.ExpectEquality(t, rend.loads[1], "x")
	test.ExpectEquality(t, sch.Failures(), 0)

	// every load is paired with an unload
	test.ExpectEquality(t, len(rend.unloads), 2)
}

func TestFifoOrder(t *testing.T) {
	rend := newFakeRenderer()
	rend.scripts["x"] = fakeScript{signalOn: 1, verdict: true}
	rend.scripts["y"] = fakeScript{signalOn: 1, verdict: true}

	sch := scenetest.NewScheduler(rend, nil, scenetest.Fifo)
	sch.Push(scenetest.Descriptor{Name: "x", ScenePath: "x"})
	sch.Push(scenetest.Descriptor{Name: "y", ScenePath: "y"})

	drive(t, rend, sch)

	test.DemandEquality(t, len(rend.loads), 2)
	test.ExpectEquality(t, rend.loads[0], "x")
	test.ExpectEquality(t, rend.loads[1], "y")
}

func TestFrameBudget(t *testing.T) {
	rend := newFakeRenderer()
	rend.scripts["silent"] = fakeScript{}

	sch := scenetest.NewScheduler(rend, nil, scenetest.Lifo)
	sch.Push(scenetest.Descriptor{Name: "silent", ScenePath: "silent", FrameBudget: 5})

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Running)

	// the scene survives for one tick less than its budget
	for i := 0; i < 4; i++ {
		rend.Tick()
		test.ExpectSuccess(t, sch.Tick())
		test.ExpectEquality(t, sch.State(), scenetest.Running)
	}

	// and is failed on the tick that exhausts it
	rend.Tick()
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Finishing)

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Idle)
	test.ExpectEquality(t, sch.Failures(), 1)

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Drained)
}

func TestCompletionSignal(t *testing.T) {
	rend := newFakeRenderer()
	rend.scripts["quick"] = fakeScript{signalOn: 3, verdict: true}

	sch := scenetest.NewScheduler(rend, nil, scenetest.Lifo)
	sch.Push(scenetest.Descriptor{Name: "quick", ScenePath: "quick"})

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Running)

	for i := 0; i < 2; i++ {
		rend.Tick()
		test.ExpectSuccess(t, sch.Tick())
		test.ExpectEquality(t, sch.State(), scenetest.Running)
	}

	// scene signals on its third frame, well inside the default budget
	rend.Tick()
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Finishing)

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.Failures(), 0)

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Drained)
}

func TestFirstSignalWins(t *testing.T) {
	rend := newFakeRenderer()
	rend.scripts["flipflop"] = fakeScript{signalOn: 1, verdict: true, double: true}

	sch := scenetest.NewScheduler(rend, nil, scenetest.Lifo)
	sch.Push(scenetest.Descriptor{Name: "flipflop", ScenePath: "flipflop"})

	drive(t, rend, sch)

	// the second, contradictory signal was ignored
	test.ExpectEquality(t, sch.Failures(), 0)
}

func TestStaleSignalIgnored(t *testing.T) {
	rend := newFakeRenderer()
	rend.scripts["x"] = fakeScript{}
	rend.scripts["y"] = fakeScript{signalOn: 2, verdict: true}

	sch := scenetest.NewScheduler(rend, nil, scenetest.Fifo)
	sch.Push(scenetest.Descriptor{Name: "x", ScenePath: "x", FrameBudget: 2})
	sch.Push(scenetest.Descriptor{Name: "y", ScenePath: "y", FrameBudget: 10})

	test.ExpectSuccess(t, sch.Tick())
	stale := rend.loaded

	// run x past its budget and out of the scheduler
	rend.Tick()
	test.ExpectSuccess(t, sch.Tick())
	rend.Tick()
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.Failures(), 1)

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Running)

	// x is no longer the current scene. its signal must not decide y's
	// verdict
	stale.finished(true)

	rend.Tick()
	test.ExpectSuccess(t, sch.Tick())
	rend.Tick()
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.Failures(), 1)

	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Drained)
}

func TestLoadFailure(t *testing.T) {
	rend := newFakeRenderer()
	rend.loadErr = errors.New("no such scene")

	sch := scenetest.NewScheduler(rend, nil, scenetest.Lifo)
	sch.Push(scenetest.Descriptor{Name: "missing", ScenePath: "missing"})

	// a scene that cannot be loaded is a fault, not a failed test
	test.ExpectFailure(t, sch.Tick())
	test.ExpectEquality(t, sch.Failures(), 0)
}

func TestDrainedIsTerminal(t *testing.T) {
	rend := newFakeRenderer()

	sch := scenetest.NewScheduler(rend, nil, scenetest.Lifo)
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Drained)

	sch.Push(scenetest.Descriptor{Name: "late", ScenePath: "late"})
	test.ExpectSuccess(t, sch.Tick())
	test.ExpectEquality(t, sch.State(), scenetest.Drained)
	test.ExpectEquality(t, len(rend.loads), 0)
}

func TestParseOrder(t *testing.T) {
	ord, err := scenetest.ParseOrder("fifo")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ord, scenetest.Fifo)

	ord, err = scenetest.ParseOrder("LIFO")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ord, scenetest.Lifo)

	_, err = scenetest.ParseOrder("sideways")
	test.ExpectFailure(t, err)
}
