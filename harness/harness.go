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

package harness

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/host"
	"github.com/ferrovia/smokescreen/logger"
	"github.com/ferrovia/smokescreen/scenetest"
	"github.com/ferrovia/smokescreen/screens"
	"github.com/ferrovia/smokescreen/unittest"
)

// sentinel errors returned by the Run() function.
const (
	// a .test file names a module that has not been registered with the
	// catalogue. the test binary is out of step with the test directory and
	// nothing it reports can be trusted
	UnregisteredModule = "harness: no module registered with the name %s"

	// the host application stopped ticking before the scene queue drained
	HostQuit = "harness: application stopped before the test run completed"
)

// file extensions recognised by the discovery scan.
const (
	unitExt  = ".test"
	sceneExt = ".scene"
)

// Options for the test run. the zero value is usable but note that a
// Threshold of zero demands pixel perfect scene comparisons.
type Options struct {
	// the directory to scan for tests
	Dir string

	// record new baseline images instead of comparing against them
	Record bool

	// acceptable rms difference between a candidate frame and its baseline
	Threshold float64

	// frames allowed per scene before the scheduler fails it. zero means
	// scenetest.DefaultFrameBudget
	FrameBudget int

	// scheduling order for scene tests
	Order scenetest.Order

	// rerun only the tests that failed last time
	FailedOnly bool

	// include diagnostic detail for failing unit test cases
	Verbose bool

	// run unit test modules only. scene files are still discovered but
	// count as skipped
	UnitOnly bool

	// where baseline and candidate images live. the empty string means the
	// screens directory in the resources path
	ScreensDir string
}

// Harness runs every test discovered in a directory against the host
// application. must be created with NewHarness().
type Harness struct {
	output io.Writer
	rend   host.Renderer
	cat    *unittest.Catalog
	opts   Options

	preview func(img *image.RGBA) error

	numSucceed int
	numFail    int
	numSkipped int
}

// discovered test file. unit test modules and scenes share the discovery
// scan and need to stay in directory order relative to one another.
type discovery struct {
	name string
	path string
	unit bool
}

// NewHarness is the preferred method of initialisation for the Harness type.
func NewHarness(output io.Writer, rend host.Renderer, cat *unittest.Catalog, opts Options) (*Harness, error) {
	if output == nil {
		return nil, curated.Errorf("harness: output should not be a nil io.Writer")
	}
	if rend == nil {
		return nil, curated.Errorf("harness: renderer should not be nil")
	}
	if cat == nil {
		cat = unittest.NewCatalog()
	}
	return &Harness{
		output: output,
		rend:   rend,
		cat:    cat,
		opts:   opts,
	}, nil
}

// Preview registers a function to receive a copy of the frame after every
// tick of the scene phase. a preview that returns an error is logged and
// dropped for the rest of the run.
func (har *Harness) Preview(setFrame func(img *image.RGBA) error) {
	har.preview = setFrame
}

// Failures returns the number of failed tests from the most recent call to
// Run().
func (har *Harness) Failures() int {
	return har.numFail
}

// DumpState writes a graphviz representation of the harness and everything
// hanging off it. useful when debugging the harness itself.
func (har *Harness) DumpState(output io.Writer) {
	memviz.Map(output, har)
}

// Run scans the test directory and runs everything it finds. unit test
// modules run first and in full, scenes follow under the scheduler.
//
// an error returned by Run() means the run could not complete. failed tests
// are not errors, check Failures() for those.
func (har *Harness) Run() error {
	har.numSucceed = 0
	har.numFail = 0
	har.numSkipped = 0

	tests, err := har.discover()
	if err != nil {
		return err
	}

	if har.opts.FailedOnly {
		prev, err := loadFails()
		if err != nil {
			return err
		}
		if len(prev) == 0 {
			har.output.Write([]byte("no previous failures to rerun\n"))
			return nil
		}
		tests = har.filter(tests, prev)
	}

	defer func() {
		har.output.Write([]byte(fmt.Sprintf("test run: %d succeed, %d fail, %d skipped", har.numSucceed, har.numFail, har.numSkipped)))
		har.output.Write([]byte("\n"))
	}()

	var failKeys []string

	// unit test modules run to completion before any scene is loaded
	for _, d := range tests {
		if !d.unit {
			continue
		}
		failed, err := har.runUnit(d)
		if err != nil {
			return err
		}
		if failed {
			failKeys = append(failKeys, d.name)
		}
	}

	if har.opts.UnitOnly {
		for _, d := range tests {
			if !d.unit {
				har.numSkipped++
			}
		}

		// a unit only run says nothing about the scenes so the record of
		// previous failures is left alone
		return nil
	}

	sceneFails, err := har.runScenes(tests)
	if err != nil {
		return err
	}
	failKeys = append(failKeys, sceneFails...)

	// fails are only saved when the run gets all the way to the end. a
	// partial run says nothing about the tests it never reached
	if err := saveFails(failKeys); err != nil {
		return err
	}

	return nil
}

func (har *Harness) discover() ([]discovery, error) {
	f, err := os.Open(har.opts.Dir)
	if err != nil {
		return nil, curated.Errorf("harness: %v", err)
	}
	defer f.Close()

	// note that this is the ReadDir() function in the os.File type and not
	// the one in the os package. the os package version sorts entries by
	// name but tests must run in the order the directory lists them
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, curated.Errorf("harness: %v", err)
	}

	var tests []discovery

	for _, e := range entries {
		if e.IsDir() {
			logger.Logf(logger.Allow, "harness", "ignoring directory %s", e.Name())
			continue
		}

		switch filepath.Ext(e.Name()) {
		case unitExt, sceneExt:
			tests = append(tests, discovery{
				name: e.Name(),
				path: filepath.Join(har.opts.Dir, e.Name()),
				unit: filepath.Ext(e.Name()) == unitExt,
			})
		default:
			logger.Logf(logger.Allow, "harness", "ignoring %s", e.Name())
		}
	}

	return tests, nil
}

func (har *Harness) filter(tests []discovery, prev []string) []discovery {
	keep := make([]discovery, 0, len(tests))
	set := make(map[string]bool, len(prev))
	for _, p := range prev {
		set[p] = true
	}
	for _, d := range tests {
		if set[d.name] {
			keep = append(keep, d)
		} else {
			har.numSkipped++
		}
	}
	return keep
}

func (har *Harness) runUnit(d discovery) (bool, error) {
	name := strings.TrimSuffix(d.name, unitExt)

	mod, ok := har.cat.Lookup(name)
	if !ok {
		return false, curated.Errorf(UnregisteredModule, name)
	}

	results, err := unittest.RunModule(har.output, har.opts.Verbose, mod)
	if err != nil {
		return false, err
	}

	failed := false
	for _, res := range results {
		if res.Passed {
			har.numSucceed++
		} else {
			har.numFail++
			failed = true
		}
	}

	return failed, nil
}

func (har *Harness) runScenes(tests []discovery) ([]string, error) {
	numScenes := 0
	for _, d := range tests {
		if !d.unit {
			numScenes++
		}
	}
	if numScenes == 0 {
		return nil, nil
	}

	scr, err := screens.NewScreens(har.rend, har.opts.ScreensDir, har.opts.Record, har.opts.Threshold)
	if err != nil {
		return nil, err
	}

	sch := scenetest.NewScheduler(har.rend, scr, har.opts.Order)
	for _, d := range tests {
		if d.unit {
			continue
		}
		sch.Push(scenetest.Descriptor{
			Name:        strings.TrimSuffix(d.name, sceneExt),
			ScenePath:   d.path,
			FrameBudget: har.opts.FrameBudget,
		})
	}

	var failKeys []string

	for sch.State() != scenetest.Drained {
		if !har.rend.Tick() {
			return failKeys, curated.Errorf(HostQuit)
		}

		if har.preview != nil {
			if err := har.sendPreview(); err != nil {
				logger.Logf(logger.Allow, "harness", "preview dropped: %v", err)
				har.preview = nil
			}
		}

		name := sch.Current()
		state := sch.State()
		fails := sch.Failures()

		if err := sch.Tick(); err != nil {
			return failKeys, err
		}

		// a scene has just finished. report the verdict
		if state == scenetest.Finishing {
			if sch.Failures() > fails {
				har.numFail++
				har.output.Write([]byte(fmt.Sprintf("failure: %s\n", name)))
				failKeys = append(failKeys, name+sceneExt)
			} else {
				har.numSucceed++
				har.output.Write([]byte(fmt.Sprintf("succeed: %s\n", name)))
			}
		}
	}

	return failKeys, nil
}

func (har *Harness) sendPreview() error {
	img, err := har.rend.CaptureFrame()
	if err != nil {
		return err
	}
	return har.preview(img)
}
