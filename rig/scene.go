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

package rig

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/logger"
	"github.com/ferrovia/smokescreen/screens"
)

// sentinel errors returned when loading a scene script.
const (
	// the scene script could not be parsed
	ScriptError = "rig: %s: line %d: %s"
)

// a screenshot directive waiting for its frame to come around.
type shot struct {
	frame int
	name  string
}

// Scene is a scripted scene test. it implements the host.Scene and
// screens.User interfaces.
type Scene struct {
	name    string
	pattern pattern

	// the current frame, relative to the start of the scene. the first
	// frame is 1. advanced by Rig.Tick()
	frame int

	shots []shot

	// frame on which to signal the verdict. zero means never, which leaves
	// the scene to the scheduler's frame budget
	finishOn int
	verdict  bool

	finished func(ok bool)

	scr *screens.Screens

	// a screenshot comparison has failed. downgrades a pass verdict
	shotFailed bool

	// the rig the scene is loaded into. needed to stop the run on a
	// comparator fault
	rig *Rig
}

// Name implements the host.Scene interface.
func (scn *Scene) Name() string {
	return scn.name
}

// OnFinished implements the host.Scene interface.
func (scn *Scene) OnFinished(finished func(ok bool)) {
	scn.finished = finished
}

// UseScreens implements the screens.User interface.
func (scn *Scene) UseScreens(scr *screens.Screens) {
	scn.scr = scr
}

// execute the directives for the current frame. called by Rig.Tick() after
// the frame has been rendered.
func (scn *Scene) execute() {
	for _, sht := range scn.shots {
		if sht.frame != scn.frame {
			continue
		}

		if scn.scr == nil {
			// the scene is being driven without a comparator. the directive
			// cannot succeed
			logger.Logf(logger.Allow, "rig", "%s: no comparator for screenshot %s", scn.name, sht.name)
			scn.shotFailed = true
			continue
		}

		ok, err := scn.scr.Check(sht.name)
		if err != nil {
			// comparator errors are faults with the test environment rather
			// than verdicts. stop the rig so the run ends immediately
			logger.Log(logger.Allow, "rig", err)
			if scn.rig != nil {
				scn.rig.fault = err
				scn.rig.quit = true
			}
			return
		}
		if !ok {
			scn.shotFailed = true
		}
	}

	// screenshots have already run for this frame so a same frame failure
	// is reflected in the verdict
	if scn.finishOn != 0 && scn.frame == scn.finishOn && scn.finished != nil {
		scn.finished(scn.verdict && !scn.shotFailed)
	}
}

// loadScript parses the scene script in the named file. the grammar is
// described in the package documentation.
func loadScript(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf("rig: %v", err)
	}
	defer f.Close()

	scn := &Scene{
		name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		pattern: patterns["blank"],
	}

	scanner := bufio.NewScanner(f)

	ln := 0
	for scanner.Scan() {
		ln++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		flds := strings.Fields(line)

		switch flds[0] {
		case "pattern":
			if len(flds) != 2 {
				return nil, curated.Errorf(ScriptError, scn.name, ln, "pattern requires a name")
			}
			p, ok := patterns[flds[1]]
			if !ok {
				return nil, curated.Errorf(ScriptError, scn.name, ln, fmt.Sprintf("no pattern named %s", flds[1]))
			}
			scn.pattern = p

		case "screenshot":
			if len(flds) != 3 {
				return nil, curated.Errorf(ScriptError, scn.name, ln, "screenshot requires a frame and a name")
			}
			frame, err := parseFrame(flds[1])
			if err != nil {
				return nil, curated.Errorf(ScriptError, scn.name, ln, err.Error())
			}
			scn.shots = append(scn.shots, shot{frame: frame, name: flds[2]})

		case "finish":
			if len(flds) != 3 {
				return nil, curated.Errorf(ScriptError, scn.name, ln, "finish requires a frame and a verdict")
			}
			frame, err := parseFrame(flds[1])
			if err != nil {
				return nil, curated.Errorf(ScriptError, scn.name, ln, err.Error())
			}
			switch flds[2] {
			case "pass":
				scn.verdict = true
			case "fail":
				scn.verdict = false
			default:
				return nil, curated.Errorf(ScriptError, scn.name, ln, fmt.Sprintf("verdict must be pass or fail (%s)", flds[2]))
			}
			scn.finishOn = frame

		default:
			return nil, curated.Errorf(ScriptError, scn.name, ln, fmt.Sprintf("unrecognised directive (%s)", flds[0]))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("rig: %v", err)
	}

	return scn, nil
}

func parseFrame(s string) (int, error) {
	frame, err := strconv.Atoi(s)
	if err != nil || frame < 1 {
		return 0, fmt.Errorf("frame numbers begin at 1 (%s)", s)
	}
	return frame, nil
}
