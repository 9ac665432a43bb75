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

// Package screens implements the visual regression comparator. A test asks
// for a Check() against a named baseline and receives a boolean verdict.
//
// The comparator works in one of two modes, fixed for the lifetime of the
// Screens instance. In record mode the captured frame replaces the baseline
// image for the named test and the check always succeeds. In compare mode the
// captured frame is compared against the recorded baseline using the root
// mean square difference of the RGB channels, normalised to the range 0.0 to
// 1.0. A metric of zero means the images are identical.
//
// Recorded baselines are listed in a catalogue, a flat file database kept in
// the comparison directory alongside the images. The catalogue is managed
// from the command line through the SCREENS mode.
package screens

import (
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/database"
	"github.com/ferrovia/smokescreen/host"
	"github.com/ferrovia/smokescreen/logger"
	"github.com/ferrovia/smokescreen/resources"
)

// sentinel errors returned by the package.
const (
	// DimensionMismatch is an environment fault, never a test verdict. the
	// baseline must be re-recorded when the application's frame size changes
	DimensionMismatch = "screens: %v: candidate dimensions %v do not match baseline %v"
)

// DefaultThreshold is the comparison threshold used when none has been
// specified on the command line.
const DefaultThreshold = 0.1

// the directory (under the resources path) where images and the baseline
// catalogue are kept.
const screensPath = "screens"

// the file name of the baseline catalogue database.
const catalogueFile = "baselines.db"

// file name suffixes for the two halves of a comparison.
const (
	truthSuffix     = "_truth.png"
	candidateSuffix = "_candidate.png"
)

// User is implemented by scenes that want access to the comparator. The
// scheduler offers the comparator to every scene it loads.
type User interface {
	UseScreens(scr *Screens)
}

// Screens compares captured frames against recorded baseline images.
type Screens struct {
	rend      host.Renderer
	dir       string
	record    bool
	threshold float64
}

// NewScreens is the preferred method of initialisation for the Screens type.
//
// If dir is the empty string the default comparison directory under the
// resources path is used. If record is true then every Check() records a new
// baseline rather than comparing against one.
func NewScreens(rend host.Renderer, dir string, record bool, threshold float64) (*Screens, error) {
	if threshold < 0 {
		return nil, curated.Errorf("screens: negative threshold (%f)", threshold)
	}

	dir, err := comparisonDir(dir)
	if err != nil {
		return nil, err
	}

	return &Screens{
		rend:      rend,
		dir:       dir,
		record:    record,
		threshold: threshold,
	}, nil
}

// comparisonDir returns dir unchanged unless it is empty, in which case the
// default comparison directory under the resources path is located, creating
// it if necessary.
func comparisonDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}

	// JoinPath creates directories up to the parent of the final element so
	// we join with the catalogue file and keep the directory part
	p, err := resources.JoinPath(screensPath, catalogueFile)
	if err != nil {
		return "", curated.Errorf("screens: %v", err)
	}

	return filepath.Dir(p), nil
}

func (scr *Screens) truthPath(name string) string {
	return filepath.Join(scr.dir, name+truthSuffix)
}

func (scr *Screens) candidatePath(name string) string {
	return filepath.Join(scr.dir, name+candidateSuffix)
}

func (scr *Screens) cataloguePath() string {
	return filepath.Join(scr.dir, catalogueFile)
}

// Check captures the current frame of the application and compares it with
// the baseline recorded for the named test.
//
// In record mode there is no comparison: the captured frame is written as the
// new baseline, the catalogue is updated and the check succeeds.
//
// In compare mode the candidate image is always written, pass or fail, so
// that a failed comparison can be inspected after the run. A missing baseline
// is a failed test with a remediation note in the log; the baseline is never
// created from the candidate.
//
// The returned boolean is the test verdict. The returned error is an
// environment fault, never a verdict.
func (scr *Screens) Check(name string) (bool, error) {
	img, err := scr.rend.CaptureFrame()
	if err != nil {
		return false, curated.Errorf("screens: %v", err)
	}

	if scr.record {
		if err := scr.recordBaseline(name, img); err != nil {
			return false, err
		}
		return true, nil
	}

	return scr.compareBaseline(name, img)
}

func (scr *Screens) recordBaseline(name string, img *image.RGBA) error {
	db, err := database.StartSession(scr.cataloguePath(), database.ActivityCreating, initCatalogue)
	if err != nil {
		return err
	}

	// delete any stale entry for this name before the new truth image is
	// written. the CleanUp() of the stale entry removes the old image file
	var stale []int
	err = db.SelectAll(func(key int, ent database.Entry) error {
		if bas, ok := ent.(*Entry); ok && bas.Name == name {
			stale = append(stale, key)
		}
		return nil
	})
	if err == nil {
		for _, key := range stale {
			if err = db.Delete(key); err != nil {
				break
			}
		}
	}
	if err != nil {
		db.EndSession(false)
		return err
	}

	file := scr.truthPath(name)
	if err := savePNG(file, img); err != nil {
		db.EndSession(false)
		return err
	}

	err = db.Add(&Entry{
		Name:      name,
		File:      file,
		Threshold: scr.threshold,
		Recorded:  time.Now().Format(time.RFC3339),
	})
	if err != nil {
		db.EndSession(false)
		return err
	}

	logger.Logf(logger.Allow, "screens", "recorded baseline for %s (%s)", name, file)

	return db.EndSession(true)
}

func (scr *Screens) compareBaseline(name string, img *image.RGBA) (bool, error) {
	// the candidate image is always written, pass or fail
	candFile := scr.candidatePath(name)
	if err := savePNG(candFile, img); err != nil {
		return false, err
	}

	truthFile := scr.truthPath(name)
	if _, err := os.Stat(truthFile); err != nil {
		logger.Logf(logger.Allow, "screens", "%s: no baseline image. run with -record to create %s", name, truthFile)
		return false, nil
	}

	truth, err := loadPNG(truthFile)
	if err != nil {
		return false, err
	}

	if !truth.Bounds().Size().Eq(img.Bounds().Size()) {
		return false, curated.Errorf(DimensionMismatch, name, img.Bounds().Size(), truth.Bounds().Size())
	}

	metric := rms(truth, img)
	if metric > scr.threshold {
		sz := img.Bounds().Size()
		logger.Logf(logger.Allow, "screens", "%s: rms %f exceeds threshold %f (%dx%d, %s vs %s)",
			name, metric, scr.threshold, sz.X, sz.Y,
			filepath.Base(truthFile), filepath.Base(candFile))
		return false, nil
	}

	return true, nil
}
