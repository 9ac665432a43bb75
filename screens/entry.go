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

package screens

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/database"
)

// the ID used for baseline entries in the catalogue database.
const baselineEntryID = "baseline"

// list of fields in a serialised baseline entry.
const (
	baselineFieldName int = iota
	baselineFieldFile
	baselineFieldThreshold
	baselineFieldRecorded
	numBaselineFields
)

// Entry is the baseline catalogue record for a single recorded truth image.
// It satisfies the database.Entry interface.
type Entry struct {
	// Name of the test the baseline belongs to.
	Name string

	// File is the full path to the truth image.
	File string

	// Threshold the baseline was recorded with.
	Threshold float64

	// Recorded is the time the baseline was recorded.
	Recorded string
}

// when starting a catalogue session we need to register what entries we will
// find in the database.
func initCatalogue(db *database.Session) error {
	return db.RegisterEntryType(baselineEntryID, deserialiseBaselineEntry)
}

func deserialiseBaselineEntry(fields database.SerialisedEntry) (database.Entry, error) {
	ent := &Entry{}

	// basic sanity check
	if len(fields) > numBaselineFields {
		return nil, curated.Errorf("baseline: too many fields")
	}
	if len(fields) < numBaselineFields {
		return nil, curated.Errorf("baseline: too few fields")
	}

	ent.Name = fields[baselineFieldName]
	ent.File = fields[baselineFieldFile]

	var err error
	ent.Threshold, err = strconv.ParseFloat(fields[baselineFieldThreshold], 64)
	if err != nil {
		return nil, curated.Errorf("baseline: invalid threshold field [%s]", fields[baselineFieldThreshold])
	}

	ent.Recorded = fields[baselineFieldRecorded]

	return ent, nil
}

// ID implements the database.Entry interface.
func (ent *Entry) ID() string {
	return baselineEntryID
}

// String implements the database.Entry interface.
func (ent *Entry) String() string {
	return fmt.Sprintf("[%s] %s threshold=%s recorded=%s",
		ent.ID(), ent.Name, strconv.FormatFloat(ent.Threshold, 'f', -1, 64), ent.Recorded)
}

// Serialise implements the database.Entry interface.
func (ent *Entry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		ent.Name,
		ent.File,
		strconv.FormatFloat(ent.Threshold, 'f', -1, 64),
		ent.Recorded,
	}, nil
}

// CleanUp implements the database.Entry interface. The truth image the entry
// refers to is removed from disk.
func (ent *Entry) CleanUp() error {
	err := os.Remove(ent.File)

	// ignore path errors. the file may have been removed behind our back and
	// the entry should not be stuck in the catalogue because of it
	if _, ok := err.(*os.PathError); ok {
		return nil
	}

	return err
}
