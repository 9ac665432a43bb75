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

package database

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ferrovia/smokescreen/curated"
)

// Activity is used to specify the general activity of what the database will
// be used for during the session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityCreating
	ActivityModifying
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession starts/initialises a new database session. The init function
// is called once the database file has been opened but before any entry has
// been read. Entry types should be registered with the session inside the
// init function.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{activity: activity}
	db.entryTypes = make(map[string]deserialiser)

	var flags int
	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	case ActivityModifying:
		flags = os.O_RDWR
	}

	var err error
	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	// closing of db.dbfile requires a call to EndSession()

	if init != nil {
		if err := init(db); err != nil {
			db.dbfile.Close()
			return nil, err
		}
	}

	if err := db.readDBFile(); err != nil {
		db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession must be called at the end of every session. If commit is true
// then any changes made during the session are written back to the database
// file.
func (db *Session) EndSession(commit bool) error {
	if db.dbfile == nil {
		return curated.Errorf("database: session already ended")
	}

	if commit {
		if db.activity == ActivityReading {
			return curated.Errorf("database: cannot commit to a reading session")
		}

		if err := db.dbfile.Truncate(0); err != nil {
			return curated.Errorf("database: %v", err)
		}

		if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
			return curated.Errorf("database: %v", err)
		}

		// write entries to file in key order
		for _, key := range db.SortedKeyList() {
			ent := db.entries[key]

			ser, err := ent.Serialise()
			if err != nil {
				return curated.Errorf("database: %v", err)
			}

			s := strings.Builder{}
			s.WriteString(recordHeader(key, ent.ID()))
			for _, f := range ser {
				s.WriteString(fieldSep)
				s.WriteString(f)
			}
			s.WriteString(entrySep)

			if _, err := db.dbfile.WriteString(s.String()); err != nil {
				return curated.Errorf("database: %v", err)
			}
		}
	}

	// end session by closing the file
	err := db.dbfile.Close()
	db.dbfile = nil
	if err != nil {
		return curated.Errorf("database: %v", err)
	}

	return nil
}

func (db *Session) readDBFile() error {
	// clobbers the contents of db.entries
	db.entries = make(map[int]Entry)

	// make sure we're at the beginning of the file
	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf("database: %v", err)
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}

	lines := strings.Split(string(buffer), entrySep)

	for i := range lines {
		line := strings.TrimSpace(lines[i])
		if len(line) == 0 {
			continue
		}

		fields := strings.SplitN(line, fieldSep, numLeaderFields+1)
		if len(fields) < numLeaderFields {
			return curated.Errorf("database: malformed entry at line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf("database: invalid key [%s] at line %d", fields[leaderFieldKey], i+1)
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf("database: duplicate key [%03d] at line %d", key, i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf("database: unrecognised entry type [%s] at line %d", fields[leaderFieldID], i+1)
		}

		var ser SerialisedEntry
		if len(fields) > numLeaderFields {
			ser = strings.Split(fields[numLeaderFields], fieldSep)
		}

		ent, err := des(ser)
		if err != nil {
			return err
		}

		db.entries[key] = ent
	}

	return nil
}
