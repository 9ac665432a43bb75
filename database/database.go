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
	"fmt"
	"io"
	"sort"

	"github.com/ferrovia/smokescreen/curated"
)

// sentinel errors returned by the package.
const (
	KeyError = "database: key not available (%03d)"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns the list of database keys in ascending order.
func (db *Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db *Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, db.entries[key].String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}

// Add an entry to the database. The entry is stored under the lowest unused
// key.
func (db *Session) Add(ent Entry) error {
	// find a spare key
	var key int
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return curated.Errorf("database: maximum entries exceeded (max %d)", maxEntries)
	}

	db.entries[key] = ent

	return nil
}

// Delete the entry with the specified key. The entry's CleanUp() function is
// called before removal.
func (db *Session) Delete(key int) error {
	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(KeyError, key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf("database: %v", err)
	}

	delete(db.entries, key)

	return nil
}
