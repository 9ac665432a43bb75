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

import "github.com/ferrovia/smokescreen/curated"

// SerialisedEntry is the Entry data represented as an array of strings.
type SerialisedEntry []string

// the function called to initialise an entry of the corresponding type when
// it is read from the database file.
type deserialiser func(fields SerialisedEntry) (Entry, error)

// Entry represents a generic entry in the database.
type Entry interface {
	// ID returns the string that is used to identify the entry type in the
	// database file.
	ID() string

	// String returns information about the entry in a human readable format.
	// By contrast, the machine readable representation is returned by the
	// Serialise function.
	String() string

	// Serialise returns the entry data as an instance of SerialisedEntry.
	// Individual fields must not contain the database field separator.
	Serialise() (SerialisedEntry, error)

	// CleanUp is called when the entry is deleted from the database. Use it
	// to remove any files the entry refers to.
	CleanUp() error
}

// RegisterEntryType tells the database what entries to expect in the database
// file and how to deserialise them. Registering the same ID twice is an
// error.
func (db *Session) RegisterEntryType(id string, des deserialiser) error {
	if _, ok := db.entryTypes[id]; ok {
		return curated.Errorf("database: duplicate entry type [%s]", id)
	}
	db.entryTypes[id] = des
	return nil
}
