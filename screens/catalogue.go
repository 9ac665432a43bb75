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
	"io"
	"path/filepath"
	"strconv"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/database"
)

// CatalogueList displays all entries in the baseline catalogue. If dir is the
// empty string the default comparison directory is used.
func CatalogueList(output io.Writer, dir string) error {
	dir, err := comparisonDir(dir)
	if err != nil {
		return err
	}

	db, err := database.StartSession(filepath.Join(dir, catalogueFile), database.ActivityReading, initCatalogue)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// CatalogueDelete removes a baseline entry, and the truth image it refers to,
// from the catalogue. The key argument is the entry's key as printed by
// CatalogueList().
//
// The confirmation reader is consulted before anything is deleted. A reader
// that produces anything other than 'y' or 'Y' cancels the deletion.
func CatalogueDelete(output io.Writer, confirmation io.Reader, dir string, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("screens: invalid catalogue key [%s]", key)
	}

	dir, err = comparisonDir(dir)
	if err != nil {
		return err
	}

	db, err := database.StartSession(filepath.Join(dir, catalogueFile), database.ActivityModifying, initCatalogue)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	var ent database.Entry
	err = db.SelectKeys(func(_ int, e database.Entry) error {
		ent = e
		return nil
	}, v)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return err
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		fmt.Fprintf(output, "deleted baseline #%s from the catalogue\n", key)
	}

	return nil
}
