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

// SelectAll calls onSelect for every entry in the database, in ascending key
// order. Iteration stops at the first error returned by onSelect, which is
// propagated to the caller.
func (db *Session) SelectAll(onSelect func(key int, ent Entry) error) error {
	if onSelect == nil {
		return nil
	}

	for _, key := range db.SortedKeyList() {
		if err := onSelect(key, db.entries[key]); err != nil {
			return err
		}
	}

	return nil
}

// SelectKeys calls onSelect for each of the specified keys, in the order
// given. If no keys are specified then every entry is matched, as with
// SelectAll(). A key with no corresponding entry is an error.
func (db *Session) SelectKeys(onSelect func(key int, ent Entry) error, keys ...int) error {
	if len(keys) == 0 {
		return db.SelectAll(onSelect)
	}

	for _, key := range keys {
		ent, ok := db.entries[key]
		if !ok {
			return curated.Errorf(KeyError, key)
		}
		if onSelect != nil {
			if err := onSelect(key, ent); err != nil {
				return err
			}
		}
	}

	return nil
}
