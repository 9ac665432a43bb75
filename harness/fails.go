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
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/ferrovia/smokescreen/resources"
)

const (
	harnessPath = "harness"
	failsFile   = "fails"
)

func saveFails(keys []string) error {
	sort.Strings(keys)
	keys = slices.Compact(keys)

	p, err := resources.JoinPath(harnessPath, failsFile)
	if err != nil {
		return fmt.Errorf("save fails: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("save fails: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	for _, v := range keys {
		f.WriteString(fmt.Sprintf("%s\n", v))
	}

	return nil
}

func loadFails() ([]string, error) {
	p, err := resources.JoinPath(harnessPath, failsFile)
	if err != nil {
		return []string{}, fmt.Errorf("load fails: %w", err)
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return []string{}, fmt.Errorf("load fails: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	b, err := io.ReadAll(f)
	if err != nil {
		return []string{}, fmt.Errorf("load fails: %w", err)
	}

	keys := strings.Split(string(b), "\n")

	sort.Strings(keys)
	keys = slices.Compact(keys)

	keys = slices.DeleteFunc(keys, func(s string) bool {
		s = strings.TrimSpace(s)
		return len(s) == 0
	})

	return keys, nil
}
