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

package resources

import (
	"os"
	"path/filepath"
)

// the name of the config directory created in the user's configuration
// directory when the program is not running in portable mode
const configDir = "smokescreen"

// resourcePath returns the base path used when the program is not running in
// portable mode. the path is rooted in the user's configuration directory,
// the location of which depends on the host OS (see the os.UserConfigDir()
// documentation for details)
func resourcePath() (string, error) {
	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cnf, configDir), nil
}
