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

import "os"

// the base directory used when the program is running in portable mode
const portablePath = ".smokescreen"

// checkPortable returns true if a directory named portablePath exists in the
// current working directory. the presence of the directory is the only
// indicator of portable mode
func checkPortable() bool {
	nf, err := os.Stat(portablePath)
	if err != nil {
		return false
	}
	return nf.IsDir()
}
