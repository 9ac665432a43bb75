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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter is used to amend the default output from the flag package.
type helpWriter struct {
	// the last []byte sent to the Write() function
	buffer []byte
}

// Clear contents of output buffer.
func (hw *helpWriter) Clear() {
	hw.buffer = hw.buffer[:0]
}

// Write buffers all output.
func (hw *helpWriter) Write(p []byte) (n int, err error) {
	hw.buffer = append(hw.buffer, p...)
	return len(p), nil
}

// Help prints the buffered output from the flag package, amended with mode
// and sub-mode information.
func (hw *helpWriter) Help(output io.Writer, banner string, subModes []string, additionalHelp string) {
	s := string(hw.buffer)
	helpLines := strings.Split(s, "\n")

	// output "no help available" message if there is no flag information and
	// no sub-modes
	if s == "Usage:\n" && len(subModes) == 0 {
		fmt.Fprint(output, "No help available")
		if banner != "" {
			fmt.Fprintf(output, " for %s", banner)
		}
		fmt.Fprintln(output)
		return
	}

	if banner != "" {
		// supplement default banner with additional string
		fmt.Fprintf(output, "%s for %s mode\n", helpLines[0], banner)
	} else {
		// there is no banner so just print the default flag package banner
		fmt.Fprintln(output, helpLines[0])
	}

	// add help message produced by flag package
	if len(helpLines) > 1 {
		fmt.Fprint(output, strings.Join(helpLines[1:], "\n"))
	}

	// add sub-mode information
	if len(subModes) > 0 {
		// add an additional new line if we've already printed flag
		// information
		if len(helpLines) > 2 {
			fmt.Fprintln(output)
		}

		fmt.Fprintf(output, "  available sub-modes: %s\n", strings.Join(subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", subModes[0])
	}

	if additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", additionalHelp)
	}
}
