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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/ferrovia/smokescreen/curated"
)

// Profile is used to specify the type of profiling to perform. Values can be
// combined with bitwise or.
type Profile int

// List of valid Profile values.
const (
	ProfileNone  Profile = 0x00
	ProfileCPU   Profile = 0x01
	ProfileMem   Profile = 0x02
	ProfileTrace Profile = 0x04
	ProfileAll   Profile = ProfileCPU | ProfileMem | ProfileTrace
)

// ParseProfileString converts a string to a Profile value. comparison is case
// insensitive.
func ParseProfileString(s string) (Profile, error) {
	switch strings.ToUpper(s) {
	case "NONE":
		return ProfileNone, nil
	case "CPU":
		return ProfileCPU, nil
	case "MEM":
		return ProfileMem, nil
	case "TRACE":
		return ProfileTrace, nil
	case "ALL":
		return ProfileAll, nil
	}
	return ProfileNone, curated.Errorf("performance: unrecognised profile (%s)", s)
}

// RunProfiler runs the supplied function, profiling it as specified. profile
// reports are written to the working directory as <tag>_cpu.profile,
// <tag>_mem.profile and <tag>_trace.profile as appropriate.
//
// the memory profile is of the heap at the end of the run, after a forced
// garbage collection.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(tag + "_cpu.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(tag + "_trace.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		if err := trace.Start(f); err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer trace.Stop()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(tag + "_mem.profile")
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	return nil
}
