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

// Package unittest executes the immediate, synchronous portion of a test
// suite. A unit test module is a named group of cases registered with a
// Catalog. The harness matches a ".test" file found during discovery against
// the catalog and runs the module with RunModule().
//
// Cases run in declaration order, each with a fresh expectation recorder. A
// case passes if no expectation failed by the time the case body and the
// optional AfterEach hook have returned.
package unittest

import (
	"fmt"
	"io"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/expect"
	"github.com/ferrovia/smokescreen/logger"
)

// sentinel errors returned by the package.
const (
	DuplicateModule = "unit test: module already registered: %v"
	DuplicateCase   = "unit test: duplicate case name in module %v: %v"
)

// Case is a single unit test case. The Run function receives the recorder
// shared with the module hooks for the duration of the case.
type Case struct {
	Name string
	Run  func(rec *expect.Recorder)
}

// Module is a named, ordered collection of unit test cases. The BeforeEach
// and AfterEach hooks are optional and receive the same recorder as the case
// they bracket.
type Module struct {
	Name       string
	BeforeEach func(rec *expect.Recorder)
	AfterEach  func(rec *expect.Recorder)
	Cases      []Case
}

// CaseResult is the immutable outcome of a single case execution.
type CaseResult struct {
	Module      string
	Case        string
	Passed      bool
	Diagnostics []string
}

// RunModule executes every case in the module, in declaration order. One
// verdict line is printed to output per case. If verbose is true the
// diagnostics of a failing case are printed underneath its verdict line.
//
// The AfterEach hook runs even when the case body has recorded failures. A
// panic in any case or hook is treated as an environment fault and is allowed
// to propagate.
//
// Duplicate case names are an environment fault. The error is returned before
// any case has run.
func RunModule(output io.Writer, verbose bool, mod Module) ([]CaseResult, error) {
	seen := make(map[string]bool, len(mod.Cases))
	for _, c := range mod.Cases {
		if seen[c.Name] {
			return nil, curated.Errorf(DuplicateCase, mod.Name, c.Name)
		}
		seen[c.Name] = true
	}

	logger.Logf(logger.Allow, "unit test", "running module %s (%d cases)", mod.Name, len(mod.Cases))

	results := make([]CaseResult, 0, len(mod.Cases))

	for _, c := range mod.Cases {
		// a fresh recorder per case. no expectation state leaks from one
		// case to the next
		rec := &expect.Recorder{}

		if mod.BeforeEach != nil {
			mod.BeforeEach(rec)
		}
		c.Run(rec)
		if mod.AfterEach != nil {
			mod.AfterEach(rec)
		}

		res := CaseResult{
			Module:      mod.Name,
			Case:        c.Name,
			Passed:      !rec.Failed(),
			Diagnostics: rec.Diagnostics(),
		}
		results = append(results, res)

		if res.Passed {
			fmt.Fprintf(output, "%s::%s: passed\n", mod.Name, c.Name)
		} else {
			fmt.Fprintf(output, "%s::%s: FAILED\n", mod.Name, c.Name)
			if verbose {
				for _, d := range res.Diagnostics {
					fmt.Fprintf(output, "\t%s\n", d)
				}
			}
		}
	}

	return results, nil
}
