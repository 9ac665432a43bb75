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

// Package expect implements the expectation recorder handed to every unit
// test case. Expectations are soft: a failed expectation marks the case as
// failed and records a diagnostic but execution of the case always continues.
// This means every expectation in a case body is evaluated on every run.
//
// A fresh Recorder is created for each test case. The zero value is ready to
// use.
package expect

import (
	"fmt"

	"github.com/ferrovia/smokescreen/logger"
)

// Recorder accumulates expectation failures for a single test case.
type Recorder struct {
	failed      bool
	diagnostics []string
}

// Expect checks the supplied condition. A false condition records msg as a
// diagnostic and marks the recorder as failed. The return value echoes the
// condition.
func (rec *Recorder) Expect(condition bool, msg string) bool {
	if !condition {
		rec.fail(msg)
	}
	return condition
}

// Failed is true if any expectation has failed since the recorder was
// created.
func (rec *Recorder) Failed() bool {
	return rec.failed
}

// Diagnostics returns one message for every failed expectation, in the order
// the failures occurred.
func (rec *Recorder) Diagnostics() []string {
	return rec.diagnostics
}

func (rec *Recorder) fail(msg string) {
	rec.failed = true
	rec.diagnostics = append(rec.diagnostics, msg)
	logger.Log(logger.Allow, "expect", msg)
}

// Equal compares actual with expected using natural equality. There is no
// epsilon comparison for float types. Inequality records a diagnostic built
// from msg and the two values, and marks the recorder as failed.
//
// Equal is a free function rather than a method because Go does not allow
// type parameters on methods.
func Equal[T comparable](rec *Recorder, actual T, expected T, msg string) bool {
	if actual != expected {
		rec.fail(fmt.Sprintf("%s: '%v' does not equal '%v'", msg, actual, expected))
		return false
	}
	return true
}
