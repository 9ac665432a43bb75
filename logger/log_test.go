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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ferrovia/smokescreen/logger"
	"github.com/ferrovia/smokescreen/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	// clear the string builder before continuing, makes comparisons easier to
	// manage
	w.Reset()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() is okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for exactly the correct number of entries is okay
	w.Reset()
	log.Tail(w, 2)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// as is asking for fewer entries
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	// and no entries at all
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

type prohibit struct {
	allow bool
}

func (p prohibit) AllowLogging() bool {
	return p.allow
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	var p prohibit

	log.Log(p, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	p.allow = true
	log.Log(p, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail\n")
}

// the Log() function explicitly handles error types by using the Error()
// result
func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("test error")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Reset()

	// "wrapping" of errors using the %v verb
	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

// the Log() function explicitly handles Stringer types
type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestStringerLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", stringerTest{})
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\n")
}

// for explicitly unsupported types, the Log() function will log the detail
// argument using the %v verb from the fmt package
func TestIntLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", 100)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: 100\n")
}

// entries that repeat the most recent entry are compressed into a single
// entry with a repeat count
func TestRepeatedEntries(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", "detail")
	log.Log(logger.Allow, "tag", "detail")
	log.Log(logger.Allow, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail (repeat x3)\n")

	// a different entry breaks the run
	w.Reset()
	log.Log(logger.Allow, "tag", "other detail")
	log.Log(logger.Allow, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail (repeat x3)\ntag: other detail\ntag: detail\n")
}

func TestWriteRecent(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", "first")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "tag: first\n")

	// first entry has been seen. only entries made since the last call to
	// WriteRecent() are written
	w.Reset()
	log.Log(logger.Allow, "tag", "second")
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "tag: second\n")

	w.Reset()
	log.WriteRecent(w)
	test.ExpectEquality(t, w.String(), "")
}
