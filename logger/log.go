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

// Package logger is the central log facility for the application. Most users
// of the package will only need the package level functions, which forward to
// a single central Logger instance.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	tag       string
	detail    string
	repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Logger is a list of log entries. It is safe to use from multiple goroutines.
type Logger struct {
	crit sync.Mutex

	maxEntries int
	entries    []Entry

	// index of the first entry not yet written by WriteRecent()
	recent int

	// log entries are echoed to this writer as they are made. a nil value
	// means no echoing takes place
	echo io.Writer
}

// NewLogger is the preferred method of initialisation for the Logger type.
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
	}
}

// Log adds an entry to the logger. The detail argument can be of any type.
// Values of type error and fmt.Stringer are added using the Error() and
// String() results respectively. Any other type is added using the %v verb of
// the fmt package.
func (l *Logger) Log(perm Permission, tag string, detail any) {
	if !perm.AllowLogging() {
		return
	}

	l.crit.Lock()
	defer l.crit.Unlock()

	var s string
	switch d := detail.(type) {
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	default:
		s = fmt.Sprintf("%v", detail)
	}

	// remove newline characters. a log entry is a single line
	tag = strings.ReplaceAll(tag, "\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	// if the new entry repeats the most recent entry then the repeat count of
	// the existing entry is bumped rather than adding a new entry
	if n := len(l.entries) - 1; n >= 0 && l.entries[n].tag == tag && l.entries[n].detail == s {
		l.entries[n].repeated++
		l.entries[n].Timestamp = time.Now()
		if l.recent > n {
			l.recent = n
		}
	} else {
		l.entries = append(l.entries, Entry{
			Timestamp: time.Now(),
			tag:       tag,
			detail:    s,
		})
	}

	// maintain maximum number of entries
	if len(l.entries) > l.maxEntries {
		n := len(l.entries) - l.maxEntries
		l.entries = l.entries[n:]
		l.recent -= n
		if l.recent < 0 {
			l.recent = 0
		}
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
	}
}

// Logf adds a formatted entry to the logger.
func (l *Logger) Logf(perm Permission, tag string, detail string, args ...any) {
	l.Log(perm, tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the logger.
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()

	l.entries = l.entries[:0]
	l.recent = 0
}

// Write contents of the logger to the io.Writer.
func (l *Logger) Write(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()

	for _, e := range l.entries {
		io.WriteString(output, e.String())
	}
}

// WriteRecent writes the entries added since the previous call to
// WriteRecent().
func (l *Logger) WriteRecent(output io.Writer) {
	l.crit.Lock()
	defer l.crit.Unlock()

	for _, e := range l.entries[l.recent:] {
		io.WriteString(output, e.String())
	}
	l.recent = len(l.entries)
}

// Tail writes the last number of entries to the io.Writer.
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	if number > len(l.entries) {
		number = len(l.entries)
	}

	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// SetEcho instructs the logger to echo entries to the io.Writer as they are
// made. A nil writer stops any echoing. If writeRecent is true then entries
// made since the last call to WriteRecent() are written out immediately.
func (l *Logger) SetEcho(output io.Writer, writeRecent bool) {
	l.crit.Lock()
	l.echo = output
	l.crit.Unlock()

	if output != nil && writeRecent {
		l.WriteRecent(output)
	}
}

// BorrowLog gives the provided function access to the list of log entries.
// The list must not be retained after the function has returned.
func (l *Logger) BorrowLog(f func([]Entry)) {
	l.crit.Lock()
	defer l.crit.Unlock()

	f(l.entries)
}
