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

package scenetest

import (
	"strings"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/host"
	"github.com/ferrovia/smokescreen/logger"
	"github.com/ferrovia/smokescreen/screens"
)

// DefaultFrameBudget is the number of frames a scene is allowed before the
// scheduler fails it. used whenever a Descriptor does not name its own
// budget.
const DefaultFrameBudget = 600

// Order of descriptor scheduling.
type Order int

// List of valid Order values. Lifo is the default, scenes pushed last run
// first.
const (
	Lifo Order = iota
	Fifo
)

func (ord Order) String() string {
	switch ord {
	case Fifo:
		return "fifo"
	}
	return "lifo"
}

// ParseOrder converts a string to an Order value. comparison is case
// insensitive.
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(s) {
	case "LIFO":
		return Lifo, nil
	case "FIFO":
		return Fifo, nil
	}
	return Lifo, curated.Errorf("scene test: unrecognised order (%s)", s)
}

// State of the scheduler.
type State int

// List of scheduler states. the scheduler begins in the Idle state and ends
// in the Drained state. Drained is terminal, descriptors pushed after it has
// been reached will never run.
const (
	Idle State = iota
	Running
	Finishing
	Drained
)

func (state State) String() string {
	switch state {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finishing:
		return "finishing"
	case Drained:
		return "drained"
	}
	return "unknown"
}

// Descriptor names a scene test waiting to be scheduled.
type Descriptor struct {
	Name      string
	ScenePath string

	// number of frames the scene is allowed. values of zero or less mean
	// DefaultFrameBudget
	FrameBudget int
}

// Scheduler runs scene tests one at a time against the host application.
// must be created with NewScheduler().
type Scheduler struct {
	rend host.Renderer
	scr  *screens.Screens

	order   Order
	pending []Descriptor

	state   State
	current host.Scene
	desc    Descriptor

	// frames left before the current scene is failed for taking too long
	remaining int

	// resolved latches the first completion signal (or the budget expiring,
	// whichever comes first). anything after that is ignored
	resolved bool
	outcome  bool

	failed []string
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. the screens argument can be nil if no visual comparisons are wanted.
func NewScheduler(rend host.Renderer, scr *screens.Screens, order Order) *Scheduler {
	return &Scheduler{
		rend:  rend,
		scr:   scr,
		order: order,
	}
}

// Push adds a scene descriptor to the queue.
func (sch *Scheduler) Push(desc Descriptor) {
	sch.pending = append(sch.pending, desc)
}

// Queued returns the number of descriptors waiting to be scheduled.
func (sch *Scheduler) Queued() int {
	return len(sch.pending)
}

// State returns the current state of the scheduler.
func (sch *Scheduler) State() State {
	return sch.state
}

// Current returns the name of the scene currently loaded into the host
// application. the empty string means no scene is loaded.
func (sch *Scheduler) Current() string {
	if sch.current == nil {
		return ""
	}
	return sch.desc.Name
}

// Failures returns the number of scenes that have failed so far.
func (sch *Scheduler) Failures() int {
	return len(sch.failed)
}

// FailedScenes returns the names of the scenes that have failed so far, in
// the order they ran.
func (sch *Scheduler) FailedScenes() []string {
	return sch.failed
}

// Tick advances the scheduler by at most one state transition. it should be
// called once per frame of the host application.
//
// errors returned by Tick() are faults in the host application and not test
// verdicts. the run cannot continue after one.
func (sch *Scheduler) Tick() error {
	switch sch.state {
	case Idle:
		return sch.schedule()

	case Running:
		// the frame spent getting here counts against the budget whatever
		// else happens this tick
		sch.remaining--

		// a completion signal beats the budget expiring on the same tick
		if sch.resolved {
			sch.state = Finishing
			return nil
		}

		if sch.remaining <= 0 {
			sch.resolved = true
			sch.outcome = false
			logger.Logf(logger.Allow, "scene test", "%s: no result after %d frames", sch.desc.Name, sch.budget())
			sch.state = Finishing
		}

	case Finishing:
		if !sch.outcome {
			sch.failed = append(sch.failed, sch.desc.Name)
			logger.Logf(logger.Allow, "scene test", "%s: failed", sch.desc.Name)
		}

		scn := sch.current
		sch.current = nil
		sch.state = Idle

		if err := sch.rend.UnloadScene(scn); err != nil {
			return curated.Errorf("scene test: %v", err)
		}

	case Drained:
		// terminal. nothing to do
	}

	return nil
}

func (sch *Scheduler) budget() int {
	if sch.desc.FrameBudget <= 0 {
		return DefaultFrameBudget
	}
	return sch.desc.FrameBudget
}

func (sch *Scheduler) schedule() error {
	if len(sch.pending) == 0 {
		sch.state = Drained
		return nil
	}

	var desc Descriptor
	switch sch.order {
	case Fifo:
		desc = sch.pending[0]
		sch.pending = sch.pending[1:]
	default:
		desc = sch.pending[len(sch.pending)-1]
		sch.pending = sch.pending[:len(sch.pending)-1]
	}

	scn, err := sch.rend.LoadScene(desc.ScenePath)
	if err != nil {
		return curated.Errorf("scene test: %s: %v", desc.Name, err)
	}

	sch.desc = desc
	sch.current = scn
	sch.resolved = false
	sch.outcome = false

	// the completion function can be called at any point during the scene's
	// life, including from inside the LoadScene() that follows a later
	// descriptor. the current scene check keeps those stale signals out
	scn.OnFinished(func(ok bool) {
		if sch.current != scn || sch.resolved {
			return
		}
		sch.resolved = true
		sch.outcome = ok
	})

	if user, ok := scn.(screens.User); ok && sch.scr != nil {
		user.UseScreens(sch.scr)
	}

	sch.remaining = sch.budget()
	logger.Logf(logger.Allow, "scene test", "running %s (budget of %d frames)", desc.Name, sch.remaining)
	sch.state = Running

	return nil
}
