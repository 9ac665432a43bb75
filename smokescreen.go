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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/ferrovia/smokescreen/curated"
	"github.com/ferrovia/smokescreen/display"
	"github.com/ferrovia/smokescreen/harness"
	"github.com/ferrovia/smokescreen/logger"
	"github.com/ferrovia/smokescreen/modalflag"
	"github.com/ferrovia/smokescreen/performance"
	"github.com/ferrovia/smokescreen/rig"
	"github.com/ferrovia/smokescreen/scenetest"
	"github.com/ferrovia/smokescreen/screens"
	"github.com/ferrovia/smokescreen/statsview"
	"github.com/ferrovia/smokescreen/version"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// exit codes used by the program. failed tests exit with 1, which is
// distinct from the program itself going wrong.
const (
	exitTestsFailed = 1
	exitParseError  = 10
	exitModeError   = 20
)

// the run completed but tests failed. translated to exitTestsFailed by the
// launch() function. the verdict lines and summary have already been printed
// by the time this is returned, there is nothing more to say
const testsFailed = "run: %d tests failed"

// arguments that could not be parsed, at any mode depth. translated to
// exitParseError by the launch() function
const badArguments = "arguments: %v"

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which accepts
// a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread. It
	// should service all gui events that are not safe to do in sub-threads.
	//
	// If the GUI framework does not require this sort of thread safety then
	// there is no need for the Service() function to do anything.
	Service()
}

// communication between the main() function and the launch() function. this
// is required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with a reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new gui creation functions
	//  3. state requests
	//  4. anything in the Service() function of the most recently created GUI
	//
	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// make sure the gui variable is an untyped nil. a nil value
				// inside an interface does not compare equal to nil and the
				// checks in this loop rely on the comparison
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if gui != nil {
				gui.Service()
			} else {
				// no gui to service. sleep so the main thread is not
				// spinning while the test run proceeds on its goroutine
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses the mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "UNIT", "SCREENS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: exitParseError}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "UNIT":
		err = unit(md)

	case "SCREENS":
		err = catalogue(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		switch {
		case curated.Is(err, testsFailed):
			sync.state <- stateRequest{req: reqQuit, args: exitTestsFailed}

		case curated.Is(err, badArguments):
			fmt.Printf("* error: %v\n", err)
			sync.state <- stateRequest{req: reqQuit, args: exitParseError}

		default:
			fmt.Printf("* error in %s mode: %s\n", md.String(), err)
			sync.state <- stateRequest{req: reqQuit, args: exitModeError}
		}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	dir := md.AddString("dir", "tests", "directory to scan for test files")
	record := md.AddBool("record", false, "record baseline images instead of comparing against them")
	threshold := md.AddFloat64("threshold", screens.DefaultThreshold, "acceptable rms difference between candidate and baseline")
	frames := md.AddInt("frames", scenetest.DefaultFrameBudget, "frame budget for each scene test")
	order := md.AddString("order", "lifo", "scene scheduling order: LIFO, FIFO")
	failed := md.AddBool("failed", false, "rerun only the tests that failed last time")
	verbose := md.AddBool("verbose", false, "show diagnostics for failing unit test cases")
	disp := md.AddBool("display", false, "show captured frames in a window")
	scale := md.AddFloat64("scale", 2.0, "scaling of the display window")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	profile := md.AddString("profile", "none", "run through a profiler: CPU, MEM, TRACE, ALL")
	stats := md.AddBool("statsview", false, "run stats server")
	memviz := md.AddString("memviz", "", "write a graphviz dump of harness state to file")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(badArguments, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout), true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	ord, err := scenetest.ParseOrder(*order)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	rg := rig.NewRig()

	cat, err := rig.Catalog()
	if err != nil {
		return err
	}

	har, err := harness.NewHarness(md.Output, rg, cat, harness.Options{
		Dir:         *dir,
		Record:      *record,
		Threshold:   *threshold,
		FrameBudget: *frames,
		Order:       ord,
		FailedOnly:  *failed,
		Verbose:     *verbose,
	})
	if err != nil {
		return err
	}

	if *disp {
		// create the display
		sync.creator <- func() (GuiCreator, error) {
			return display.NewDisplay(float32(*scale))
		}

		// wait for creator result
		select {
		case g := <-sync.creation:
			har.Preview(g.(*display.Display).SetFrame)
		case err := <-sync.creationError:
			return err
		}
	}

	err = performance.RunProfiler(prf, "smokescreen", har.Run)
	if err != nil {
		// the rig stops ticking when a comparator fault occurs. the fault is
		// a better thing to report than the fact the application quit
		if f := rg.Fault(); f != nil {
			return f
		}
		return err
	}

	if *memviz != "" {
		f, err := os.Create(*memviz)
		if err != nil {
			return curated.Errorf("memviz: %v", err)
		}
		har.DumpState(f)
		if err := f.Close(); err != nil {
			return curated.Errorf("memviz: %v", err)
		}
		fmt.Fprintf(md.Output, "memviz dump written to %s\n", *memviz)
	}

	if n := har.Failures(); n > 0 {
		return curated.Errorf(testsFailed, n)
	}

	return nil
}

func unit(md *modalflag.Modes) error {
	md.NewMode()

	dir := md.AddString("dir", "tests", "directory to scan for test files")
	verbose := md.AddBool("verbose", false, "show diagnostics for failing unit test cases")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(badArguments, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout), true)
	} else {
		logger.SetEcho(nil, false)
	}

	cat, err := rig.Catalog()
	if err != nil {
		return err
	}

	har, err := harness.NewHarness(md.Output, rig.NewRig(), cat, harness.Options{
		Dir:      *dir,
		Verbose:  *verbose,
		UnitOnly: true,
	})
	if err != nil {
		return err
	}

	if err := har.Run(); err != nil {
		return err
	}

	if n := har.Failures(); n > 0 {
		return curated.Errorf(testsFailed, n)
	}

	return nil
}

func catalogue(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("LIST", "DELETE")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(badArguments, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	switch md.Mode() {
	case "LIST":
		md.NewMode()
		dir := md.AddString("dir", "", "baseline directory (default: the screens directory in the resources path)")

		p, err := md.Parse()
		if err != nil {
			return curated.Errorf(badArguments, err)
		}
		if p != modalflag.ParseContinue {
			return nil
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return screens.CatalogueList(md.Output, *dir)
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()
		dir := md.AddString("dir", "", "baseline directory (default: the screens directory in the resources path)")
		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil {
			return curated.Errorf(badArguments, err)
		}
		if p != modalflag.ParseContinue {
			return nil
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("baseline key required for %s mode", md)
		case 1:
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = &keypressReader{}
			}

			return screens.CatalogueDelete(md.Output, confirmation, *dir, md.GetArg(0))
		default:
			return fmt.Errorf("only one baseline can be deleted at a time")
		}
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(badArguments, err)
	}
	if p != modalflag.ParseContinue {
		return nil
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}

// yesReader always returns 'y'. used to satisfy a confirmation request when
// the user has already consented with a command line flag.
type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

// keypressReader reads a single unbuffered keypress from stdin, saving the
// user from having to press return after answering a confirmation request.
type keypressReader struct{}

func (*keypressReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	fd := os.Stdin.Fd()

	// stdin may not be a terminal, a piped confirmation for example. fall
	// back to a buffered read
	var saved unix.Termios
	if err := termios.Tcgetattr(fd, &saved); err != nil {
		return os.Stdin.Read(p)
	}

	cbreak := saved
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(fd, termios.TCIFLUSH, &cbreak); err != nil {
		return 0, err
	}
	defer func() {
		_ = termios.Tcsetattr(fd, termios.TCIFLUSH, &saved)
	}()

	n, err = os.Stdin.Read(p[:1])

	// the terminal does not echo in cbreak mode. emit a newline so that
	// subsequent output starts cleanly
	fmt.Println()

	return n, err
}
