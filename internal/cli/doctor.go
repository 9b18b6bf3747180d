package cli

import (
	"fmt"
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/jafarov01/cockpit/internal/constants"
	"github.com/jafarov01/cockpit/internal/keyring"
	"github.com/jafarov01/cockpit/internal/storage"
	"github.com/jafarov01/cockpit/internal/storage/sqlite"
	"github.com/jafarov01/cockpit/internal/validation"
)

type DoctorCmd struct{}

// Run performs health checks: storage reachability, schema version, a full
// snapshot load, keyring availability, and whether another cockpit process
// is running against the same single-user store.
func (c *DoctorCmd) Run(ctx *Context) error {
	failures := 0

	if err := ctx.Store.Load(); err != nil {
		report(false, "storage: %v", err)
		return fmt.Errorf("%d check(s) failed", 1)
	}
	report(true, "storage reachable at %s", ctx.Store.GetConfigPath())

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		v, err := s.SchemaVersion()
		if err != nil {
			report(false, "schema version: %v", err)
			failures++
		} else {
			report(true, "schema version %d", v)
		}
	}

	snap, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		report(false, "snapshot load: %v", err)
		failures++
	} else {
		report(true, "all collections load cleanly")

		conflicts := validation.CheckSnapshot(snap)
		if len(conflicts) == 0 {
			report(true, "data integrity: no conflicts")
		} else {
			report(false, "data integrity: %d conflict(s)", len(conflicts))
			for _, c := range conflicts {
				fmt.Printf("    %s\n", c)
			}
			failures++
		}
	}

	if keyring.IsAvailable() {
		report(true, "OS keyring available")
	} else {
		report(false, "OS keyring unavailable (only needed for postgres credentials)")
	}

	if n, err := otherCockpitProcesses(); err == nil && n > 0 {
		report(false, "%d other %s process(es) running; concurrent use of one store is unsupported", n, constants.AppName)
		failures++
	} else if err == nil {
		report(true, "no concurrent %s processes", constants.AppName)
	}

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Println("All checks passed.")
	return nil
}

func otherCockpitProcesses() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	n := 0
	for _, p := range procs {
		if p.Pid() != self && strings.HasPrefix(p.Executable(), constants.AppName) {
			n++
		}
	}
	return n, nil
}

func report(ok bool, format string, args ...any) {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	fmt.Printf("%s %s\n", mark, fmt.Sprintf(format, args...))
}
