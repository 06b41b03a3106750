package steps

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joshyorko/setupvm/dashcore"
	ps "github.com/mitchellh/go-ps"
)

// Check is a precondition. Every field that is set must hold.
type Check struct {
	Platform  string   `yaml:"platform,omitempty"`
	NotRoot   bool     `yaml:"not_root,omitempty"`
	Binary    string   `yaml:"binary,omitempty"`
	NoProcess []string `yaml:"no_process,omitempty"`
}

func (it *Check) empty() bool {
	return len(it.Platform) == 0 && !it.NotRoot && len(it.Binary) == 0 && len(it.NoProcess) == 0
}

// Platform returns the "os/machine" pair of the running system, for example
// "linux/x86_64".
func Platform() string {
	return runtime.GOOS + "/" + machine()
}

var (
	currentPlatform = Platform
	effectiveUser   = os.Geteuid
	processNames    = runningProcesses
)

func runningProcesses() ([]string, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(processes))
	for _, process := range processes {
		names = append(names, process.Executable())
	}
	return names, nil
}

func (it *Check) Verify(ctx context.Context) error {
	if len(it.Platform) > 0 {
		if actual := currentPlatform(); !strings.EqualFold(actual, it.Platform) {
			return dashcore.Fail("platform is %s, expected %s", actual, it.Platform)
		}
	}
	if it.NotRoot && effectiveUser() == 0 {
		return dashcore.Fail("running as root")
	}
	if len(it.Binary) > 0 {
		if _, err := exec.LookPath(it.Binary); err != nil {
			return dashcore.Fail("%s not found on PATH", it.Binary)
		}
	}
	if len(it.NoProcess) > 0 {
		names, err := processNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			for _, forbidden := range it.NoProcess {
				if filepath.Base(name) == forbidden {
					return dashcore.Fail("%s is running", forbidden)
				}
			}
		}
	}
	return ctx.Err()
}
