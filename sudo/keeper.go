// Package sudo acquires administrative privileges once, up front, and keeps
// the cached credentials fresh while steps run.
package sudo

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/joshyorko/setupvm/common"
)

// DefaultInterval is the period of the keep-alive loop.
const DefaultInterval = 10 * time.Second

// Elevator is what the runner needs from a privilege helper.
type Elevator interface {
	Acquire(ctx context.Context) error
	Loop(ctx context.Context) error
}

// Exec runs one sudo invocation; attached tells whether it may talk to the
// terminal for a password prompt.
type Exec func(ctx context.Context, attached bool, args ...string) error

// Keeper validates sudo credentials with "sudo -v" and refreshes them
// non-interactively with "sudo -n -v".
type Keeper struct {
	Interval time.Duration
	Exec     Exec
}

func NewKeeper(interval time.Duration) *Keeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Keeper{
		Interval: interval,
		Exec:     terminalExec(os.Stdin, os.Stderr),
	}
}

func terminalExec(stdin io.Reader, stderr io.Writer) Exec {
	return func(ctx context.Context, attached bool, args ...string) error {
		command := exec.CommandContext(ctx, "sudo", args...)
		if attached {
			command.Stdin = stdin
			command.Stderr = stderr
		}
		return command.Run()
	}
}

// Acquire asks for the password at most once.
func (it *Keeper) Acquire(ctx context.Context) error {
	common.Debug("acquiring sudo credentials")
	if err := it.Exec(ctx, true, "-v"); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("could not acquire sudo: %w", err)
	}
	return nil
}

// Loop refreshes credentials until ctx ends. Failures are only logged; the
// loop itself never fails.
func (it *Keeper) Loop(ctx context.Context) error {
	ticker := time.NewTicker(it.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			common.Trace("sudo keep-alive stopped")
			return nil
		case <-ticker.C:
			if err := it.Exec(ctx, false, "-n", "-v"); ctx.Err() == nil {
				common.Uncritical("sudo keep-alive", err)
			}
		}
	}
}

// NoElevation is used when running without sudo.
type NoElevation struct{}

func (NoElevation) Acquire(ctx context.Context) error {
	common.Debug("running without sudo")
	return nil
}

func (NoElevation) Loop(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
