package dashcore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSkipped signals that a step determined its goal state already holds.
	ErrSkipped = errors.New("step skipped")
	// ErrInterrupted marks an operator initiated abort.
	ErrInterrupted = errors.New("interrupted")
)

// Skip returns an error that makes the tracker record the step as skipped.
func Skip(reason string) error {
	if len(reason) == 0 {
		return ErrSkipped
	}
	return fmt.Errorf("%w: %s", ErrSkipped, reason)
}

// FailedCheck is a failed precondition or outcome check of a step.
type FailedCheck struct {
	Reason string
}

func (it *FailedCheck) Error() string {
	if len(it.Reason) == 0 {
		return "step failed"
	}
	return it.Reason
}

func Fail(format string, details ...interface{}) error {
	return &FailedCheck{Reason: fmt.Sprintf(format, details...)}
}

// CommandError is an external command that exited with an error. Stderr is
// kept verbatim for the final report.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (it *CommandError) Error() string {
	return fmt.Sprintf("command %q failed with exit code %d", it.Command, it.ExitCode)
}

func (it *CommandError) Unwrap() error {
	return it.Err
}

// IsInterrupt reports whether err came from an operator abort.
func IsInterrupt(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled)
}

// Detail is the human readable text of err shown after the report: command
// stderr when there is some, the error message otherwise.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var command *CommandError
	if errors.As(err, &command) && len(strings.TrimSpace(command.Stderr)) > 0 {
		return command.Stderr
	}
	return err.Error()
}
