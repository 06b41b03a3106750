// Package dashcore provides the step types shared by the frontend, steps and
// operations packages. It breaks the import cycle between the frontends that
// run steps and the step helpers that need a frontend to run in.
package dashcore

import (
	"context"
)

// StepStatus represents the state of a single step invocation
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepSuccess
	StepSkipped
	StepFailure
)

// Iconic controls whether to use Unicode icons or ASCII fallback
// This should be set by the pretty package during Setup()
var Iconic = true

// CustomSpinner replaces the built-in animation when it is not empty.
var CustomSpinner []string

// SpinnerFrames returns the animation cycle shown for a running step.
func SpinnerFrames() []string {
	if len(CustomSpinner) > 0 {
		return CustomSpinner
	}
	if Iconic {
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
	return []string{"|", "/", "-", "\\"}
}

// String returns the glyph used for the status in flat reports.
func (s StepStatus) String() string {
	if Iconic {
		switch s {
		case StepRunning:
			return "▶"
		case StepSuccess:
			return "✓"
		case StepFailure:
			return "✗"
		case StepSkipped:
			return "─"
		default:
			return "○"
		}
	}

	// ASCII fallback
	switch s {
	case StepRunning:
		return ">"
	case StepSuccess:
		return "+"
	case StepFailure:
		return "x"
	case StepSkipped:
		return "-"
	default:
		return "o"
	}
}

// Name is the lower case label of a status, as used in logs and colors.
func (s StepStatus) Name() string {
	switch s {
	case StepRunning:
		return "running"
	case StepSuccess:
		return "success"
	case StepFailure:
		return "failure"
	case StepSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// IsTerminal returns true for the states a finished invocation ends in.
func (s StepStatus) IsTerminal() bool {
	return s == StepSuccess || s == StepSkipped || s == StepFailure
}

// Work is the body of one tracked invocation.
type Work func(ctx context.Context) error

// SkipCondition reports whether the goal state of a step already holds.
type SkipCondition func(ctx context.Context) (bool, error)

// Handle is what a step receives to report progress. Every call produces
// exactly one status entry.
type Handle interface {
	RunStep(name string, work Work) error
	RunCommands(name string, skip SkipCondition, commands ...[]string) error
	RunScript(name string, skip SkipCondition, script string) error
}

// Step is one selectable unit on the selection screen.
type Step struct {
	Name string
	Run  func(ctx context.Context, handle Handle) error
}

// Names returns the display names of the given steps in order.
func Names(steps []Step) []string {
	result := make([]string, 0, len(steps))
	for _, step := range steps {
		result = append(result, step.Name)
	}
	return result
}
