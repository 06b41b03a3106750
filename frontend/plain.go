package frontend

import (
	"context"
	"fmt"
	"io"

	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/progresscore"
	"github.com/joshyorko/setupvm/wizard"
)

// Plain prints each step name when it starts and its glyph when it ends.
// It has no goroutines and no animation.
type Plain struct {
	tracker  *Tracker
	progress io.Writer
	prompter *wizard.Prompter
}

// NewPlain writes progress to the given writer. With a nil input every
// candidate is selected; otherwise the operator is asked about each one.
func NewPlain(progress io.Writer, input io.Reader) *Plain {
	it := &Plain{
		progress: progress,
	}
	if input != nil {
		it.prompter = wizard.NewPrompter(input, progress)
	}
	it.tracker = NewTracker(it)
	return it
}

func (it *Plain) StepStarted(name string) {
	fmt.Fprintf(it.progress, "%s ", name)
}

func (it *Plain) StepFinished(entry progresscore.TrackedStep) {
	fmt.Fprintln(it.progress, entry.Status.String())
}

func (it *Plain) SelectSteps(ctx context.Context, candidates []dashcore.Step) ([]dashcore.Step, error) {
	if it.prompter == nil {
		return candidates, nil
	}
	answers, err := it.prompter.ChooseEach(ctx, dashcore.Names(candidates))
	if ctx.Err() != nil {
		return nil, dashcore.ErrInterrupted
	}
	if err != nil {
		return nil, fmt.Errorf("selecting steps: %w", err)
	}
	result := make([]dashcore.Step, 0, len(candidates))
	for index, answer := range answers {
		if answer {
			result = append(result, candidates[index])
		}
	}
	return result, nil
}

func (it *Plain) RunStep(ctx context.Context, name string, work dashcore.Work) error {
	return it.tracker.Run(ctx, name, work)
}

func (it *Plain) Report() string {
	return it.tracker.Log().Report()
}

// Entries returns a copy of the status log.
func (it *Plain) Entries() []progresscore.TrackedStep {
	return it.tracker.Log().Snapshot()
}

func (it *Plain) Stats() progresscore.ProgressStats {
	return it.tracker.Log().Stats()
}

func (it *Plain) Stop() {}
