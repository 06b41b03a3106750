package operations_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/frontend"
	"github.com/joshyorko/setupvm/operations"
	"github.com/joshyorko/setupvm/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElevator struct {
	acquireErr error
	looped     chan struct{}
}

func (it *fakeElevator) Acquire(ctx context.Context) error {
	return it.acquireErr
}

func (it *fakeElevator) Loop(ctx context.Context) error {
	if it.looped != nil {
		close(it.looped)
	}
	<-ctx.Done()
	return nil
}

// stoppable wraps a frontend and counts Stop calls.
type stoppable struct {
	frontend.Frontend
	stops    int
	selected func([]dashcore.Step) ([]dashcore.Step, error)
}

func (it *stoppable) Stop() {
	it.stops++
	it.Frontend.Stop()
}

func (it *stoppable) SelectSteps(ctx context.Context, candidates []dashcore.Step) ([]dashcore.Step, error) {
	if it.selected != nil {
		return it.selected(candidates)
	}
	return it.Frontend.SelectSteps(ctx, candidates)
}

func single(name string, work dashcore.Work, invoked *[]string) dashcore.Step {
	return dashcore.Step{
		Name: name,
		Run: func(ctx context.Context, handle dashcore.Handle) error {
			*invoked = append(*invoked, name)
			return handle.RunStep(name, work)
		},
	}
}

func succeed(context.Context) error { return nil }

func newRunner(candidates []dashcore.Step) (*operations.Runner, *stoppable) {
	ui := &stoppable{Frontend: frontend.NewPlain(&bytes.Buffer{}, nil)}
	return operations.NewRunner(ui, &fakeElevator{}, steps.NewExecutor(false, nil), candidates), ui
}

func withAsciiGlyphs(t *testing.T) {
	old := dashcore.Iconic
	dashcore.Iconic = false
	t.Cleanup(func() { dashcore.Iconic = old })
}

func TestAllStepsSucceedOrSkip(t *testing.T) {
	withAsciiGlyphs(t)
	invoked := []string{}
	runner, ui := newRunner([]dashcore.Step{
		single("A", succeed, &invoked),
		single("B", func(context.Context) error { return dashcore.Skip("done") }, &invoked),
		single("C", succeed, &invoked),
	})

	result := runner.Run(context.Background())

	assert.Equal(t, operations.ExitSuccess, result.ExitCode)
	assert.Equal(t, "+ A\n- B\n+ C", result.Report)
	assert.Empty(t, result.ErrorText)
	assert.Equal(t, operations.StateDone, runner.State())
	assert.Equal(t, 1, ui.stops)
}

func TestFailureStopsTheRun(t *testing.T) {
	withAsciiGlyphs(t)
	invoked := []string{}
	runner, ui := newRunner([]dashcore.Step{
		single("A", succeed, &invoked),
		single("B", func(context.Context) error {
			return &dashcore.CommandError{Command: "apt install b", ExitCode: 100, Stderr: "E: broken packages\n"}
		}, &invoked),
		single("C", succeed, &invoked),
	})

	result := runner.Run(context.Background())

	assert.Equal(t, operations.ExitFailure, result.ExitCode)
	assert.Equal(t, "+ A\nx B", result.Report)
	assert.Equal(t, []string{"A", "B"}, invoked)
	assert.Contains(t, result.ErrorText, "x B")
	assert.Contains(t, result.ErrorText, "E: broken packages")
	assert.Equal(t, "E: broken packages\n", result.Detail)
	assert.Equal(t, operations.StateFailed, runner.State())
	assert.Equal(t, 1, ui.stops)
}

func TestQuitAtSelectionRunsNothing(t *testing.T) {
	invoked := []string{}
	runner, ui := newRunner([]dashcore.Step{single("A", succeed, &invoked)})
	ui.selected = func([]dashcore.Step) ([]dashcore.Step, error) { return nil, frontend.ErrQuit }

	result := runner.Run(context.Background())

	assert.True(t, result.Quit)
	assert.Equal(t, operations.ExitSuccess, result.ExitCode)
	assert.Empty(t, invoked)
	assert.Empty(t, result.Report)
	assert.Equal(t, 1, ui.stops)
}

func TestOnlySelectedStepsRunInOrder(t *testing.T) {
	invoked := []string{}
	candidates := []dashcore.Step{
		single("s0", succeed, &invoked),
		single("s1", succeed, &invoked),
		single("s2", succeed, &invoked),
		single("s3", succeed, &invoked),
		single("s4", succeed, &invoked),
	}
	runner, ui := newRunner(candidates)
	ui.selected = func(all []dashcore.Step) ([]dashcore.Step, error) {
		return []dashcore.Step{all[0], all[1], all[3], all[4]}, nil
	}

	result := runner.Run(context.Background())

	assert.Equal(t, operations.ExitSuccess, result.ExitCode)
	assert.Equal(t, []string{"s0", "s1", "s3", "s4"}, invoked)
	assert.Equal(t, 4, runner.Executed())
}

func TestErrorOutsideTrackedStepIsUnhandled(t *testing.T) {
	withAsciiGlyphs(t)
	invoked := []string{}
	runner, _ := newRunner([]dashcore.Step{
		single("A", succeed, &invoked),
		{Name: "broken", Run: func(context.Context, dashcore.Handle) error { return errors.New("no home directory") }},
		single("C", succeed, &invoked),
	})

	result := runner.Run(context.Background())

	assert.Equal(t, operations.ExitFailure, result.ExitCode)
	assert.Equal(t, "+ A\nError: no home directory", result.ErrorText)
	assert.Equal(t, "Error: no home directory", result.Detail)
	assert.Equal(t, []string{"A"}, invoked)
}

func TestResultCarriesStatusLogOfThePlainFrontend(t *testing.T) {
	withAsciiGlyphs(t)
	invoked := []string{}
	ui := frontend.NewPlain(&bytes.Buffer{}, nil)
	runner := operations.NewRunner(ui, &fakeElevator{}, steps.NewExecutor(false, nil), []dashcore.Step{
		single("A", succeed, &invoked),
		single("B", func(context.Context) error { return dashcore.ErrSkipped }, &invoked),
		single("C", func(context.Context) error { return dashcore.Fail("not today") }, &invoked),
	})

	result := runner.Run(context.Background())

	require.Len(t, result.Entries, 3)
	assert.Equal(t, "C", result.Entries[2].Name)
	assert.Equal(t, 3, result.Stats.Total)
	assert.Equal(t, 1, result.Stats.Success)
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, 1, result.Stats.Failure)
	assert.Equal(t, "not today", result.Detail)
	assert.Equal(t, "+ A\n- B\nx C\nnot today", result.ErrorText)
}

func TestPanicInStepIsContained(t *testing.T) {
	runner, ui := newRunner([]dashcore.Step{
		{Name: "boom", Run: func(ctx context.Context, handle dashcore.Handle) error {
			return handle.RunStep("boom", func(context.Context) error { panic("kaboom") })
		}},
	})

	result := runner.Run(context.Background())

	assert.Equal(t, operations.ExitFailure, result.ExitCode)
	assert.Contains(t, result.ErrorText, "kaboom")
	assert.Equal(t, 1, ui.stops)
}

func TestInterruptIsNotAFailure(t *testing.T) {
	withAsciiGlyphs(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	invoked := []string{}
	runner, ui := newRunner([]dashcore.Step{
		single("A", func(context.Context) error {
			cancel()
			return context.Canceled
		}, &invoked),
		single("B", succeed, &invoked),
	})

	result := runner.Run(ctx)

	assert.True(t, result.Interrupted)
	assert.Equal(t, operations.ExitInterrupted, result.ExitCode)
	assert.Empty(t, result.ErrorText)
	assert.Equal(t, "x A", result.Report)
	assert.Equal(t, []string{"A"}, invoked)
	assert.Equal(t, 1, ui.stops)
}

func TestAcquireFailureStillStopsFrontend(t *testing.T) {
	ui := &stoppable{Frontend: frontend.NewPlain(&bytes.Buffer{}, nil)}
	runner := operations.NewRunner(ui, &fakeElevator{acquireErr: errors.New("could not acquire sudo")}, steps.NewExecutor(false, nil), nil)

	result := runner.Run(context.Background())

	assert.Equal(t, operations.ExitFailure, result.ExitCode)
	assert.True(t, strings.Contains(result.ErrorText, "could not acquire sudo"))
	assert.Equal(t, 1, ui.stops)
}

func TestKeepAliveRunsNextToSteps(t *testing.T) {
	elevator := &fakeElevator{looped: make(chan struct{})}
	ui := &stoppable{Frontend: frontend.NewPlain(&bytes.Buffer{}, nil)}
	waited := false
	candidates := []dashcore.Step{{
		Name: "waits",
		Run: func(ctx context.Context, handle dashcore.Handle) error {
			<-elevator.looped
			waited = true
			return nil
		},
	}}
	runner := operations.NewRunner(ui, elevator, steps.NewExecutor(false, nil), candidates)

	result := runner.Run(context.Background())

	require.Equal(t, operations.ExitSuccess, result.ExitCode)
	assert.True(t, waited)
}
