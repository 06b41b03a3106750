package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/frontend"
	"github.com/joshyorko/setupvm/progresscore"
	"github.com/joshyorko/setupvm/steps"
	"github.com/joshyorko/setupvm/sudo"
	"github.com/oklog/run"
)

const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// State of a Runner. Transitions only move forward.
type State int

const (
	StateInit State = iota
	StateSudoAcquired
	StateSelecting
	StateExecuting
	StateDone
	StateFailed
)

func (it State) String() string {
	switch it {
	case StateSudoAcquired:
		return "sudo acquired"
	case StateSelecting:
		return "selecting"
	case StateExecuting:
		return "executing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "init"
	}
}

// Result is everything the command line prints after the frontend has
// released the terminal. ErrorText is the report followed by Detail.
type Result struct {
	Report      string
	Entries     []progresscore.TrackedStep
	Stats       progresscore.ProgressStats
	ErrorText   string
	Detail      string
	ExitCode    int
	Interrupted bool
	Quit        bool
}

// statusSource is implemented by frontends that expose their status log.
type statusSource interface {
	Entries() []progresscore.TrackedStep
	Stats() progresscore.ProgressStats
}

// Runner acquires privileges, lets the operator select steps and runs the
// selection in order, stopping at the first failure.
type Runner struct {
	Frontend frontend.Frontend
	Elevator sudo.Elevator
	Executor *steps.Executor
	Steps    []dashcore.Step

	state    State
	executed int
}

func NewRunner(ui frontend.Frontend, elevator sudo.Elevator, executor *steps.Executor, candidates []dashcore.Step) *Runner {
	if elevator == nil {
		elevator = sudo.NoElevation{}
	}
	return &Runner{
		Frontend: ui,
		Elevator: elevator,
		Executor: executor,
		Steps:    candidates,
	}
}

func (it *Runner) State() State {
	return it.state
}

// Executed is the number of selected steps that were started.
func (it *Runner) Executed() int {
	return it.executed
}

func (it *Runner) enter(state State) {
	common.Debug("runner: %s -> %s", it.state, state)
	it.state = state
}

// Run always stops the frontend before it returns, whatever the outcome.
func (it *Runner) Run(ctx context.Context) Result {
	err := it.run(ctx)
	it.Frontend.Stop()

	if err == nil && ctx.Err() != nil {
		err = dashcore.ErrInterrupted
	}
	return it.conclude(err)
}

func (it *Runner) run(ctx context.Context) error {
	if err := it.Elevator.Acquire(ctx); err != nil {
		return err
	}
	it.enter(StateSudoAcquired)

	var group run.Group

	// Step execution; its end also ends the group.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		group.Add(
			func() error {
				return it.execute(ctx)
			},
			func(_ error) {
				cancel()
			},
		)
	}

	// Privilege keep-alive; it never ends the group on its own.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		group.Add(
			func() error {
				err := it.Elevator.Loop(ctx)
				<-ctx.Done()
				return err
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return group.Run()
}

func (it *Runner) execute(ctx context.Context) (err error) {
	defer func() {
		if caught := recover(); caught != nil {
			err = fmt.Errorf("panic: %v", caught)
		}
	}()

	it.enter(StateSelecting)
	chosen, err := it.Frontend.SelectSteps(ctx, it.Steps)
	if err != nil {
		return err
	}
	common.Debug("selected %d of %d steps: %v", len(chosen), len(it.Steps), dashcore.Names(chosen))

	it.enter(StateExecuting)
	handle := steps.NewHandle(ctx, it.Frontend, it.Executor)
	for _, step := range chosen {
		if ctx.Err() != nil {
			return dashcore.ErrInterrupted
		}
		it.executed++
		common.Trace("executing step #%d %q", it.executed, step.Name)
		if err := step.Run(ctx, handle); err != nil {
			return err
		}
	}
	return nil
}

func (it *Runner) conclude(err error) Result {
	result := Result{
		Report:   it.Frontend.Report(),
		ExitCode: ExitSuccess,
	}
	if source, ok := it.Frontend.(statusSource); ok {
		result.Entries = source.Entries()
		result.Stats = source.Stats()
	}

	var failure *frontend.StepError
	switch {
	case err == nil:
		it.enter(StateDone)
	case errors.Is(err, frontend.ErrQuit):
		it.enter(StateDone)
		result.Quit = true
	case dashcore.IsInterrupt(err):
		it.enter(StateFailed)
		result.Interrupted = true
		result.ExitCode = ExitInterrupted
	case errors.As(err, &failure):
		it.enter(StateFailed)
		result.ErrorText = failure.Text()
		result.Detail = failure.Detail
		result.ExitCode = ExitFailure
	default:
		it.enter(StateFailed)
		result.Detail = fmt.Sprintf("Error: %v", err)
		result.ErrorText = joinLines(result.Report, result.Detail)
		result.ExitCode = ExitFailure
	}
	return result
}

func joinLines(report, detail string) string {
	if len(report) == 0 {
		return detail
	}
	return report + "\n" + detail
}
