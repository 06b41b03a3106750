package steps

import (
	"context"

	"github.com/joshyorko/setupvm/dashcore"
)

// StepRunner is the part of a frontend a Handle needs.
type StepRunner interface {
	RunStep(ctx context.Context, name string, work dashcore.Work) error
}

// Handle gives a running step its helpers. Every call is one tracked
// invocation on the frontend.
type Handle struct {
	ctx      context.Context
	runner   StepRunner
	executor *Executor
}

func NewHandle(ctx context.Context, runner StepRunner, executor *Executor) *Handle {
	return &Handle{
		ctx:      ctx,
		runner:   runner,
		executor: executor,
	}
}

func (it *Handle) RunStep(name string, work dashcore.Work) error {
	return it.runner.RunStep(it.ctx, name, work)
}

// RunCommands runs the commands in order, stopping at the first one that
// fails. The skip condition is evaluated inside the tracked invocation.
func (it *Handle) RunCommands(name string, skip dashcore.SkipCondition, commands ...[]string) error {
	return it.RunStep(name, func(ctx context.Context) error {
		if err := checkSkip(ctx, skip); err != nil {
			return err
		}
		for _, command := range commands {
			if err := it.executor.Command(ctx, command...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (it *Handle) RunScript(name string, skip dashcore.SkipCondition, script string) error {
	return it.RunStep(name, func(ctx context.Context) error {
		if err := checkSkip(ctx, skip); err != nil {
			return err
		}
		return it.executor.Script(ctx, script)
	})
}

func checkSkip(ctx context.Context, skip dashcore.SkipCondition) error {
	if skip == nil {
		return nil
	}
	done, err := skip(ctx)
	if err != nil {
		return err
	}
	if done {
		return dashcore.ErrSkipped
	}
	return nil
}
