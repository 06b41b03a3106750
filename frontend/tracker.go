package frontend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/progresscore"
)

// Observer is told about every status transition a Tracker records. The
// fancy frontend starts its render loop from StepStarted, the plain one
// prints from both.
type Observer interface {
	StepStarted(name string)
	StepFinished(entry progresscore.TrackedStep)
}

// StepError is returned by a scope that ended in failure. Text is what the
// operator sees after the screen is released.
type StepError struct {
	Step   string
	Report string
	Detail string
	Err    error
}

func (it *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", it.Step, it.Err)
}

func (it *StepError) Unwrap() error {
	return it.Err
}

func (it *StepError) Text() string {
	if len(it.Detail) == 0 {
		return it.Report
	}
	return it.Report + "\n" + it.Detail
}

// Tracker owns the status log and maps the outcome of each tracked
// invocation onto a status.
type Tracker struct {
	log      *progresscore.StatusLog
	observer Observer
}

func NewTracker(observer Observer) *Tracker {
	return &Tracker{
		log:      progresscore.NewStatusLog(),
		observer: observer,
	}
}

func (it *Tracker) Log() *progresscore.StatusLog {
	return it.log
}

// Scope is one tracked invocation between Begin and End.
type Scope struct {
	tracker *Tracker
	ctx     context.Context
	name    string
	closed  bool
}

// Begin records the start of a step. Steps are strictly sequential, so
// beginning while another scope is open is an error.
func (it *Tracker) Begin(ctx context.Context, name string) (*Scope, error) {
	if !it.log.Append(name) {
		current, _ := it.log.Current()
		return nil, fmt.Errorf("cannot start %q while %q is still running", name, current.Name)
	}
	common.Trace("step %q started", name)
	if it.observer != nil {
		it.observer.StepStarted(name)
	}
	return &Scope{
		tracker: it,
		ctx:     ctx,
		name:    name,
	}, nil
}

func (it *Scope) finish(status dashcore.StepStatus) {
	log := it.tracker.log
	log.Finish(status)
	entries := log.Tail(1)
	if len(entries) != 1 {
		return
	}
	common.Trace("step %q finished: %s in %s", it.name, status.Name(), entries[0].Duration().Round(time.Millisecond))
	if it.tracker.observer != nil {
		it.tracker.observer.StepFinished(entries[0])
	}
}

// End records the outcome of the scope and returns what the caller should
// see: nil for success and skip, dashcore.ErrInterrupted for an operator
// abort, a *StepError for anything else. Calling End again is a no-op.
func (it *Scope) End(err error) error {
	if it.closed {
		return err
	}
	it.closed = true

	switch {
	case err == nil:
		it.finish(dashcore.StepSuccess)
		return nil
	case errors.Is(err, dashcore.ErrSkipped):
		it.finish(dashcore.StepSkipped)
		common.Debug("step %q skipped: %v", it.name, err)
		return nil
	case dashcore.IsInterrupt(err) || (it.ctx != nil && it.ctx.Err() != nil):
		it.finish(dashcore.StepFailure)
		return fmt.Errorf("%w: during %q", dashcore.ErrInterrupted, it.name)
	default:
		it.finish(dashcore.StepFailure)
		return &StepError{
			Step:   it.name,
			Report: it.tracker.log.Report(),
			Detail: dashcore.Detail(err),
			Err:    err,
		}
	}
}

// Run pairs Begin and End around work. A panic inside work is recorded as a
// failure before it continues unwinding.
func (it *Tracker) Run(ctx context.Context, name string, work dashcore.Work) error {
	scope, err := it.Begin(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		if caught := recover(); caught != nil {
			scope.End(fmt.Errorf("panic: %v", caught))
			panic(caught)
		}
	}()
	return scope.End(work(ctx))
}
