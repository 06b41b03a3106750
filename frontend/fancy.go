package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
	"github.com/joshyorko/setupvm/logbuf"
	"github.com/joshyorko/setupvm/progresscore"
)

// Fancy owns the whole screen: a selection program first, then a progress
// program started by the first tracked step and stopped by Stop.
type Fancy struct {
	tracker  *Tracker
	input    io.Reader
	output   io.Writer
	progress io.Writer
	tick     time.Duration
	height   int
	cancel   context.CancelFunc
	keys     KeyMap
	styles   Styles
	buffer   *logbuf.LogBuffer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	stopped bool
}

func NewFancy(options Options) *Fancy {
	options = options.withDefaults()
	it := &Fancy{
		input:    options.Input,
		output:   options.Output,
		progress: options.Progress,
		tick:     options.Tick,
		height:   options.Height,
		cancel:   options.Cancel,
		keys:     DefaultKeyMap(),
		styles:   NewStyles(),
		buffer:   logbuf.NewLogBuffer(1000),
	}
	it.tracker = NewTracker(it)
	return it
}

func (it *Fancy) programOptions(extra ...tea.ProgramOption) []tea.ProgramOption {
	options := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithInput(it.input),
		tea.WithOutput(it.output),
		tea.WithoutSignalHandler(),
	}
	return append(options, extra...)
}

func (it *Fancy) SelectSteps(ctx context.Context, candidates []dashcore.Step) ([]dashcore.Step, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	model := newSelectionModel(dashcore.Names(candidates), it.height, it.keys, it.styles)
	program := tea.NewProgram(model, it.programOptions(tea.WithContext(ctx))...)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil {
			return nil, dashcore.ErrInterrupted
		}
		return nil, fmt.Errorf("selection screen: %w", err)
	}

	result, ok := final.(*selectionModel)
	if !ok {
		return nil, fmt.Errorf("selection screen returned %T", final)
	}
	switch result.outcome {
	case selectionQuit:
		return nil, ErrQuit
	case selectionInterrupted:
		return nil, dashcore.ErrInterrupted
	}
	return result.chosen(candidates), nil
}

// StepStarted starts the render loop on the first step.
func (it *Fancy) StepStarted(name string) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.program != nil || it.stopped {
		return
	}

	// Anything logged while the screen is seized would corrupt it.
	common.SetLogInterceptor(func(message string) bool {
		it.buffer.AddLine(message)
		return true
	})

	model := newProgressModel(it.tracker.Log(), it.tick, it.height, it.keys, it.styles, it.cancel)
	program := tea.NewProgram(model, it.programOptions()...)
	done := make(chan struct{})
	it.program, it.done = program, done

	go func() {
		defer close(done)
		_, err := program.Run()
		common.Error("progress screen", err)
	}()
}

func (it *Fancy) StepFinished(entry progresscore.TrackedStep) {}

func (it *Fancy) RunStep(ctx context.Context, name string, work dashcore.Work) error {
	return it.tracker.Run(ctx, name, work)
}

func (it *Fancy) Report() string {
	return it.tracker.Log().Report()
}

// Entries returns a copy of the status log.
func (it *Fancy) Entries() []progresscore.TrackedStep {
	return it.tracker.Log().Snapshot()
}

func (it *Fancy) Stats() progresscore.ProgressStats {
	return it.tracker.Log().Stats()
}

// Stop ends the render loop and waits until the terminal is restored. Logs
// held back while the screen was seized are replayed afterwards. Stop may be
// called any number of times, also when no step ever ran.
func (it *Fancy) Stop() {
	it.mu.Lock()
	if it.stopped {
		it.mu.Unlock()
		return
	}
	it.stopped = true
	program, done := it.program, it.done
	it.mu.Unlock()

	if program != nil {
		select {
		case <-done:
		default:
			program.Send(stopMsg{})
			<-done
		}
	}

	common.ClearLogInterceptor()
	it.flushLogs()
}

func (it *Fancy) flushLogs() {
	entries, dropped := it.buffer.Drain()
	if dropped > 0 {
		fmt.Fprintf(it.progress, "(%d earlier log lines dropped)\n", dropped)
	}
	for _, entry := range entries {
		fmt.Fprintln(it.progress, entry.Message)
	}
}
