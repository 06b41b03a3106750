package frontend

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
)

// ErrQuit is returned by SelectSteps when the operator leaves the selection
// screen without running anything.
var ErrQuit = errors.New("quit at selection")

// DefaultTick is the repaint period of the progress screen.
const DefaultTick = 50 * time.Millisecond

// Frontend is implemented by Fancy and Plain.
type Frontend interface {
	SelectSteps(ctx context.Context, candidates []dashcore.Step) ([]dashcore.Step, error)
	RunStep(ctx context.Context, name string, work dashcore.Work) error
	Report() string
	Stop()
}

// Kind names a frontend variant.
type Kind int

const (
	KindPlain Kind = iota
	KindPrompting
	KindFancy
)

func (it Kind) String() string {
	switch it {
	case KindFancy:
		return "fancy"
	case KindPrompting:
		return "prompting"
	default:
		return "plain"
	}
}

// Options carries what Choose needs to pick and build a frontend.
type Options struct {
	Unattended     bool
	Fancy          bool
	StdinTerminal  bool
	StdoutTerminal bool

	Input    io.Reader
	Output   io.Writer
	Progress io.Writer
	Tick     time.Duration
	Height   int

	// Cancel is called when the operator aborts from inside the full screen
	// program, which reads the keyboard in raw mode.
	Cancel context.CancelFunc
}

// Variant decides which frontend the options ask for. Unattended always wins,
// the full screen one needs both ends to be terminals and an explicit opt-in.
func Variant(options Options) Kind {
	switch {
	case options.Unattended:
		return KindPlain
	case !options.StdinTerminal || !options.StdoutTerminal:
		return KindPlain
	case options.Fancy:
		return KindFancy
	default:
		return KindPrompting
	}
}

func (it Options) withDefaults() Options {
	if it.Input == nil {
		it.Input = os.Stdin
	}
	if it.Output == nil {
		it.Output = os.Stdout
	}
	if it.Progress == nil {
		it.Progress = os.Stderr
	}
	if it.Tick <= 0 {
		it.Tick = DefaultTick
	}
	if it.Height <= 0 {
		it.Height = 24
	}
	if it.Cancel == nil {
		it.Cancel = func() {}
	}
	return it
}

// Choose builds the frontend once, before any step runs.
func Choose(options Options) Frontend {
	options = options.withDefaults()
	kind := Variant(options)
	common.Debug("frontend variant: %s", kind)
	switch kind {
	case KindFancy:
		return NewFancy(options)
	case KindPrompting:
		return NewPlain(options.Progress, options.Input)
	default:
		return NewPlain(options.Progress, nil)
	}
}
