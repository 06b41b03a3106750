package steps

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
)

// DefaultShell runs catalog scripts.
var DefaultShell = []string{"/bin/sh", "-c"}

// Executor runs external commands for steps. Output is captured; stderr is
// kept for the failure report.
type Executor struct {
	Verbose bool
	Shell   []string
}

func NewExecutor(verbose bool, shell []string) *Executor {
	if len(shell) == 0 {
		shell = DefaultShell
	}
	return &Executor{
		Verbose: verbose,
		Shell:   shell,
	}
}

// Command runs one command and maps a non zero exit onto a CommandError.
func (it *Executor) Command(ctx context.Context, argv ...string) error {
	if len(argv) == 0 {
		return dashcore.Fail("empty command")
	}
	return it.run(ctx, strings.Join(argv, " "), argv)
}

// Script runs a script with the configured shell.
func (it *Executor) Script(ctx context.Context, script string) error {
	argv := append(append([]string{}, it.Shell...), script)
	return it.run(ctx, firstLine(script), argv)
}

// Probe runs a command quietly and reports whether it exited with zero. Only
// a command that cannot be started at all is an error.
func (it *Executor) Probe(ctx context.Context, argv ...string) (bool, error) {
	command := exec.CommandContext(ctx, argv[0], argv[1:]...)
	err := command.Run()
	if err == nil {
		return true, nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, nil
	}
	return false, err
}

// Output runs a command and returns its stdout.
func (it *Executor) Output(ctx context.Context, argv ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, argv[0], argv[1:]...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return "", it.failure(ctx, strings.Join(argv, " "), stderr.String(), err)
	}
	return stdout.String(), nil
}

func (it *Executor) run(ctx context.Context, label string, argv []string) error {
	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, argv[0], argv[1:]...)
	command.Stdout = io.Discard
	command.Stderr = &stderr
	if it.Verbose {
		// os/exec copies each stream in its own goroutine, so each gets its
		// own line buffer.
		stdoutSink, stderrSink := newLineLogger(label), newLineLogger(label)
		defer stdoutSink.Close()
		defer stderrSink.Close()
		command.Stdout = stdoutSink
		command.Stderr = io.MultiWriter(&stderr, stderrSink)
	}
	common.Trace("exec %q", argv)
	err := command.Run()
	if err != nil {
		return it.failure(ctx, label, stderr.String(), err)
	}
	return nil
}

func (it *Executor) failure(ctx context.Context, label, stderr string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	code := -1
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		code = exit.ExitCode()
	}
	return &dashcore.CommandError{
		Command:  label,
		ExitCode: code,
		Stderr:   stderr,
		Err:      err,
	}
}

func firstLine(script string) string {
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			return line
		}
	}
	return "script"
}

// lineLogger forwards complete output lines to the common logger, which is
// intercepted while the full screen frontend owns the terminal.
type lineLogger struct {
	sync.Mutex
	label  string
	buffer []byte
}

func newLineLogger(label string) *lineLogger {
	return &lineLogger{
		label:  label,
		buffer: make([]byte, 0, 256),
	}
}

func (it *lineLogger) Write(blob []byte) (int, error) {
	it.Lock()
	defer it.Unlock()
	for _, b := range blob {
		if b == '\n' {
			it.flush()
			continue
		}
		it.buffer = append(it.buffer, b)
	}
	return len(blob), nil
}

func (it *lineLogger) flush() {
	if len(it.buffer) > 0 {
		common.Log("[%s] %s", it.label, it.buffer)
	}
	it.buffer = it.buffer[:0]
}

func (it *lineLogger) Close() error {
	it.Lock()
	defer it.Unlock()
	it.flush()
	return nil
}
