package common

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	logsource  = make(logwriters)
	logbarrier = sync.WaitGroup{}

	// logInterceptor lets a full screen frontend take over log output while it
	// owns the terminal. When it returns true the message is considered handled.
	logInterceptor func(message string) bool
	logMu          sync.RWMutex

	errorOutput io.Writer = os.Stderr
	standardOut io.Writer = os.Stdout
)

// SetLogInterceptor sets a function that intercepts log messages.
// Return false from interceptor to allow normal logging.
func SetLogInterceptor(interceptor func(message string) bool) {
	logMu.Lock()
	logInterceptor = interceptor
	logMu.Unlock()
}

// ClearLogInterceptor removes the current log interceptor
func ClearLogInterceptor() {
	logMu.Lock()
	logInterceptor = nil
	logMu.Unlock()
}

// RedirectOutput replaces standard and error output targets and returns a
// function restoring the previous ones. Used by tests and by the frontends.
func RedirectOutput(stdout, stderr io.Writer) func() {
	WaitLogs()
	logMu.Lock()
	oldOut, oldErr := standardOut, errorOutput
	standardOut, errorOutput = stdout, stderr
	logMu.Unlock()
	return func() {
		WaitLogs()
		logMu.Lock()
		standardOut, errorOutput = oldOut, oldErr
		logMu.Unlock()
	}
}

func interceptLog(message string) bool {
	logMu.RLock()
	interceptor := logInterceptor
	logMu.RUnlock()

	if interceptor != nil {
		return interceptor(message)
	}
	return false
}

func outputs() (io.Writer, io.Writer) {
	logMu.RLock()
	defer logMu.RUnlock()
	return standardOut, errorOutput
}

type syncer interface {
	Sync() error
}

type logwriter func() (io.Writer, string)
type logwriters chan logwriter

func loggerLoop(writers logwriters) {
	var stamp string
	line := uint64(0)
	for {
		line += 1
		todo, ok := <-writers
		if !ok {
			continue
		}
		out, message := todo()

		if TraceFlag() {
			stamp = time.Now().Format("02.150405.000 ")
		} else if LogLinenumbers {
			stamp = fmt.Sprintf("%3d ", line)
		} else {
			stamp = ""
		}
		fmt.Fprintf(out, "%s%s\n", stamp, message)
		if it, ok := out.(syncer); ok {
			it.Sync()
		}
		logbarrier.Done()
	}
}

func init() {
	go loggerLoop(logsource)
}

func AcceptableOutput(message string) bool {
	for _, fragment := range LogHides {
		if strings.Contains(message, fragment) {
			return false
		}
	}
	return true
}

func printout(message string) {
	if !AcceptableOutput(message) {
		return
	}
	if interceptLog(message) {
		return
	}
	_, out := outputs()
	logbarrier.Add(1)
	logsource <- func() (io.Writer, string) {
		return out, message
	}
}

func Fatal(context string, err error) {
	if err != nil {
		printout(fmt.Sprintf("Fatal [%s]: %v", context, err))
	}
}

func Error(context string, err error) {
	if err != nil {
		Log("Error [%s]: %v", context, err)
	}
}

func Uncritical(context string, err error) {
	if err != nil {
		Log("Warning [%s; not critical]: %v", context, err)
	}
}

func Log(format string, details ...interface{}) {
	if !Silent() {
		prefix := ""
		if DebugFlag() || TraceFlag() {
			prefix = "[N] "
		}
		printout(fmt.Sprintf(prefix+format, details...))
	}
}

func Debug(format string, details ...interface{}) error {
	if DebugFlag() {
		printout(fmt.Sprintf("[D] "+format, details...))
	}
	return nil
}

func Trace(format string, details ...interface{}) error {
	if TraceFlag() {
		printout(fmt.Sprintf("[T] "+format, details...))
	}
	return nil
}

// Stdout writes directly to standard output, bypassing the log loop and any
// interceptor. Reports and prompts go through here.
func Stdout(format string, details ...interface{}) {
	message := format
	if len(details) > 0 {
		message = fmt.Sprintf(format, details...)
	}
	if AcceptableOutput(message) {
		out, _ := outputs()
		fmt.Fprint(out, message)
		if it, ok := out.(syncer); ok {
			it.Sync()
		}
	}
}

func WaitLogs() {
	runtime.Gosched()
	logbarrier.Wait()
}
