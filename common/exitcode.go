package common

import "fmt"

// ExitCode is panicked by pretty.Exit and recovered at the top of main, so
// that deferred teardown runs before the process terminates.
type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) Error() string {
	return fmt.Sprintf("exit %d: %s", it.Code, it.Message)
}

func (it ExitCode) ShowMessage() {
	if len(it.Message) > 0 {
		Log("%s", it.Message)
	}
}
