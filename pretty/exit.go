package pretty

import (
	"fmt"

	"github.com/joshyorko/setupvm/common"
)

// Exit unwinds the stack with a common.ExitCode panic; main recovers it after
// every deferred teardown has run.
func Exit(code int, format string, rest ...interface{}) {
	message := format
	if len(rest) > 0 {
		message = fmt.Sprintf(format, rest...)
	}
	panic(common.ExitCode{
		Code:    code,
		Message: message,
	})
}

func Guard(truth bool, code int, format string, rest ...interface{}) {
	if !truth {
		Exit(code, format, rest...)
	}
}
