package common

import (
	"time"
)

type Verbosity uint8

const (
	Silently Verbosity = iota
	Normal
	Debugging
	Tracing
)

var (
	Version        = "dev"
	LogLinenumbers bool
	LogHides       []string
	When           = time.Now().Unix()

	verbosity = Normal
)

// DefineVerbosity maps the command line logging flags to a single level.
// Trace wins over debug, and both win over silent.
func DefineVerbosity(silent, debug, trace bool) {
	switch {
	case trace:
		verbosity = Tracing
	case debug:
		verbosity = Debugging
	case silent:
		verbosity = Silently
	default:
		verbosity = Normal
	}
}

func CurrentVerbosity() Verbosity {
	return verbosity
}

func Silent() bool {
	return verbosity == Silently
}

func DebugFlag() bool {
	return verbosity >= Debugging
}

func TraceFlag() bool {
	return verbosity >= Tracing
}

func (it Verbosity) String() string {
	switch it {
	case Silently:
		return "silent"
	case Debugging:
		return "debug"
	case Tracing:
		return "trace"
	default:
		return "normal"
	}
}
