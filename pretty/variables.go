package pretty

import (
	"fmt"
	"os"

	"github.com/joshyorko/setupvm/common"
	"github.com/joshyorko/setupvm/dashcore"
	"github.com/mattn/go-isatty"
)

var (
	Colorless      bool
	Iconic         bool
	Disabled       bool
	StdinTerminal  bool
	StdoutTerminal bool
	White          string
	Grey           string
	Red            string
	Green          string
	Yellow         string
	Cyan           string
	Reset          string
	Bold           string
	Faint          string
)

func csi(value string) string {
	return fmt.Sprintf("\x1b[%s", value)
}

func csif(form string, details ...interface{}) string {
	return csi(fmt.Sprintf(form, details...))
}

// Setup detects terminal capabilities once at startup. The frontend choice
// needs both stdin and stdout to be terminals for anything but plain output.
func Setup() {
	StdinTerminal = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	StdoutTerminal = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	// Check NO_COLOR environment variable - if set, disable colors
	if os.Getenv("NO_COLOR") != "" {
		Colorless = true
	}

	// Handle missing TERM environment variable by defaulting to non-color mode
	if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" {
		Colorless = true
	}

	Iconic = StdoutTerminal && os.Getenv("TERM") != "dumb"
	dashcore.Iconic = Iconic

	common.Trace("stdin terminal: %v; stdout terminal: %v; colors enabled: %v; icons enabled: %v", StdinTerminal, StdoutTerminal, !Colorless && !Disabled, Iconic)
	if StdoutTerminal && !Colorless && !Disabled {
		White = csi("97m")
		Grey = csi("90m")
		Red = csi("91m")
		Green = csi("92m")
		Yellow = csi("93m")
		Cyan = csi("96m")
		Reset = csi("0m")
		Bold = csi("1m")
		Faint = csi("2m")
	}
}

// ForceIcons overrides icon detection, for example from settings.
func ForceIcons(enabled bool) {
	Iconic = enabled
	dashcore.Iconic = enabled
}

// Header outputs a header text in Bold with a newline.
func Header(text string) {
	common.Stdout("%s%s%s\n", Bold, text, Reset)
}

// Error outputs an error message in Red with a newline.
func Error(message string) {
	common.Stdout("%s%s%s\n", Red, message, Reset)
}
