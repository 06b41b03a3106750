package pretty

import (
	"os"

	"github.com/joshyorko/setupvm/common"
	"golang.org/x/term"
)

// ShowCursor makes the cursor visible (CSI ?25h). Used as a last resort when
// the process is about to exit while a full screen program may still be up.
func ShowCursor() {
	if !StdoutTerminal {
		return
	}
	common.Stdout("%s", csif("?25h"))
}

// TerminalHeight returns the terminal height in rows
// Uses golang.org/x/term.GetSize() with fallback to 24 rows if detection fails
func TerminalHeight() int {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		common.Trace("Failed to get terminal height, using fallback: %v", err)
		return 24
	}
	return height
}
