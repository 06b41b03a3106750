package pretty

import (
	"strings"

	"github.com/joshyorko/setupvm/dashcore"
)

// StatusColor returns the appropriate ANSI color code for a step status.
// Mappings: pending→gray, running→cyan, success→green, failure→red, skipped→dim
func StatusColor(status string) string {
	if Colorless || Disabled {
		return ""
	}

	switch strings.ToLower(status) {
	case "pending":
		return Grey
	case "running", "in-progress", "in_progress":
		return Cyan
	case "complete", "completed", "success", "done":
		return Green
	case "failed", "failure", "error":
		return Red
	case "skipped", "skip":
		return Faint
	default:
		return ""
	}
}

// ReportLine renders one "<glyph> <name>" line, colored when colors are on.
func ReportLine(status dashcore.StepStatus, name string) string {
	color := StatusColor(status.Name())
	if len(color) == 0 {
		return status.String() + " " + name
	}
	return color + status.String() + Reset + " " + name
}
