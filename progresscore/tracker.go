// Package progresscore holds the status log shared between the goroutine
// running steps and the goroutine repainting the screen.
package progresscore

import (
	"strings"
	"sync"
	"time"

	"github.com/joshyorko/setupvm/dashcore"
)

// StatusLog is an ordered record of step invocations. It only grows at the
// end, and only the last entry may change, from running to a terminal state.
// Readers always get copies, so a (name, status) pair is never torn.
type StatusLog struct {
	entries   []TrackedStep
	startTime time.Time
	mu        sync.RWMutex
	onUpdate  func() // Callback when the log changes
}

// TrackedStep represents a single step with timing info
type TrackedStep struct {
	Name      string
	Status    dashcore.StepStatus
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns how long this step took (or has been running)
func (s TrackedStep) Duration() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Line is the flat report form of the entry.
func (s TrackedStep) Line() string {
	return s.Status.String() + " " + s.Name
}

func NewStatusLog() *StatusLog {
	return &StatusLog{
		startTime: time.Now(),
	}
}

// SetOnUpdate sets a callback for when the log changes
func (sl *StatusLog) SetOnUpdate(fn func()) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.onUpdate = fn
}

// Append records the start of an invocation. It refuses to start a new entry
// while the previous one is still running.
func (sl *StatusLog) Append(name string) bool {
	sl.mu.Lock()
	last := len(sl.entries) - 1
	if last >= 0 && sl.entries[last].Status == dashcore.StepRunning {
		sl.mu.Unlock()
		return false
	}
	sl.entries = append(sl.entries, TrackedStep{
		Name:      name,
		Status:    dashcore.StepRunning,
		StartTime: time.Now(),
	})
	notify := sl.onUpdate
	sl.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// canTransition checks if a status transition is valid (forward-only)
func canTransition(from, to dashcore.StepStatus) bool {
	return from == dashcore.StepRunning && to.IsTerminal()
}

// Finish replaces the status of the last entry. Only running entries can be
// finished, and only into a terminal state.
func (sl *StatusLog) Finish(status dashcore.StepStatus) bool {
	sl.mu.Lock()
	last := len(sl.entries) - 1
	if last < 0 || !canTransition(sl.entries[last].Status, status) {
		sl.mu.Unlock()
		return false
	}
	sl.entries[last].Status = status
	sl.entries[last].EndTime = time.Now()
	notify := sl.onUpdate
	sl.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// Len returns the number of started invocations.
func (sl *StatusLog) Len() int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return len(sl.entries)
}

// Snapshot returns a copy of all entries
func (sl *StatusLog) Snapshot() []TrackedStep {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	result := make([]TrackedStep, len(sl.entries))
	copy(result, sl.entries)
	return result
}

// Tail returns a copy of the most recent n entries, oldest first.
func (sl *StatusLog) Tail(n int) []TrackedStep {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > len(sl.entries) {
		n = len(sl.entries)
	}
	result := make([]TrackedStep, n)
	copy(result, sl.entries[len(sl.entries)-n:])
	return result
}

// Current returns the running entry, if there is one.
func (sl *StatusLog) Current() (TrackedStep, bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	last := len(sl.entries) - 1
	if last >= 0 && sl.entries[last].Status == dashcore.StepRunning {
		return sl.entries[last], true
	}
	return TrackedStep{}, false
}

// Report renders the log as "<glyph> <name>" lines.
func (sl *StatusLog) Report() string {
	entries := sl.Snapshot()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	return strings.Join(lines, "\n")
}

// ProgressStats holds progress statistics
type ProgressStats struct {
	Total   int
	Success int
	Failure int
	Skipped int
	Running int
	Elapsed time.Duration
}

func (sl *StatusLog) Stats() ProgressStats {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	stats := ProgressStats{
		Total:   len(sl.entries),
		Elapsed: time.Since(sl.startTime),
	}
	for _, entry := range sl.entries {
		switch entry.Status {
		case dashcore.StepSuccess:
			stats.Success++
		case dashcore.StepFailure:
			stats.Failure++
		case dashcore.StepSkipped:
			stats.Skipped++
		case dashcore.StepRunning:
			stats.Running++
		}
	}
	return stats
}
