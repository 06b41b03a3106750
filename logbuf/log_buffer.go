// Package logbuf keeps log lines in memory while a full screen frontend owns
// the terminal, so they can be replayed once the screen is released.
package logbuf

import (
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log entry
type LogLevel int

const (
	LogTrace LogLevel = iota
	LogDebug
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogTrace:
		return "TRACE"
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "???"
	}
}

// LogEntry represents a single log line with metadata
type LogEntry struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

// LogBuffer is a thread-safe circular buffer for log entries
type LogBuffer struct {
	entries []LogEntry
	maxSize int
	dropped int
	mu      sync.RWMutex
}

// NewLogBuffer creates a new log buffer with specified max size
func NewLogBuffer(maxSize int) *LogBuffer {
	if maxSize < 10 {
		maxSize = 10
	}
	return &LogBuffer{
		entries: make([]LogEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Add appends a new log entry
func (lb *LogBuffer) Add(level LogLevel, message string) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.entries = append(lb.entries, LogEntry{
		Time:    time.Now(),
		Level:   level,
		Message: message,
	})

	// Trim if over capacity (circular buffer behavior)
	if len(lb.entries) > lb.maxSize {
		overflow := len(lb.entries) - lb.maxSize
		lb.dropped += overflow
		lb.entries = lb.entries[overflow:]
	}
}

// AddLine adds a line produced by the common logger, using its level prefix.
func (lb *LogBuffer) AddLine(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}

	level := LogInfo
	switch {
	case strings.HasPrefix(line, "[T] "):
		level = LogTrace
	case strings.HasPrefix(line, "[D] "):
		level = LogDebug
	case strings.Contains(line, "Error [") || strings.HasPrefix(line, "Fatal ["):
		level = LogError
	case strings.Contains(line, "Warning ["):
		level = LogWarn
	}
	lb.Add(level, line)
}

// Drain returns all entries and empties the buffer. The second value is the
// number of entries lost to overflow since the last drain.
func (lb *LogBuffer) Drain() ([]LogEntry, int) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	result := make([]LogEntry, len(lb.entries))
	copy(result, lb.entries)
	dropped := lb.dropped
	lb.entries = lb.entries[:0]
	lb.dropped = 0
	return result, dropped
}
