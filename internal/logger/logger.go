package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file used when the config names none, relative to the working directory.
const DefaultPath = "logs/sandbox.txt"

// maxLines bounds the in-memory history shown by the console. The file keeps everything.
const maxLines = 1000

// Logger stores lines of text (console input, collisions, spawns) in memory and appends them
// to a file on disk. An empty path keeps lines in memory only.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to path and ensures the log directory exists.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Path returns the log file path, or "" for a memory-only logger.
func (l *Logger) Path() string {
	return l.path
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	l.mu.Lock()
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n stored lines (fewer if not that many exist).
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	n = min(max(n, 0), len(l.lines))
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}
