// Package logging fans log events out to a styled console sink and an
// optional logfmt file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	charmLog "github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	Level   string
	Prefix  string
	Console io.Writer
	// FilePath enables the file sink when set
	FilePath string
}

// Logger writes every event to all enabled sinks. It is safe for concurrent
// use; API commands log from their own goroutines.
type Logger struct {
	mu             sync.RWMutex
	sinks          []*charmLog.Logger
	consoleSink    *charmLog.Logger
	consoleEnabled bool
	closeFile      func() error
	filePath       string
}

// New builds a logger writing to the console and, when set, a log file
func New(opts Options) (*Logger, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	lvl, err := charmLog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse logging level %q: %w", level, err)
	}
	console := opts.Console
	if console == nil {
		console = io.Discard
	}

	consoleLogger := charmLog.NewWithOptions(console, charmLog.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.TextFormatter,
	})
	l := &Logger{
		sinks:          []*charmLog.Logger{consoleLogger},
		consoleSink:    consoleLogger,
		consoleEnabled: true,
	}
	if opts.FilePath == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	// file output stays unstyled so it can be grepped
	fileLogger := charmLog.NewWithOptions(f, charmLog.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
	l.sinks = append(l.sinks, fileLogger)
	l.closeFile = f.Close
	l.filePath = opts.FilePath
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	l, _ := New(Options{Level: "error", Console: io.Discard})
	return l
}

// FilePath returns the log file path, or "" without a file sink
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.closeFile == nil {
		return nil
	}
	return l.closeFile()
}

// SetConsoleEnabled mutes or unmutes the console sink. The console is muted
// while the TUI owns the terminal.
func (l *Logger) SetConsoleEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.consoleEnabled = enabled
	l.mu.Unlock()
}

// SetLevel changes the level of every sink.
func (l *Logger) SetLevel(level string) error {
	if l == nil {
		return nil
	}
	lvl, err := charmLog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse logging level %q: %w", level, err)
	}
	for _, sink := range l.sinks {
		sink.SetLevel(lvl)
	}
	return nil
}

func (l *Logger) each(fn func(*charmLog.Logger)) {
	if l == nil {
		return
	}
	l.mu.RLock()
	consoleEnabled := l.consoleEnabled
	l.mu.RUnlock()
	for _, sink := range l.sinks {
		if sink == l.consoleSink && !consoleEnabled {
			continue
		}
		fn(sink)
	}
}

func (l *Logger) Debug(msg string, keyvals ...any) {
	l.each(func(s *charmLog.Logger) { s.Debug(msg, keyvals...) })
}

func (l *Logger) Info(msg string, keyvals ...any) {
	l.each(func(s *charmLog.Logger) { s.Info(msg, keyvals...) })
}

func (l *Logger) Warn(msg string, keyvals ...any) {
	l.each(func(s *charmLog.Logger) { s.Warn(msg, keyvals...) })
}

func (l *Logger) Error(msg string, keyvals ...any) {
	l.each(func(s *charmLog.Logger) { s.Error(msg, keyvals...) })
}
