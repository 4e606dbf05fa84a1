package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

func options(level log.Level) log.Options {
	return log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	}
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	return &Logger{Logger: log.NewWithOptions(w, options(level))}
}

// NewFileLogger creates a logger that appends to the file at path
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ParseLevel maps a config value to a level, defaulting to info
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ScanStarted logs the start of a catalog scan
func (l *Logger) ScanStarted(recipeDir string, workers int) {
	l.Info("scan started",
		"recipe_dir", recipeDir,
		"workers", workers)
}

// ScanCompleted logs the completion of a catalog scan
func (l *Logger) ScanCompleted(parsed, unchanged, failed int, duration time.Duration) {
	l.Info("scan completed",
		"parsed", parsed,
		"unchanged", unchanged,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// RecipeParsed logs a recipe file that parsed cleanly
func (l *Logger) RecipeParsed(file, name string, ingredients, steps int) {
	l.Info("recipe parsed",
		"file", file,
		"name", name,
		"ingredients", ingredients,
		"steps", steps)
}

// ParseFailed logs a recipe file that was rejected
func (l *Logger) ParseFailed(file string, err error) {
	l.Warn("recipe rejected",
		"file", file,
		"error", err)
}

// FileError logs an I/O error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// Forgotten logs a catalog entry whose file no longer exists
func (l *Logger) Forgotten(file string) {
	l.Info("recipe removed",
		"file", file)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(recipeDir, dialect string, workers int) {
	l.Debug("config loaded",
		"recipe_dir", recipeDir,
		"dialect", dialect,
		"workers", workers)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
