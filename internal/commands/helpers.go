package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gerunddev/mdrecipe/internal/config"
	"github.com/gerunddev/mdrecipe/internal/logger"
	"github.com/gerunddev/mdrecipe/internal/markdown"
	"github.com/gerunddev/mdrecipe/internal/state"
	"github.com/gerunddev/mdrecipe/internal/styles"
)

// LastScan reads the last N lines of the log file and returns the time of
// the most recent completed scan and how many recipes it parsed. The zero
// time is returned when no scan is found.
func LastScan(logPath string, maxLines int) (time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return time.Time{}, 0
	}

	lines := strings.Split(string(content), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastScan time.Time
	parsed := 0

	// Look for most recent "scan completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if !strings.Contains(line, "scan completed") {
			continue
		}
		// Format: 2025-11-27 14:11:57 INFO scan completed parsed=3 ...
		if len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				lastScan = t
			}
		}
		if idx := strings.Index(line, "parsed="); idx != -1 {
			_, _ = fmt.Sscanf(line[idx:], "parsed=%d", &parsed) //nolint:errcheck // best effort parsing
		}
		break
	}

	return lastScan, parsed
}

// describeError formats a parse failure as "path:line:col: message" when the
// error carries a source position.
func describeError(path string, err error) string {
	var perr *markdown.Error
	if errors.As(err, &perr) && perr.Pos != nil {
		bare := *perr
		bare.Pos = nil
		return fmt.Sprintf("%s:%s: %s", path, perr.Pos, bare.Error())
	}
	return fmt.Sprintf("%s: %s", path, err)
}

// fail prints a styled error and exits
func fail(format string, args ...any) {
	fmt.Println(styles.ErrorStyle.Render("✗ " + fmt.Sprintf(format, args...)))
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config: %v", err)
	}
	return cfg
}

func loadState() *state.State {
	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state: %v", err)
	}
	return st
}

// openLogger opens the configured log file, falling back to a discarding
// logger when it cannot be opened.
func openLogger(cfg *config.Config) (*logger.Logger, func()) {
	if cfg.LogFile == "" {
		return logger.Discard(), func() {}
	}
	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return logger.Discard(), func() {}
	}
	return l, cleanup
}
