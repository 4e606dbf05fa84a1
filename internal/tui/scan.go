package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdrecipe/internal/catalog"
	"github.com/gerunddev/mdrecipe/internal/styles"
)

// scanModel is the Bubble Tea model for the scan progress display
type scanModel struct {
	spinner  spinner.Model
	root     string
	status   string
	complete bool
	result   *catalog.ScanResult
	err      error
}

// ScanMsg is sent when a scan completes
type ScanMsg struct {
	Result *catalog.ScanResult
	Err    error
}

// InitScanModel creates a new scan progress model. root is used to shorten
// the paths of failed recipes.
func InitScanModel(root string) scanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return scanModel{
		spinner: s,
		root:    root,
		status:  "Scanning " + root + "...",
	}
}

func (m scanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case ScanMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m scanModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.result == nil {
		return styles.ErrorStyle.Render("✗ Scan failed: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(styles.WarningStyle.Render("⚠ Scan interrupted: " + m.err.Error()))
		b.WriteString("\n")
	}

	parsed := len(m.result.Parsed)
	if parsed == 0 && len(m.result.Failures) == 0 {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ Nothing changed (%d unchanged)", m.result.Unchanged)))
	} else {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ Parsed %d recipe(s)", parsed)))
		if n := len(m.result.Failures); n > 0 {
			b.WriteString(", " + styles.ErrorStyle.Render(fmt.Sprintf("%d failed", n)))
		}
	}
	b.WriteString("\n")

	for _, f := range m.result.Failures {
		b.WriteString(fmt.Sprintf("  %s %s\n", styles.ErrorStyle.Render("✗ "+m.relative(f.Path)), styles.DimStyle.Render(f.Err.Error())))
	}
	if m.result.Removed > 0 {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d recipe(s) removed from the catalog", m.result.Removed)))
		b.WriteString("\n")
	}

	duration := m.result.EndTime.Sub(m.result.StartTime)
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("Completed in %v", duration.Round(time.Millisecond))))
	b.WriteString("\n")

	return b.String()
}

func (m scanModel) relative(path string) string {
	if rel, err := filepath.Rel(m.root, path); err == nil {
		return rel
	}
	return path
}
