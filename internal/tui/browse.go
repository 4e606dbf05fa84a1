package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdrecipe/internal/styles"
)

// BrowseData holds all cataloged recipes
type BrowseData struct {
	Entries []Entry
	// LastScan is the time of the most recent scan found in the log, zero if unknown
	LastScan   time.Time
	LastParsed int
}

// Entry is one cataloged recipe file
type Entry struct {
	Path        string
	RelPath     string
	Name        string
	Tags        []string
	Ingredients int
	Steps       int
	Error       string
}

// OK reports whether the recipe parsed on its last scan
func (e Entry) OK() bool {
	return e.Error == ""
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

// DetailMsg is sent when the rendered source of the selected recipe is ready
type DetailMsg struct {
	Content string
	Err     error
}

// RefreshBrowseMsg triggers a browse data refresh
type RefreshBrowseMsg struct{}

// LoadFunc renders the source of the recipe at path for the given width
type LoadFunc func(path string, width int) (string, error)

type browseModel struct {
	table         table.Model
	viewport      viewport.Model
	data          *BrowseData
	err           error
	ready         bool
	showingDetail bool
	detailErr     error
	width         int
	height        int
	selected      *Entry
	loadFunc      LoadFunc
	refreshFunc   func()
}

// InitBrowseModel creates a new catalog browser model
func InitBrowseModel(loadFunc LoadFunc, refreshFunc func()) browseModel {
	columns := []table.Column{
		{Title: "Recipe", Width: 30},
		{Title: "File", Width: 36},
		{Title: "Ingredients", Width: 11},
		{Title: "Steps", Width: 6},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = styles.HeaderStyle.Padding(0, 1)
	ts.Selected = styles.SelectedStyle
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = styles.ViewportStyle

	return browseModel{
		table:       t,
		viewport:    vp,
		loadFunc:    loadFunc,
		refreshFunc: refreshFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 10

	case tea.KeyMsg:
		if m.showingDetail {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "q", "esc":
				m.showingDetail = false
				return m, nil
			default:
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, func() tea.Msg { return RefreshBrowseMsg{} }
		case "enter", "d":
			if m.data == nil || len(m.data.Entries) == 0 {
				return m, nil
			}
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.data.Entries) {
				return m, nil
			}
			m.selected = &m.data.Entries[idx]
			m.showingDetail = true
			m.detailErr = nil
			m.viewport.SetContent(styles.DimStyle.Render("Loading " + m.selected.RelPath + "..."))
			m.viewport.GotoTop()
			return m, m.loadDetail(*m.selected)
		default:
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		m.showingDetail = false
		m.selected = nil

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Entries))
			for _, e := range m.data.Entries {
				status := "✓ ok"
				name := e.Name
				if !e.OK() {
					status = "✗ error"
					name = "-"
				}
				rows = append(rows, table.Row{
					name,
					e.RelPath,
					fmt.Sprintf("%d", e.Ingredients),
					fmt.Sprintf("%d", e.Steps),
					status,
				})
			}
			m.table.SetRows(rows)
		}

		return m, nil

	case DetailMsg:
		m.detailErr = msg.Err
		if msg.Err == nil {
			m.viewport.SetContent(msg.Content)
			m.viewport.GotoTop()
		}
		return m, nil

	case RefreshBrowseMsg:
		if m.refreshFunc != nil {
			go m.refreshFunc()
		}
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Recipe Catalog"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingDetail && m.selected != nil {
		b.WriteString(styles.LabelStyle.Render(m.selected.RelPath))
		b.WriteString("\n")
		b.WriteString(entryStatus(*m.selected))
		b.WriteString("\n\n")
		if m.detailErr != nil {
			b.WriteString(styles.ErrorStyle.Render("✗ Unable to load recipe: " + m.detailErr.Error()))
		} else {
			b.WriteString(m.viewport.View())
		}
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	failed := 0
	for _, e := range m.data.Entries {
		if !e.OK() {
			failed++
		}
	}
	summary := fmt.Sprintf("Recipes: %d", len(m.data.Entries))
	if failed > 0 {
		summary += fmt.Sprintf(" (%d with errors)", failed)
	}
	b.WriteString(styles.LabelStyle.Render(summary))
	if !m.data.LastScan.IsZero() {
		b.WriteString("  ")
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("last scan %s, %d parsed",
			m.data.LastScan.Format(time.DateTime), m.data.LastParsed)))
	}
	b.WriteString("\n\n")

	if len(m.data.Entries) == 0 {
		b.WriteString(styles.DimStyle.Render("No recipes cataloged yet. Run 'mdrecipe scan' first."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(styles.TableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter/d view • r rescan • q quit"))
	b.WriteString("\n")

	return b.String()
}

// entryStatus renders the parse outcome of a catalog entry
func entryStatus(e Entry) string {
	if !e.OK() {
		return styles.ErrorStyle.Render("✗ " + e.Error)
	}
	line := styles.SuccessStyle.Render("✓ "+e.Name) +
		styles.DimStyle.Render(fmt.Sprintf(" • %d ingredient(s) • %d step(s)", e.Ingredients, e.Steps))
	if len(e.Tags) > 0 {
		line += " " + styles.TagStyle.Render("#"+strings.Join(e.Tags, " #"))
	}
	return line
}

// loadDetail creates a command that renders the selected recipe
func (m browseModel) loadDetail(e Entry) tea.Cmd {
	loadFunc := m.loadFunc
	width := m.viewport.Width - 4
	return func() tea.Msg {
		if loadFunc == nil {
			return DetailMsg{Err: fmt.Errorf("no loader configured")}
		}
		content, err := loadFunc(e.Path, width)
		return DetailMsg{Content: content, Err: err}
	}
}
