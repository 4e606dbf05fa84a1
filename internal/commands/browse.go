package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdrecipe/internal/catalog"
	"github.com/gerunddev/mdrecipe/internal/config"
	"github.com/gerunddev/mdrecipe/internal/preview"
	"github.com/gerunddev/mdrecipe/internal/state"
	"github.com/gerunddev/mdrecipe/internal/tui"
)

// Browse shows all cataloged recipes in an interactive browser
func Browse() {
	cfg := loadConfig()
	log, cleanup := openLogger(cfg)
	defer cleanup()

	// Bubble Tea program (will be set after creating sendBrowseData)
	var p *tea.Program

	// Function to gather and send browse data
	sendBrowseData := func() {
		// Reload state to get latest changes
		st, err := state.Load(config.StateFilePath())
		if err != nil {
			p.Send(tui.BrowseMsg{Err: fmt.Errorf("error loading state: %w", err)})
			return
		}
		data := BrowseData(cfg, st)
		data.LastScan, data.LastParsed = LastScan(cfg.LogFile, 200)
		p.Send(tui.BrowseMsg{Data: data})
	}

	// Rescan the recipe directory, then reload
	refresh := func() {
		st, err := state.Load(config.StateFilePath())
		if err != nil {
			p.Send(tui.BrowseMsg{Err: fmt.Errorf("error loading state: %w", err)})
			return
		}
		scanner, err := catalog.NewScanner(cfg, st)
		if err != nil {
			p.Send(tui.BrowseMsg{Err: err})
			return
		}
		scanner.SetLogger(log)
		if _, err := scanner.Scan(context.Background()); err != nil {
			p.Send(tui.BrowseMsg{Err: err})
			return
		}
		if err := st.Save(config.StateFilePath()); err != nil {
			log.StateError("save", err)
		}
		sendBrowseData()
	}

	load := func(path string, width int) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return preview.Render(data, width), nil
	}

	m := tui.InitBrowseModel(load, refresh)
	p = tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())

	// Send initial browse data
	go sendBrowseData()

	// Run the program
	if _, err := p.Run(); err != nil {
		fail("Error: %v", err)
	}
}

// BrowseData builds the browser rows from the catalog state, in path order
func BrowseData(cfg *config.Config, st *state.State) *tui.BrowseData {
	data := &tui.BrowseData{}
	for _, path := range st.Paths() {
		fs := st.Files[path]
		rel, err := filepath.Rel(cfg.RecipeDir, path)
		if err != nil {
			rel = path
		}
		data.Entries = append(data.Entries, tui.Entry{
			Path:        path,
			RelPath:     rel,
			Name:        fs.Name,
			Tags:        fs.Tags,
			Ingredients: fs.Ingredients,
			Steps:       fs.Steps,
			Error:       fs.Error,
		})
	}
	return data
}
