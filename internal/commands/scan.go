package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/mdrecipe/internal/catalog"
	"github.com/gerunddev/mdrecipe/internal/config"
	"github.com/gerunddev/mdrecipe/internal/styles"
	"github.com/gerunddev/mdrecipe/internal/tui"
)

// Scan performs a one-shot catalog scan of the recipe directory
func Scan() {
	fmt.Println(styles.TitleStyle.Render("mdrecipe scan"))
	fmt.Println()

	cfg := loadConfig()
	st := loadState()

	fmt.Println(styles.DimStyle.Render(cfg.RecipeDir))
	fmt.Println()

	log, cleanup := openLogger(cfg)
	defer cleanup()
	log.ConfigLoaded(cfg.RecipeDir, cfg.Dialect, cfg.Workers)

	scanner, err := catalog.NewScanner(cfg, st)
	if err != nil {
		fail("Invalid config: %v", err)
	}
	scanner.SetLogger(log)

	// Initialize Bubble Tea program
	m := tui.InitScanModel(cfg.RecipeDir)
	p := tea.NewProgram(m, tea.WithInput(os.Stdin))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run scan in goroutine and send result to program
	done := make(chan error, 1)
	go func() {
		result, err := scanner.Scan(ctx)
		p.Send(tui.ScanMsg{Result: result, Err: err})
		done <- err
	}()

	// Run the program
	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		fail("Error: %v", err)
	}

	// Quitting early cancels the scan; what was recorded so far is kept.
	cancel()
	scanErr := <-done

	if err := st.Save(config.StateFilePath()); err != nil {
		log.StateError("save", err)
		fail("Error saving state: %v", err)
	}
	if scanErr != nil && ctx.Err() == nil {
		os.Exit(1)
	}
}
