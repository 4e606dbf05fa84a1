package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Parse errors
	Orange  = "#FC9867" // Warnings, timers
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Parsed recipes, ingredient references
	Cyan    = "#78DCE8" // Quantities
	Blue    = "#AB9DF2" // Tags
	Magenta = "#FF6188" // Titles

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	SpinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Magenta))
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	LabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Yellow))
	ValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))

	// Recipe elements
	QuantityStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	IngredientStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green)).Italic(true)
	TimerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange)).Bold(true)
	TagStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color(Blue))

	// Table/detail styles
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Magenta)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(Border)).
			BorderBottom(true)

	TableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border))

	ViewportStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))
)
