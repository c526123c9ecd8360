package style

import "github.com/charmbracelet/lipgloss"

// Screen palette.
var (
	Text    = lipgloss.Color("#cdd6f4")
	Surface = lipgloss.Color("#313244")
	Mauve   = lipgloss.Color("#cba6f7")
	Red     = lipgloss.Color("#f38ba8")

	AccentColor = Mauve
	ErrorColor  = Red

	// Story progress bars: watched part and remainder.
	BarFill  = Text
	BarEmpty = Surface
)
