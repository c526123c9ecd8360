// Package tui provides the interactive weather and stories screens.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/nimbus-cli/nimbus/weather"
)

// Options configures a TUI run.
type Options struct {
	// Stories opens the stories screen directly, skipping the weather screen.
	Stories bool
	// Unseen hides stories that were already watched to the end.
	Unseen bool

	Location weather.Location
	Weather  *weather.Client
	Source   story.Source

	// Scheduler drives autoplay. A single-ticker scheduler is used when nil.
	Scheduler playback.Scheduler
	Playback  playback.Options
}

// Run starts the program and blocks until the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.dismissStories()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
