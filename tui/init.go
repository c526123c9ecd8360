package tui

import tea "github.com/charmbracelet/bubbletea"

func (b *statefulBubble) Init() tea.Cmd {
	if b.options.Stories {
		return b.openStories()
	}

	b.setState(loadingState)
	return tea.Batch(b.startLoading("Fetching weather for "+b.options.Location.String()), b.fetchWeather())
}
