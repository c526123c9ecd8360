package tui

import (
	"errors"
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nimbus-cli/nimbus/internal/ui"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/open"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case weatherMsg:
		// Weather may arrive while another screen is shown.
		b.applyWeather(msg)
		if b.state == loadingState || b.state == weatherState {
			b.stopLoading()
		}
		if b.state == loadingState {
			b.newState(weatherState)
		}
		return b, cmd
	case spinner.TickMsg:
		if !b.loading {
			return b, cmd
		}
		var spinnerCmd tea.Cmd
		b.spinnerC, spinnerCmd = b.spinnerC.Update(msg)
		return b, tea.Batch(cmd, spinnerCmd)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			b.dismissStories()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.showHelp):
			b.helpC.ShowAll = !b.helpC.ShowAll
			return b, cmd
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.state == storiesState || b.state == errorState {
				b.dismissStories()
				b.stopLoading()
			}
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case weatherState:
		stateCmd = b.updateWeather(msg)
	case storiesState:
		stateCmd = b.updateStories(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}

func (b *statefulBubble) applyWeather(msg weatherMsg) {
	if msg.err != nil {
		log.Errorf("fetch weather: %v", msg.err)
		b.weatherError = msg.err
		return
	}
	b.weather = msg.weather
	b.weatherError = nil
}

func (b *statefulBubble) updateWeather(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.refresh):
			return tea.Batch(b.startLoading("Refreshing"), b.fetchWeather())
		case bubblesKey.Matches(msg, b.keymap.stories):
			return b.openStories()
		}
	}
	return nil
}

func (b *statefulBubble) updateStories(msg tea.Msg) tea.Cmd {
	if b.stories == nil {
		return nil
	}

	switch msg := msg.(type) {
	case storiesLoadedMsg:
		if msg.mailbox != b.mailbox {
			return nil
		}
		b.stopLoading()
		b.cancelLoading = nil

		if msg.err != nil {
			// The controller stays in the loading phase and nothing is loaded.
			// Going back from the error leaves the stories screen.
			b.lastError = fmt.Errorf("load stories: %w", msg.err)
			b.setState(errorState)
			return nil
		}

		var notify tea.Cmd
		if err := b.stories.Load(msg.items); err != nil {
			notify = ui.Notify(autoplayNotice(err))
		}
		return tea.Batch(notify, b.waitForTicks())
	case ticksMsg:
		if msg.mailbox != b.mailbox {
			return nil
		}
		for _, tick := range msg.ticks {
			b.stories.HandleTick(tick)
		}
		return b.waitForTicks()
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.dismissStories()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.next):
			b.stories.Advance()
		case bubblesKey.Matches(msg, b.keymap.previous):
			b.stories.Rewind()
		case bubblesKey.Matches(msg, b.keymap.toggle):
			if err := b.stories.ToggleAutoplay(); err != nil {
				return ui.Notify(autoplayNotice(err))
			}
		case bubblesKey.Matches(msg, b.keymap.openImage):
			return b.openActiveImage()
		}
	}
	return nil
}

func (b *statefulBubble) openActiveImage() tea.Cmd {
	item, ok := b.stories.State().ActiveItem().Get()
	if !ok || item.Image == "" {
		return nil
	}

	if err := open.StartWith(item.Image, viper.GetString(key.TUIImageViewer)); err != nil {
		return ui.Notify(fmt.Sprintf("open %s: %v", item.Image, err))
	}
	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		return tea.Quit
	}
	return nil
}

func autoplayNotice(err error) string {
	if errors.Is(err, playback.ErrSchedulerUnavailable) {
		return "autoplay unavailable, use ← → to browse"
	}
	return err.Error()
}
