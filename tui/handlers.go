package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nimbus-cli/nimbus/history"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/nimbus-cli/nimbus/weather"
)

type weatherMsg struct {
	weather *weather.Weather
	err     error
}

type storiesLoadedMsg struct {
	mailbox *playback.Mailbox
	items   []story.Item
	err     error
}

// ticksMsg carries the ticks drained from one stories screen's mailbox.
type ticksMsg struct {
	mailbox *playback.Mailbox
	ticks   []playback.TickMsg
}

type storiesClosedMsg struct{}

func (b *statefulBubble) fetchWeather() tea.Cmd {
	client, loc := b.options.Weather, b.options.Location
	return func() tea.Msg {
		w, err := client.Get(context.Background(), loc)
		return weatherMsg{weather: w, err: err}
	}
}

// openStories enters the stories screen with a fresh playback controller and
// starts fetching items.
func (b *statefulBubble) openStories() tea.Cmd {
	b.dismissStories()

	b.mailbox = playback.NewMailbox()
	b.stories = playback.NewController(b.options.Scheduler, b.mailbox.Post, b.options.Playback)
	b.stories.BeginLoading()

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelLoading = cancel

	b.newState(storiesState)
	return tea.Batch(b.startLoading("Loading stories"), b.loadStories(ctx, b.mailbox))
}

func (b *statefulBubble) loadStories(ctx context.Context, mailbox *playback.Mailbox) tea.Cmd {
	source, unseen := b.options.Source, b.options.Unseen
	return func() tea.Msg {
		items, err := source.Fetch(ctx)
		if err != nil {
			return storiesLoadedMsg{mailbox: mailbox, err: err}
		}

		if unseen {
			filtered, err := history.Unseen(items)
			if err != nil {
				log.Warnf("filter seen stories: %v", err)
			} else {
				items = filtered
			}
		}

		return storiesLoadedMsg{mailbox: mailbox, items: items}
	}
}

// waitForTicks blocks until the mailbox has ticks or is closed. The update
// loop applies the ticks and waits again, so the controller is only ever
// touched from Update.
func (b *statefulBubble) waitForTicks() tea.Cmd {
	mailbox := b.mailbox
	if mailbox == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case <-mailbox.Ready():
			return ticksMsg{mailbox: mailbox, ticks: mailbox.Drain()}
		case <-mailbox.Done():
			return storiesClosedMsg{}
		}
	}
}
