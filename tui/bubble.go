package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nimbus-cli/nimbus/history"
	"github.com/nimbus-cli/nimbus/internal/ui"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/log"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/nimbus-cli/nimbus/util"
	"github.com/nimbus-cli/nimbus/weather"
	"github.com/spf13/viper"
)

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	weather      *weather.Weather
	weatherError error

	// The stories screen owns a fresh controller and mailbox each time it is
	// entered. Both are nil while the screen is closed.
	stories       *playback.Controller
	mailbox       *playback.Mailbox
	cancelLoading context.CancelFunc

	progressStatus string
	lastError      error

	width, height int
	notifier      *ui.Model

	options *Options
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState switches to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != loadingState && b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
}

func (b *statefulBubble) startLoading(status string) tea.Cmd {
	b.loading = true
	b.progressStatus = status
	return b.spinnerC.Tick
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.progressStatus = ""
}

// dismissStories tears the stories screen down: autoplay stops, queued ticks
// are dropped and the progress reached is recorded.
func (b *statefulBubble) dismissStories() {
	if b.cancelLoading != nil {
		b.cancelLoading()
		b.cancelLoading = nil
	}

	if b.stories == nil {
		return
	}

	b.stories.Close()
	b.mailbox.Close()

	state := b.stories.State()
	if viper.GetBool(key.StoriesRecordHistory) && len(state.Items) > 0 {
		if err := history.SaveAll(state.Items, state.Progress); err != nil {
			log.Warnf("record story history: %v", err)
		}
	}

	b.stories = nil
	b.mailbox = nil
}

func newBubble(options *Options) *statefulBubble {
	if options.Scheduler == nil {
		options.Scheduler = playback.NewTickerScheduler(1)
	}

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		notifier:      &ui.Model{},
		options:       options,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(
		progress.WithSolidFill(string(style.BarFill)),
		progress.WithoutPercentage(),
	)
	bubble.progressC.EmptyColor = string(style.BarEmpty)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
