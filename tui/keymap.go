package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/style"
)

type statefulKeymap struct {
	state state

	quit, forceQuit,
	back,
	stories, refresh,
	next, previous, toggle,
	openImage,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		stories: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp(style.Fg(color.Orange)("s"), style.Fg(color.Orange)("check new stories")),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "next"),
		),
		previous: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "previous"),
		),
		toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pause/resume"),
		),
		openImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case weatherState:
		return h(k.stories, k.refresh, k.quit), h(k.stories, k.refresh, k.showHelp, k.quit, k.forceQuit)
	case storiesState:
		return h(k.previous, k.next, k.toggle, k.back), h(k.previous, k.next, k.toggle, k.openImage, k.back, k.showHelp, k.quit)
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
