package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/icon"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/style"
	"github.com/nimbus-cli/nimbus/util"
	"github.com/nimbus-cli/nimbus/weather"
	"github.com/spf13/viper"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case weatherState:
		output = b.viewWeather()
	case storiesState:
		output = b.viewStories()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewWeather() string {
	lines := []string{
		style.Title("Weather"),
		"",
		icon.Get(icon.Place) + " " + style.Fg(color.Purple)(b.options.Location.String()),
		"",
	}

	switch {
	case b.weatherError != nil:
		lines = append(lines, style.Fg(color.Red)(icon.Get(icon.Fail)+" "+b.weatherError.Error()))
	case b.weather != nil:
		lines = append(lines, weatherLines(b.weather)...)
	}

	if b.loading {
		lines = append(lines, "", b.spinnerC.View()+" "+b.progressStatus)
	}

	return b.renderLines(true, lines)
}

func weatherLines(w *weather.Weather) []string {
	return []string{
		style.Faint(weather.FormatTime(w.Current.Time.Time)),
		icon.Get(icon.Weather) + " " + style.Bold(w.Temperature()),
		style.Faint("wind ") + w.WindSpeed(),
	}
}

func (b *statefulBubble) viewStories() string {
	if b.stories == nil {
		return b.renderLines(true, nil)
	}

	state := b.stories.State()
	if state.Phase() == playback.Loading {
		return b.renderLines(true, []string{
			style.Title("Stories"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		})
	}

	lines := []string{b.viewBars(state), ""}

	item, ok := state.ActiveItem().Get()
	if !ok {
		lines = append(lines, style.Faint("No new stories"))
		return b.renderLines(true, lines)
	}

	lines = append(lines,
		icon.Get(icon.Story)+" "+style.Bold(wrap.String(item.String(), b.width)),
		"",
	)
	if viper.GetBool(key.TUIShowImageRefs) && item.Image != "" {
		lines = append(lines, style.Faint(item.Image), "")
	}

	idx := state.Active.OrElse(0)
	status := fmt.Sprintf("%d/%d", idx+1, len(state.Items))
	switch state.Phase() {
	case playback.Playing:
		status = icon.Get(icon.Play) + " " + status
	case playback.Paused:
		status = icon.Get(icon.Pause) + " " + status + " " + style.Fg(color.Yellow)("paused")
	case playback.Finished:
		status = icon.Get(icon.Seen) + " " + status + " " + style.Fg(color.Green)("all caught up")
	}
	lines = append(lines, status)

	return b.renderLines(true, lines)
}

// viewBars renders one progress bar per story, sharing the width evenly.
func (b *statefulBubble) viewBars(state playback.State) string {
	n := len(state.Items)
	if n == 0 {
		return ""
	}

	gap := util.Max(viper.GetInt(key.TUIBarGap), 0)
	width := util.Max((b.width-gap*(n-1))/n, 1)
	b.progressC.Width = width

	bars := make([]string, n)
	for i, item := range state.Items {
		bars[i] = b.progressC.ViewAs(state.ProgressOf(item.ID))
	}
	return strings.Join(bars, strings.Repeat(" ", gap))
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
