// Package style holds the lipgloss render helpers shared by commands and screens.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nimbus-cli/nimbus/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer painting text in c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a screen heading as a padded badge.
var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}

// ErrorTitle is Title on a red badge.
var ErrorTitle = func(s string) string {
	return New().Foreground(color.New("230")).Background(color.Red).Padding(0, 1).Render(s)
}
