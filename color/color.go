// Package color provides a curated palette of colors.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI 8-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// Bright variants used for headings.
var (
	HiPurple = New("13")
	HiCyan   = New("14")
)

var (
	Orange = New("#ffb703")
	// Gray is used for transient notifications.
	Gray = New("#808080")
)
