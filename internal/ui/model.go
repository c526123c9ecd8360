// Package ui holds small bubbletea components shared by the screens.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nimbus-cli/nimbus/color"
	"github.com/nimbus-cli/nimbus/style"
)

// NotificationLifetime is how long a notification stays on screen.
const NotificationLifetime = 3 * time.Second

// Model shows one short-lived notification next to the last line of a view.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg sets the current notification.
type NotificationMsg string

// ClearNotificationMsg resets the notification.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a command showing text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(text)
	}
}

func clearAfter(at time.Time) tea.Cmd {
	return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Update handles notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearAfter(m.notifiedAt)
	case ClearNotificationMsg:
		// A newer notification keeps its own timer.
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the visible notification.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Fg(color.Gray)(m.notification)
	return strings.Join(lines, "\n")
}
