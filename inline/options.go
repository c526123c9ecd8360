package inline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nimbus-cli/nimbus/playback"
	"github.com/nimbus-cli/nimbus/story"
	"github.com/samber/lo"
)

// Action is one step applied to a running session.
type Action struct {
	Name  string
	apply func(*playback.Session, context.Context) error
}

type Options struct {
	Out       io.Writer
	Source    story.Source
	Scheduler playback.Scheduler
	Playback  playback.Options
	Actions   []Action
	// UntilFinished keeps the session running until the last story completes.
	UntilFinished bool
	// Timeout bounds the whole run; zero means no bound.
	Timeout time.Duration
	Unseen  bool
	Record  bool
	Json    bool
}

// ParseActions parses a comma separated list of actions:
//
//	next, prev, toggle, play, pause, wait:<duration>
func ParseActions(description string) ([]Action, error) {
	if strings.TrimSpace(description) == "" {
		return nil, nil
	}

	parts := lo.Map(strings.Split(description, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})

	actions := make([]Action, 0, len(parts))
	for _, part := range parts {
		action, err := parseAction(part)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func parseAction(part string) (Action, error) {
	switch part {
	case "next", "advance":
		return Action{Name: "next", apply: (*playback.Session).Advance}, nil
	case "prev", "previous", "rewind":
		return Action{Name: "prev", apply: (*playback.Session).Rewind}, nil
	case "toggle":
		return Action{Name: "toggle", apply: (*playback.Session).ToggleAutoplay}, nil
	case "play":
		return Action{Name: "play", apply: (*playback.Session).StartAutoPlay}, nil
	case "pause":
		return Action{Name: "pause", apply: (*playback.Session).StopAutoPlay}, nil
	}

	if value, ok := strings.CutPrefix(part, "wait:"); ok {
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return Action{}, fmt.Errorf("invalid wait duration: %s", value)
		}
		return Action{Name: part, apply: func(_ *playback.Session, ctx context.Context) error {
			select {
			case <-time.After(d):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}}, nil
	}

	return Action{}, fmt.Errorf("unknown action: %s", part)
}
