package story

import (
	"context"
	"errors"
	"time"

	"github.com/nimbus-cli/nimbus/key"
	"github.com/spf13/viper"
)

// ErrNetwork wraps every failure to reach or decode a story feed.
var ErrNetwork = errors.New("story feed unavailable")

// Source fetches the ordered list of stories for a viewing session.
type Source interface {
	// Name returns a short human-readable identifier of the source.
	Name() string

	// Fetch returns the stories in display order.
	Fetch(ctx context.Context) ([]Item, error)
}

// FromConfig returns the Remote source when a feed URL is configured and the
// Builtin one otherwise.
func FromConfig() Source {
	if url := viper.GetString(key.StoriesFeedURL); url != "" {
		return NewRemote(url, time.Duration(viper.GetInt(key.StoriesFeedCacheMins))*time.Minute)
	}

	return &Builtin{
		Delay: time.Duration(viper.GetInt(key.StoriesBuiltinDelay)) * time.Millisecond,
	}
}
