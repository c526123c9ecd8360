package playback

import (
	"time"

	"github.com/nimbus-cli/nimbus/key"
	"github.com/spf13/viper"
)

// Options controls playback cadence. Each tick adds Step/Duration to the
// active item's progress; ticks are requested every Interval.
type Options struct {
	Interval time.Duration
	// Step is the story time, in seconds, accounted for by one tick.
	Step float64
	// Duration is how long one item is displayed, in seconds.
	Duration float64
	// Autoplay starts the scheduler as soon as items are loaded.
	Autoplay bool
}

// DefaultOptions yields 100 ticks per second and 300 ticks per item.
func DefaultOptions() Options {
	return Options{
		Interval: 10 * time.Millisecond,
		Step:     0.01,
		Duration: 3.0,
		Autoplay: true,
	}
}

// OptionsFromConfig reads the cadence from the playback.* configuration keys,
// falling back to the defaults for non-positive values.
func OptionsFromConfig() Options {
	opts := DefaultOptions()

	if ms := viper.GetInt(key.PlaybackIntervalMillis); ms > 0 {
		opts.Interval = time.Duration(ms) * time.Millisecond
	}
	if step := viper.GetFloat64(key.PlaybackStepSeconds); step > 0 {
		opts.Step = step
	}
	if duration := viper.GetFloat64(key.PlaybackStoryDuration); duration > 0 {
		opts.Duration = duration
	}
	opts.Autoplay = viper.GetBool(key.PlaybackAutoplay)

	return opts
}
