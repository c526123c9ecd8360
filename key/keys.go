// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Story Playback - these keys govern the cadence of the auto-advancing story carousel.
const (
	PlaybackIntervalMillis = "playback.interval_ms"
	PlaybackStepSeconds    = "playback.step_seconds"
	PlaybackStoryDuration  = "playback.story_duration_seconds"
	PlaybackAutoplay       = "playback.autoplay"
)

// Story Feed - these keys select and configure where stories are fetched from.
const (
	StoriesFeedURL       = "stories.feed_url"
	StoriesFeedCacheMins = "stories.feed_cache_minutes"
	StoriesBuiltinDelay  = "stories.builtin_delay_ms"
	StoriesRecordHistory = "stories.record_history"
)

// Weather - these keys configure the forecast provider and the default location.
const (
	WeatherAPIHost      = "weather.api_host"
	WeatherLatitude     = "weather.latitude"
	WeatherLongitude    = "weather.longitude"
	WeatherCity         = "weather.city"
	WeatherCacheMinutes = "weather.cache_minutes"
)

// Places - these keys configure the remembered location registry.
const (
	PlacesShowSuggestions = "places.show_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive screens' styling.
const (
	TUIShowImageRefs = "tui.show_image_refs"
	TUIBarGap        = "tui.bar_gap"
	TUIImageViewer   = "tui.image_viewer"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
