// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Nimbus is the canonical application identifier used for filesystem paths and CLI branding.
	Nimbus = "nimbus"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the default HTTP User-Agent string used for requests to weather and story feeds.
	UserAgent = "nimbus/" + Version
)

// Build metadata, overridden at link time via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
