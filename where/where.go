// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/nimbus-cli/nimbus/constant"
	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "NIMBUS_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It follows XDG_CONFIG_HOME on Linux and the equivalent user profile paths on Darwin and Windows.
// The path can be overridden with the NIMBUS_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Nimbus))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Nimbus))
}

// Logs resolves the absolute path to the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Forecasts resolves the directory holding cached weather responses.
func Forecasts() string {
	return ensureDir(filepath.Join(Cache(), "forecasts"))
}

// History resolves the path to the seen-stories registry.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Places resolves the path to the remembered places registry.
func Places() string {
	return filepath.Join(Config(), "places.json")
}

// Feed resolves the path to the cached remote story feed.
func Feed() string {
	return filepath.Join(Cache(), "feed.json")
}

// Temp resolves a volatile directory for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Nimbus))
}
