package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/nimbus-cli/nimbus/constant"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/spf13/viper"
)

// ErrUnknownKey is returned for keys missing from Default.
var ErrUnknownKey = errors.New("unknown config key")

// Path returns the location of the config file, whether or not it exists.
func Path() string {
	return filepath.Join(where.Config(), constant.Nimbus+".toml")
}

// Parse converts raw command line values to the type of the key's default.
func Parse(key string, raw []string) (any, error) {
	field, ok := Default[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	if _, ok := field.Value.([]string); ok {
		return raw, nil
	}

	if len(raw) != 1 {
		return nil, fmt.Errorf("%s expects a single value, got %d", key, len(raw))
	}
	value := raw[0]

	switch field.Value.(type) {
	case string:
		return value, nil
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", key, value)
		}
		return n, nil
	case float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", key, value)
		}
		return f, nil
	case bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%s has unsupported type %T", key, field.Value)
	}
}

// Save writes the current settings, creating the file when it does not exist.
func Save() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}
