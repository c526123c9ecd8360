// Package auth persists the story feed credentials in the system keyring.
package auth

import (
	"errors"

	"github.com/nimbus-cli/nimbus/constant"
	"github.com/zalando/go-keyring"
)

const user = "feed-token"

// ErrNoToken is returned when no feed token has been stored.
var ErrNoToken = errors.New("no feed token stored")

// SetToken persists the feed bearer token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(constant.Nimbus, user, token)
}

// GetToken retrieves the feed bearer token from the system keyring.
func GetToken() (string, error) {
	token, err := keyring.Get(constant.Nimbus, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	return token, err
}

// DeleteToken removes the feed bearer token from the system keyring.
func DeleteToken() error {
	err := keyring.Delete(constant.Nimbus, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNoToken
	}
	return err
}
