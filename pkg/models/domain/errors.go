package domain

import "errors"

var (
	// ErrUnsupportedPlatform is returned for platform names outside of
	// aws, azure, google and kubernetes.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrAccountNotFound is returned when the account listing has no entry
	// whose name matches the requested account.
	ErrAccountNotFound = errors.New("account name not found")
)
