package interpret

import "errors"

var (
	// ErrCompleterRequired is returned when a text completer is not provided.
	ErrCompleterRequired = errors.New("text completer required")

	// ErrInvalidTimeout is returned when a non-positive timeout is configured.
	ErrInvalidTimeout = errors.New("timeout must be greater than 0")
)
