package fetch

import (
	"errors"
	"fmt"
)

var (
	ErrQuotaExceeded = errors.New("quota exceeded")
	ErrNoCredentials = errors.New("no credentials available")
	ErrInvalidInput  = errors.New("invalid input")
)

// SourceError wraps any non-quota failure reported while fetching a channel.
type SourceError struct {
	Channel string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source error for channel %s: %v", e.Channel, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
