package domain

import "errors"

var ErrAlbumNotFound = errors.New("album not found")

// ErrNoMatches is returned by search when the filter matches nothing.
var ErrNoMatches = errors.New("no matching items found")

// ValidationError marks a client-input failure; handlers map it to 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
