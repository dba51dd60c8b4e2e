package profile

import "errors"

var (
	// ErrDuplicatePair is returned when a pair with the same URL and title already exists.
	ErrDuplicatePair = errors.New("profile: pair already exists")

	// ErrTitleCollision is returned when a different pair already owns the title.
	ErrTitleCollision = errors.New("profile: title already in use")

	// ErrNotFound is returned when a pair reference does not match the stored pair.
	ErrNotFound = errors.New("profile: pair not found")

	// ErrNothingFound is returned when a search produces no results.
	ErrNothingFound = errors.New("profile: nothing found")

	// ErrEmptyURL is returned when a pair is added without a URL.
	ErrEmptyURL = errors.New("profile: url cannot be empty")
)
