package errorvalues

import "errors"

var (
	ErrUnknownMood      = errors.New("mood is missing or not one of the known moods")
	ErrNoteTooLong      = errors.New("note is longer than allowed")
	ErrInvalidRange     = errors.New("range start is after range end")
	ErrStoreUnavailable = errors.New("entry store unavailable")
)
