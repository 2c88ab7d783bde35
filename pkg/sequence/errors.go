package sequence

import "errors"

var (
	// ErrZeroRatio is returned when a geometric progression is created with
	// a zero ratio, which has no inverse step.
	ErrZeroRatio = errors.New("geometric ratio must be non-zero")

	// ErrUnknownFamily is returned by the factory for unregistered names.
	ErrUnknownFamily = errors.New("unknown sequence family")
)
