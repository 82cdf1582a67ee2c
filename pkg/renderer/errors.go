package renderer

import "errors"

var (
	// ErrUnknownRenderer is returned by New for an unregistered renderer type
	ErrUnknownRenderer = errors.New("renderer: unknown type")
	// ErrInvalidConfig wraps every configuration problem found by Initialize
	ErrInvalidConfig = errors.New("renderer: invalid configuration")
	// ErrNotInitialized is returned when Render is called before Initialize succeeded
	ErrNotInitialized = errors.New("renderer: not initialized")
	// ErrNoContribution is returned when no path of the requested length carries energy
	ErrNoContribution = errors.New("renderer: no path with non-zero contribution")
)
