package worksite

import "errors"

// Work-site domain errors
var (
	// ErrWorkSiteNotFound covers unknown ids and unknown or inactive
	// check-in tokens. Callers cannot tell a wrong token from a
	// deactivated site.
	ErrWorkSiteNotFound = errors.New("work site not found")
)
