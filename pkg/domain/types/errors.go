package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrMarkerNotFound is returned when no tag matches the release marker
	// substring. This is fatal: without a marker there is no release window.
	ErrMarkerNotFound = goerr.New("release marker tag not found")

	// ErrQueryFailed wraps failures of the repository query API.
	ErrQueryFailed = goerr.New("repository query failed")
)
