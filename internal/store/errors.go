package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record does not exist for the
	// given owner. Callers generally degrade to an empty state.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned on user creation when the email is
	// already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Substrings that identify a missing-index failure on an ordered or
// composite query. Detection is by message match because the driver
// offers no structured class for it.
var missingIndexMarkers = []string{
	"no such index",
	"requires an index",
}

// IsMissingIndex reports whether err indicates the backing store needs
// an index to serve an ordered/composite query. These failures get an
// operator remediation hint instead of a generic error.
func IsMissingIndex(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range missingIndexMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// MissingIndexHint is the remediation message surfaced to operators
// (not end users) when IsMissingIndex matches.
const MissingIndexHint = "the backing store requires an index for this query; create the index named in the error and retry"
