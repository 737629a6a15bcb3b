package core

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate normalizes the heterogeneous date representations the store
// may hold (RFC 3339 timestamps, plain YYYY-MM-DD strings, unix seconds)
// to a single UTC instant. It is invoked once, at the data-access
// boundary; everything above it operates on time.Time only.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

// SameMonth reports whether t falls in the given calendar month and year.
func SameMonth(t time.Time, month time.Month, year int) bool {
	return t.Month() == month && t.Year() == year
}
