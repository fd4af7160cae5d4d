package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrFetchFailed covers transport errors, non-200 statuses and undecodable bodies.
	ErrFetchFailed = errors.New("fetch failed")
)
