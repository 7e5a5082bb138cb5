package service

import "errors"

var (
	// ErrEmptyURL rejects a submission with no URL at all.
	ErrEmptyURL = errors.New("url is required")

	// ErrUnrecognizedURL rejects a URL without a supported domain marker.
	ErrUnrecognizedURL = errors.New("invalid url or page not accessible")

	// ErrNotFound reports a missing page on detail lookups.
	ErrNotFound = errors.New("page not found")
)
