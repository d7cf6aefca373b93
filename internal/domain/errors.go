package domain

import "errors"

var (
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("not found")
	// ErrPostNotFound signals a link that is not part of the current batch.
	ErrPostNotFound = errors.New("post not found")
	// ErrInvalidQuery signals a malformed search or ranking request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidDate signals a date value that cannot be interpreted as a timestamp.
	ErrInvalidDate = errors.New("invalid date")
	// ErrCatalogEmpty signals that no content batch has been loaded yet.
	ErrCatalogEmpty = errors.New("catalog is empty")
)
