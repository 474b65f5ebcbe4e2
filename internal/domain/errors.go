package domain

import "errors"

// Error kinds returned by the stores, the session binder and the services.
// Callers classify them with errors.Is.
var (
	ErrDuplicateName   = errors.New("name already taken")
	ErrAuthFailed      = errors.New("invalid name or credential")
	ErrUnauthenticated = errors.New("authorization required")
	ErrPostNotFound    = errors.New("post not found")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrUnknownAuthor   = errors.New("unknown author")
	ErrInvalidInput    = errors.New("name and credential required")
)
