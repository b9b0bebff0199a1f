package service

import "errors"

// Service-level error kinds. Handlers map each onto exactly one HTTP status;
// anything not in this set is reported as an internal error without detail.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("already exists")
	ErrUnsupportedMediaType = errors.New("only PDF files are allowed")
	ErrPayloadTooLarge      = errors.New("file size exceeds limit")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrSelfDelete           = errors.New("cannot delete your own account")
)
