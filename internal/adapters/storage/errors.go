package storage

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNotFound    = errors.New("key not found")
	ErrOpen        = errors.New("open storage failed")
	ErrClosed      = errors.New("storage closed")
	ErrNoSession   = errors.New("no session")
	ErrOpaqueToken = errors.New("token is not a JWT")
)

// IsNotFound reports whether err means a missing key.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
