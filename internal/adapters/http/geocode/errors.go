package geocode

import (
	"errors"
	"strconv"
)

var (
	// ErrMissingCoordinates is returned when latitude or longitude is zero.
	ErrMissingCoordinates = errors.New("latitude and longitude are required")
	// ErrMissingKey is returned when no API key is configured.
	ErrMissingKey = errors.New("geocode key is not configured")
	// ErrStatus wraps a non-200 HTTP status.
	ErrStatus = errors.New("geocode http status")
	// ErrNetwork wraps a failed round trip.
	ErrNetwork = errors.New("geocode request failed")
)

// APIError is a provider reply with a non-zero status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "address lookup failed: status " + strconv.Itoa(e.Status)
}
