// Package storage persists the client's local key/value state (token, profile, caches).
package storage

import "context"

// Well-known keys shared with the mini-program.
const (
	KeyToken         = "userToken"
	KeyUserInfo      = "userInfo"
	KeyScheduleCache = "schedule_data_cache"
)

// Storage provides read/write access to local client state.
type Storage interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes keys. Missing keys are ignored.
	Remove(ctx context.Context, keys ...string) error
}

// Lookup returns the value for key, treating a missing key as empty.
func Lookup(ctx context.Context, s Storage, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}
