package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrEmptyFilePath = errors.New("empty file path")
	ErrDecode        = errors.New("decode response failed")
)

// Kind classifies where a call failed.
type Kind string

const (
	// KindBusiness is a 200 response whose envelope code is not 200.
	KindBusiness Kind = "business"
	// KindTransport is a response with a non-200 HTTP status.
	KindTransport Kind = "transport"
	// KindNetwork means no response was received.
	KindNetwork Kind = "network"
	// KindInvalid covers bad input and undecodable responses.
	KindInvalid Kind = "invalid"
)

// NetworkCode is the Code carried by network failures.
const NetworkCode = -1

// Error is the rejection value of every call: {code, message}.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	// Body holds the raw envelope for business errors.
	Body json.RawMessage
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind != KindBusiness && e.Kind != KindTransport {
		return fmt.Sprintf("%s error (%d): %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches ErrUnauthorized and ErrForbidden by code for envelope and HTTP failures.
func (e *Error) Is(target error) bool {
	if e.Kind != KindBusiness && e.Kind != KindTransport {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	}
	return false
}

// AsError extracts the *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
