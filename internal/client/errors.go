package client

import (
	"errors"
	"net/http"
)

// Kind classifies why an API call failed.
type Kind string

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork Kind = "network"
	// KindUnauthorized covers 401 and 403 responses.
	KindUnauthorized Kind = "unauthorized"
	// KindValidation covers every other 4xx response.
	KindValidation Kind = "validation"
	// KindServer covers 5xx and any other unexpected status.
	KindServer Kind = "server"
	// KindDecode means a 2xx response carried a body that was not valid JSON
	// for the expected shape.
	KindDecode Kind = "decode"
)

// Error is returned by every Client method. Its message is the flat
// per-operation text ("failed to fetch applications"). Kind and Status tell
// failures apart.
type Error struct {
	Op     string
	Kind   Kind
	Status int
	Err    error
}

func (e *Error) Error() string {
	return e.Op
}

// Unwrap returns the transport or decode error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" when err is not a client error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a client error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindUnauthorized
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindServer
	}
}
