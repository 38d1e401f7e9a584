package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the resolution engine's failure taxonomy. Validation
// failures are rejected before any lookup; not-found is terminal only after
// every fallback strategy is exhausted; upstream-fetch and persistence
// failures are recorded and recovered from, never surfaced on their own.
const (
	CodeValidation    = "validation_error"
	CodeNotFound      = "not_found"
	CodeUpstreamFetch = "upstream_fetch"
	CodePersistence   = "persistence"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NewValidation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func NewNotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func NewUpstreamFetch(err error) *Error {
	return New(http.StatusBadGateway, CodeUpstreamFetch, err)
}

func NewPersistence(err error) *Error {
	return New(http.StatusInternalServerError, CodePersistence, err)
}

func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return Code(err) == CodeNotFound
}
