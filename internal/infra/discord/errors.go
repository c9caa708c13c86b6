package discord

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind is the classification of a failed upstream call.
type ErrorKind string

const (
	KindAuth         ErrorKind = "auth"
	KindPermission   ErrorKind = "permission"
	KindRateLimit    ErrorKind = "rate_limit"
	KindServer       ErrorKind = "server"
	KindStatus       ErrorKind = "status"
	KindConnectivity ErrorKind = "connectivity"
	KindRequest      ErrorKind = "request"
)

const connectivityMessage = "failed to reach Discord API, check network connectivity"

// APIError is the only error type returned by Client methods.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	// Code is the numeric error code from the upstream body, when present.
	Code       int
	Message    string
	RetryAfter float64
	Cause      error
}

// Label is the category prefix of the rendered message.
func (e *APIError) Label() string {
	switch e.Kind {
	case KindAuth:
		return "Discord API authentication error"
	case KindPermission:
		return "Discord API permission error"
	case KindRateLimit:
		return "Discord API rate limit"
	case KindServer:
		return "Discord API server error"
	case KindConnectivity:
		return "Discord API connection error"
	case KindRequest:
		return "Request configuration error"
	default:
		return fmt.Sprintf("Discord API error (%d)", e.StatusCode)
	}
}

func (e *APIError) fallback() string {
	switch e.Kind {
	case KindAuth:
		return "invalid token"
	case KindPermission:
		return "missing permissions"
	case KindRateLimit:
		return "too many requests"
	case KindServer:
		return "upstream server failure"
	case KindConnectivity:
		return connectivityMessage
	case KindRequest:
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return "invalid request"
	default:
		return "unknown error"
	}
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" || e.Kind == KindConnectivity {
		msg = e.fallback()
	}
	return e.Label() + ": " + msg
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

type errorBody struct {
	Message    string  `json:"message"`
	Code       int     `json:"code"`
	RetryAfter float64 `json:"retry_after"`
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindPermission
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindStatus
	}
}

// statusError classifies a non-2xx response using its decoded body.
func statusError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Kind:       kindForStatus(status),
		StatusCode: status,
	}
	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err == nil {
		apiErr.Message = strings.TrimSpace(decoded.Message)
		apiErr.Code = decoded.Code
		apiErr.RetryAfter = decoded.RetryAfter
	}
	return apiErr
}

func connectivityError(err error) *APIError {
	return &APIError{Kind: KindConnectivity, Cause: err}
}

func requestError(err error) *APIError {
	return &APIError{Kind: KindRequest, Cause: err}
}
