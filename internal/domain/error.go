package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure surfaced to the host protocol.
type ErrorCode string

const (
	// CodeInvalidRequest marks a configuration failure, such as a missing credential.
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// CodeMethodNotFound marks a dispatch for a tool that is not registered.
	CodeMethodNotFound ErrorCode = "METHOD_NOT_FOUND"
	// CodeInvalidParams marks arguments rejected by a tool's input contract.
	CodeInvalidParams ErrorCode = "INVALID_PARAMS"
	// CodeInternal marks every other failure.
	CodeInternal ErrorCode = "INTERNAL"
)

var (
	ErrMissingToken  = errors.New("DISCORD_TOKEN environment variable is not set")
	ErrToolNotFound  = errors.New("tool not found")
	ErrInvalidParams = errors.New("invalid params")
	ErrDuplicateTool = errors.New("duplicate tool name")
)

type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return msg
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	switch {
	case errors.Is(err, ErrMissingToken):
		return CodeInvalidRequest, true
	case errors.Is(err, ErrToolNotFound):
		return CodeMethodNotFound, true
	case errors.Is(err, ErrInvalidParams):
		return CodeInvalidParams, true
	default:
		return "", false
	}
}
