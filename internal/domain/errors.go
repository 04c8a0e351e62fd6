package domain

import (
	"context"
	"errors"
	"strings"
)

var ErrKeyNotFound = errors.New("durable key not found")

type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidCommand     ErrorKind = "invalid_command"
	KindPreconditionFailed ErrorKind = "precondition_failed"
	KindTimeout            ErrorKind = "timeout"
	KindNetworkOrServer    ErrorKind = "network_or_server"
)

// Kind sentinels, matched with errors.Is against any *Error of that kind.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCommand     = errors.New("invalid command")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrTimeout            = errors.New("timeout")
	ErrNetworkOrServer    = errors.New("network or server error")
)

var kindSentinels = map[ErrorKind]error{
	KindValidation:         ErrValidation,
	KindUnauthorized:       ErrUnauthorized,
	KindNotFound:           ErrNotFound,
	KindInvalidCommand:     ErrInvalidCommand,
	KindPreconditionFailed: ErrPreconditionFailed,
	KindTimeout:            ErrTimeout,
	KindNetworkOrServer:    ErrNetworkOrServer,
}

type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	// Status is the HTTP status that produced the error, zero for local failures.
	Status int
	Cause  error
}

func NewError(kind ErrorKind, op string, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func (e *Error) Error() string {
	message := e.Message
	if message == "" {
		if sentinel, ok := kindSentinels[e.Kind]; ok {
			message = sentinel.Error()
		}
	}
	if e.Op == "" {
		return message
	}

	return e.Op + ": " + message
}

func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf classifies err; nil yields the empty kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}

	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return KindValidation
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	return KindNetworkOrServer
}

type FieldError struct {
	Field   string
	Message string
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fieldErr := range v {
		parts = append(parts, fieldErr.Field+": "+fieldErr.Message)
	}

	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (v ValidationErrors) Field(name string) string {
	for _, fieldErr := range v {
		if fieldErr.Field == name {
			return fieldErr.Message
		}
	}

	return ""
}

func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}

	return v
}
