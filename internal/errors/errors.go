// Package errors provides structured error types for the kavosh client.
// These errors record what operation failed and which part of the error
// taxonomy (validation, transport, server) the failure belongs to.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindServer
	KindConfig
	KindClipboard
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindServer:
		return "server error"
	case KindConfig:
		return "configuration error"
	case KindClipboard:
		return "clipboard error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for kavosh.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context

	// Status and Detail are only set for KindServer errors.
	Status int
	Detail string
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// As is errors.As, re-exported so callers need not import both packages.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Detail returns the server-supplied detail carried by err, or "" when the
// server did not send one (or err is not a server error at all).
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindServer {
		return e.Detail
	}
	return ""
}

// Status returns the HTTP status carried by a server error, or 0.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindServer {
		return e.Status
	}
	return 0
}

// Server builds a KindServer error for a non-2xx backend response.
func Server(op Op, status int, detail string) error {
	return &Error{
		Op:     op,
		Kind:   KindServer,
		Err:    fmt.Errorf("backend responded with HTTP %d", status),
		Status: status,
		Detail: detail,
	}
}

// Validation errors
func EmptyQuery() error {
	return E(Op("search.Submit"), KindInvalid, "query is empty")
}

func FieldRequired(op Op, field string) error {
	return E(op, KindInvalid, fmt.Sprintf("%s is required", field))
}

// Transport errors
func Unreachable(op Op, err error) error {
	return E(op, KindNetwork, "backend unreachable", err)
}

func MalformedResponse(op Op, err error) error {
	return E(op, KindNetwork, "malformed response body", err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Clipboard errors
func ClipboardFailed(err error) error {
	return E(Op("clipboard.WriteText"), KindClipboard, err)
}
