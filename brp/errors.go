package brp

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode is a JSON-RPC error code returned by the target.
type ErrorCode int

// Standard JSON-RPC codes plus the BRP-specific range.
const (
	CodeParseError     ErrorCode = -32700
	CodeInvalidRequest ErrorCode = -32600
	CodeMethodNotFound ErrorCode = -32601
	CodeInvalidParams  ErrorCode = -32602
	CodeInternalError  ErrorCode = -32603

	CodeEntityNotFound     ErrorCode = -23401
	CodeComponentError     ErrorCode = -23402
	CodeComponentAmbiguous ErrorCode = -23403
	CodeResourceNotPresent ErrorCode = -23501
)

// Error is a JSON-RPC error object returned by the remote target.
type Error struct {
	Code    ErrorCode       `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("brp error %d: %s", e.Code, e.Message)
}

// TransportError wraps a failure to reach the target at all (connection
// refused, timeout, malformed reply). It is always non-fatal to recovery:
// the affected step is treated as unavailable.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("brp transport failure calling %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsMethodNotFound reports whether err indicates the target does not
// implement the requested method. Optional capabilities (brp_extras)
// surface this way on targets without the extras plugin.
func IsMethodNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == CodeMethodNotFound
}

// IsUnavailable reports whether err means the step could not be performed
// at all, as opposed to the target rejecting the request's content.
func IsUnavailable(err error) bool {
	var te *TransportError
	return errors.As(err, &te) || IsMethodNotFound(err)
}
