package remote

import (
	"fmt"

	"m8remote/key"
)

// RPCError is a JSON-RPC error object returned by the host.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("rpc error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ReleaseError reports a release send that failed after a held action. The
// keys in Mask may be stuck down on the host until another release reaches
// it. Action carries the held action's own error when there was one; it is
// the primary cause, the release failure is secondary.
type ReleaseError struct {
	Mask   key.Mask
	Action error
	Err    error
}

// Error implements the error interface.
func (e *ReleaseError) Error() string {
	if e.Action != nil {
		return fmt.Sprintf("%v (release of %s also failed, keys may be stuck: %v)", e.Action, e.Mask, e.Err)
	}
	return fmt.Sprintf("release of %s failed, keys may be stuck: %v", e.Mask, e.Err)
}

// Unwrap exposes the action error first so errors.Is/As reach the primary
// cause, then the release transport failure.
func (e *ReleaseError) Unwrap() []error {
	if e.Action != nil {
		return []error{e.Action, e.Err}
	}
	return []error{e.Err}
}
