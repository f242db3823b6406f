package mcpserver

import (
	"errors"
	"fmt"

	"github.com/cortexast/cortexast/internal/cerrors"
)

// JSON-RPC error codes CortexAST maps its own error kinds onto. The
// standard codes mirror the JSON-RPC 2.0 spec; the rest are reserved in
// the -32000 to -32099 server-defined range.
const (
	CodeNotFound        = -32001
	CodeResourceGuard   = -32002
	CodeParseFailure    = -32003
	CodeIndexCorruption = -32004
	CodeInvalidParams   = -32602
	CodeInternalError   = -32603
)

// MCPError is the error shape returned to an MCP client.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts an engine error into an MCPError, preserving a
// *cerrors.CortexError's suggestion in the message the way the teacher's
// mapAmanError appends its Suggestion field.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var ce *cerrors.CortexError
	if errors.As(err, &ce) {
		return mapCortexError(ce)
	}

	return &MCPError{Code: CodeInternalError, Message: err.Error()}
}

func mapCortexError(ce *cerrors.CortexError) *MCPError {
	message := ce.Message
	if ce.Suggestion != "" {
		message = fmt.Sprintf("%s %s", ce.Message, ce.Suggestion)
	}

	switch ce.Kind {
	case cerrors.KindNotFound:
		return &MCPError{Code: CodeNotFound, Message: message}
	case cerrors.KindResourceGuard:
		return &MCPError{Code: CodeResourceGuard, Message: message}
	case cerrors.KindParseFailure:
		return &MCPError{Code: CodeParseFailure, Message: message}
	case cerrors.KindIndexCorruption:
		return &MCPError{Code: CodeIndexCorruption, Message: message}
	case cerrors.KindInvalidAction, cerrors.KindConfig:
		return &MCPError{Code: CodeInvalidParams, Message: message}
	default:
		return &MCPError{Code: CodeInternalError, Message: message}
	}
}
