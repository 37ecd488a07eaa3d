// Package mcp exposes the engine's operations as MCP tools over stdio,
// mirroring the CLI's command surface for AI clients (Claude Code, Cursor).
package mcp

import (
	"errors"
	"fmt"

	boogererrors "github.com/CryptArtificer/booger/internal/errors"
)

// JSON-RPC and booger-specific MCP error codes.
const (
	ErrCodeNotFound       = -32001
	ErrCodeStoreIntegrity = -32002
	ErrCodeExternal       = -32003
	ErrCodeParse          = -32004

	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts an engine error into an MCP error, preserving the
// structured Kind where one is available.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var e *boogererrors.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case boogererrors.KindNotFound:
			return &MCPError{Code: ErrCodeNotFound, Message: e.Message}
		case boogererrors.KindInvalidQuery:
			return &MCPError{Code: ErrCodeInvalidParams, Message: e.Message}
		case boogererrors.KindStoreIntegrity:
			return &MCPError{Code: ErrCodeStoreIntegrity, Message: e.Message}
		case boogererrors.KindParse:
			return &MCPError{Code: ErrCodeParse, Message: e.Message}
		case boogererrors.KindExternal:
			return &MCPError{Code: ErrCodeExternal, Message: e.Message}
		default:
			return &MCPError{Code: ErrCodeInternalError, Message: e.Message}
		}
	}

	return &MCPError{Code: ErrCodeInternalError, Message: err.Error()}
}

// NewInvalidParamsError creates an error for invalid tool input.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}
