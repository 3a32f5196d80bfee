// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/bettyblocks/mcp-gateway/pkg/core/schema"
)

// successResponse builds a success envelope from an identifier and a result
// value. Serializing the result is the fallible part; a result that does not
// serialize is reported so the caller can emit an internal error instead.
func successResponse(id json.RawMessage, result any) (schema.JSONRPCResponse, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return schema.JSONRPCResponse{}, fmt.Errorf("result does not serialize: %w", err)
	}
	return schema.JSONRPCResponse{
		JSONRPC: schema.JSONRPCVersion,
		ID:      id,
		Result:  raw,
	}, nil
}

// errorResponse builds an error envelope. The identifier is echoed verbatim,
// so it must itself be valid JSON; best-effort id extraction can hand us
// garbage and that must not poison the envelope.
func errorResponse(id json.RawMessage, code int, message string) (schema.JSONRPCErrorResponse, error) {
	if id != nil && !json.Valid(id) {
		return schema.JSONRPCErrorResponse{}, fmt.Errorf("request id is not valid JSON")
	}
	return schema.JSONRPCErrorResponse{
		JSONRPC: schema.JSONRPCVersion,
		ID:      id,
		Error:   schema.JSONRPCError{Code: code, Message: message},
	}, nil
}

// errorOrFallback builds an error envelope, degrading to the minimal
// hand-assembled form when normal construction fails. The fallback uses only
// primitive literals so it can never fail itself.
func errorOrFallback(id json.RawMessage, code int, message string) any {
	resp, err := errorResponse(id, code, message)
	if err == nil {
		return resp
	}
	return fallbackError(code, message)
}

// fallbackError is the envelope of last resort: literal fields only, id
// pinned to null.
func fallbackError(code int, message string) map[string]any {
	return map[string]any{
		"jsonrpc": schema.JSONRPCVersion,
		"id":      nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	}
}
