// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "encoding/json"

// JSONRPCVersion is the only protocol tag accepted in request envelopes.
const JSONRPCVersion = "2.0"

// LatestProtocolVersion is echoed by "initialize" when the client does not
// request a specific version.
const LatestProtocolVersion = "2025-06-18"

// JSON-RPC 2.0 error codes used by the gateway.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
	CodeServerError    = -32000
)

// JSONRPCRequest is a JSON-RPC 2.0 request envelope. The ID is kept raw so
// string, number and explicit null identifiers are echoed back verbatim.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	ID      json.RawMessage `json:"id,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse is a JSON-RPC 2.0 success envelope. A nil ID marshals as
// null, which is the required encoding for requests that carried no id.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
}

// JSONRPCErrorResponse is a JSON-RPC 2.0 error envelope.
type JSONRPCErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   JSONRPCError    `json:"error"`
}

// JSONRPCError is the error object inside an error envelope.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ServerInfo identifies the gateway in "initialize" responses.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the result of the "initialize" method.
type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}
