// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpc implements the JSON-RPC request pipeline: envelope parsing,
// method dispatch, tool-call execution and response construction. Every
// failure mode produces a well-formed error envelope; nothing in this package
// panics on caller input.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bettyblocks/mcp-gateway/pkg/actions"
	"github.com/bettyblocks/mcp-gateway/pkg/configstore"
	"github.com/bettyblocks/mcp-gateway/pkg/core/schema"
	"github.com/bettyblocks/mcp-gateway/pkg/observability/logging"
)

// Processor runs the request pipeline for one server identity at a time. It
// holds no per-request state: server configuration is loaded fresh on every
// call, so concurrent requests are independent.
type Processor struct {
	store   configstore.Store
	backend actions.Backend
	logger  *logging.Logger
}

// New creates a Processor.
func New(store configstore.Store, backend actions.Backend, logger *logging.Logger) *Processor {
	return &Processor{store: store, backend: backend, logger: logger}
}

// Process handles one raw JSON-RPC request body for the given server identity
// and returns a marshalable response envelope, success or error. It never
// returns an unhandled fault.
func (p *Processor) Process(ctx context.Context, serverID string, body []byte) any {
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return errorOrFallback(nil, schema.CodeParseError,
			fmt.Sprintf("Invalid JSON-RPC request: %v", err))
	}

	// Best-effort id extraction so shape errors can still be correlated.
	id := extractID(body)

	var req schema.JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return errorOrFallback(id, schema.CodeInvalidRequest,
			fmt.Sprintf("Invalid JSON-RPC request: %v", err))
	}
	if !validRequestID(req.ID) {
		return errorOrFallback(id, schema.CodeInvalidRequest,
			"Invalid Request: id must be a string, number or null")
	}
	if req.JSONRPC != schema.JSONRPCVersion {
		return errorOrFallback(id, schema.CodeInvalidRequest,
			"Invalid Request: jsonrpc must be '2.0'")
	}

	params := req.Params
	if params == nil {
		params = json.RawMessage("{}")
	}

	serverConfig, err := configstore.LoadServerConfig(ctx, p.store, serverID)
	if err != nil {
		p.logger.Error("failed to load server config", "server_id", serverID, "error", err)
		return errorOrFallback(id, schema.CodeServerError,
			fmt.Sprintf("Failed to load server config: %v", err))
	}

	p.logger.Debug("dispatching request", "server_id", serverID, "method", req.Method)

	var result any
	switch req.Method {
	case "initialize":
		result, err = p.handleInitialize(params)
	case "tools/list":
		result, err = p.handleListTools(serverConfig)
	case "tools/call":
		result, err = p.handleCallTool(ctx, params, serverConfig)
	default:
		return errorOrFallback(id, schema.CodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method))
	}
	if err != nil {
		return errorOrFallback(id, schema.CodeServerError, err.Error())
	}

	resp, err := successResponse(id, result)
	if err != nil {
		return errorOrFallback(id, schema.CodeInternalError,
			fmt.Sprintf("Failed to build response: %v", err))
	}
	return resp
}

// handleInitialize echoes the requested protocol version and capabilities and
// reports static server info. Malformed params fall back to defaults.
func (p *Processor) handleInitialize(params json.RawMessage) (any, error) {
	var parsed struct {
		ProtocolVersion string         `json:"protocolVersion"`
		Capabilities    map[string]any `json:"capabilities"`
	}
	_ = json.Unmarshal(params, &parsed)

	if parsed.ProtocolVersion == "" {
		parsed.ProtocolVersion = schema.LatestProtocolVersion
	}
	if parsed.Capabilities == nil {
		parsed.Capabilities = map[string]any{}
	}

	return schema.InitializeResult{
		ProtocolVersion: parsed.ProtocolVersion,
		Capabilities:    parsed.Capabilities,
		ServerInfo: schema.ServerInfo{
			Name:    "betty-mcp-server",
			Version: "0.1.0",
		},
	}, nil
}

// handleListTools maps the server's tool definitions to their public shape,
// stripping the action mapping identifiers.
func (p *Processor) handleListTools(serverConfig *schema.ServerConfig) (any, error) {
	tools := make([]schema.Tool, 0, len(serverConfig.Tools))
	for _, t := range serverConfig.Tools {
		tools = append(tools, t.Public())
	}
	return schema.ListToolsResult{Tools: tools}, nil
}

// extractID pulls the raw id field out of a request body without decoding the
// rest of it. Returns nil when the body is not an object or carries no id.
func extractID(body []byte) json.RawMessage {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil
	}
	return probe.ID
}

// validRequestID reports whether a raw id is a string, number or null.
// Absent (nil) ids are allowed and echoed back as null.
func validRequestID(id json.RawMessage) bool {
	if id == nil {
		return true
	}
	var v any
	if err := json.Unmarshal(id, &v); err != nil {
		return false
	}
	switch v.(type) {
	case string, float64, nil:
		return true
	default:
		return false
	}
}
