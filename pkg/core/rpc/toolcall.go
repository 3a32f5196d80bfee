// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bettyblocks/mcp-gateway/pkg/actions"
	"github.com/bettyblocks/mcp-gateway/pkg/core/schema"
	"github.com/bettyblocks/mcp-gateway/pkg/core/validate"
)

// handleCallTool resolves the named tool, validates the supplied arguments
// against its input schema and forwards the call to the action backend. The
// backend's output is translated into content blocks; backend failures become
// error text blocks rather than protocol errors.
func (p *Processor) handleCallTool(ctx context.Context, params json.RawMessage, serverConfig *schema.ServerConfig) (any, error) {
	var callParams schema.CallToolParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, fmt.Errorf("Invalid tool call parameters: %v", err)
	}
	if callParams.Name == "" {
		return nil, fmt.Errorf("Invalid tool call parameters: missing tool name")
	}

	tool, ok := serverConfig.FindTool(callParams.Name)
	if !ok {
		return nil, fmt.Errorf("Tool '%s' not found", callParams.Name)
	}

	if callParams.Arguments != nil {
		if err := validate.Arguments(callParams.Arguments, tool.InputSchema); err != nil {
			return nil, err
		}
	}

	p.logger.Info("executing tool",
		"tool", tool.Name,
		"action_id", tool.ActionID)

	actionResp, err := actions.Execute(ctx, p.backend, tool.ActionID, callParams.Arguments)
	if err != nil {
		return nil, err
	}

	return schema.CallToolResult{
		Content: actions.ParseOutput(actionResp),
		IsError: false,
	}, nil
}
