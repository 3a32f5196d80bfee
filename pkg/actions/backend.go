// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package actions defines the action-execution backend the gateway forwards
// tool calls to, and the translation of its output into content blocks.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrForbidden is reported by a Backend when the caller lacks permission to
// run the requested action.
var ErrForbidden = errors.New("action forbidden")

// Backend executes an action by its mapping identifier. The input is the
// JSON-encoded argument bag, or JSON null when the caller supplied no
// arguments. The call is blocking; implementations own any internal
// concurrency, retries or transport concerns.
type Backend interface {
	Run(ctx context.Context, actionID string, input json.RawMessage) (json.RawMessage, error)
}

// Response is the normalized outcome of one action invocation.
type Response struct {
	Success bool
	Data    any
	Error   string
}

// Execute runs the mapped action and normalizes the outcome. Backend failures
// are folded into an unsuccessful Response rather than returned as errors, so
// the caller always gets something to translate into content.
func Execute(ctx context.Context, backend Backend, actionID string, args map[string]any) (*Response, error) {
	input, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize arguments: %w", err)
	}

	output, err := backend.Run(ctx, actionID, input)
	if err != nil {
		msg := fmt.Sprintf("Action execution failed: %v", err)
		if errors.Is(err, ErrForbidden) {
			msg = "Action forbidden: insufficient permissions"
		}
		return &Response{Success: false, Error: msg}, nil
	}

	// The backend result is expected to be JSON; anything unparsable is
	// treated as an absent payload.
	var data any
	if err := json.Unmarshal(output, &data); err != nil {
		data = nil
	}
	return &Response{Success: true, Data: data}, nil
}
