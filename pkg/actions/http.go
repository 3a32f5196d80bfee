// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// runRequest is the wire shape sent to the action runner.
type runRequest struct {
	ActionID       string `json:"action_id"`
	Input          string `json:"input"`
	Configurations string `json:"configurations"`
}

// runResult is the wire shape returned by the action runner. The result is a
// JSON-encoded string, mirroring the runner's input-json convention.
type runResult struct {
	Result string `json:"result"`
}

// HTTPBackend executes actions against an HTTP action runner.
type HTTPBackend struct {
	httpClient *http.Client
	runnerURL  string
	apiKey     string
}

// NewHTTPBackend creates a backend targeting the given runner URL. The apiKey
// is sent as a bearer token when non-empty.
func NewHTTPBackend(runnerURL, apiKey string, timeout time.Duration) *HTTPBackend {
	return &HTTPBackend{
		httpClient: &http.Client{Timeout: timeout},
		runnerURL:  runnerURL,
		apiKey:     apiKey,
	}
}

// Run implements Backend.
func (b *HTTPBackend) Run(ctx context.Context, actionID string, input json.RawMessage) (json.RawMessage, error) {
	body, err := json.Marshal(runRequest{
		ActionID:       actionID,
		Input:          string(input),
		Configurations: "{}",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal run request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.runnerURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	httpResp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusForbidden {
		return nil, ErrForbidden
	}
	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("http status %d: %s", httpResp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result runResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal run result: %w", err)
	}

	return json.RawMessage(result.Result), nil
}
