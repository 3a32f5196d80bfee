// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettyblocks/mcp-gateway/pkg/auth"
	"github.com/bettyblocks/mcp-gateway/pkg/configstore/memory"
	"github.com/bettyblocks/mcp-gateway/pkg/core/rpc"
	"github.com/bettyblocks/mcp-gateway/pkg/observability/logging"
)

type okBackend struct{}

func (okBackend) Run(ctx context.Context, actionID string, input json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{"text": "done"}`), nil
}

func newTestHandler(t *testing.T, validator auth.Validator) *Handler {
	t.Helper()
	store := memory.New()
	memory.SeedSample(store)
	processor := rpc.New(store, okBackend{}, logging.Discard())
	if validator == nil {
		validator = auth.NoopValidator{}
	}
	return New(processor, validator, logging.Discard())
}

func doRequest(h *Handler, method, path, contentType, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Health(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := doRequest(h, http.MethodGet, "/health", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UnmatchedRouteIs405(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/mcp/weather-server-001"},
		{http.MethodPost, "/other"},
		{http.MethodDelete, "/"},
	} {
		rec := doRequest(h, tc.method, tc.path, "application/json", "{}", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestHandler_RequiresJSONContentType(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := doRequest(h, http.MethodPost, "/mcp/weather-server-001", "text/plain", "{}", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Content-Type must be application/json")
}

func TestHandler_RejectsBadCredentials(t *testing.T) {
	validator := auth.NewJWTValidator([]byte("secret"))
	h := newTestHandler(t, validator)

	rec := doRequest(h, http.MethodPost, "/mcp/weather-server-001", "application/json",
		`{"jsonrpc": "2.0", "method": "tools/list", "id": 1}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_AcceptsValidToken(t *testing.T) {
	validator := auth.NewJWTValidator([]byte("secret"))
	h := newTestHandler(t, validator)

	token, err := validator.Generate("tester", time.Hour)
	require.NoError(t, err)

	rec := doRequest(h, http.MethodPost, "/mcp/weather-server-001", "application/json",
		`{"jsonrpc": "2.0", "method": "tools/list", "id": 1}`,
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_ProtocolErrorsAre200(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(h, http.MethodPost, "/mcp/weather-server-001", "application/json", "{", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "protocol-level errors travel inside the envelope")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	errObj := resp["error"].(map[string]any)
	assert.Equal(t, float64(-32700), errObj["code"])
}

func TestHandler_ToolCallEndToEnd(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(h, http.MethodPost, "/mcp/weather-server-001", "application/json",
		`{"jsonrpc": "2.0", "method": "tools/call", "id": "e2e",
		  "params": {"name": "get_weather", "arguments": {"location": "Amsterdam"}}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "e2e", resp["id"])

	result := resp["result"].(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "done", content[0].(map[string]any)["text"])
}

func TestHandler_ContentTypeWithCharset(t *testing.T) {
	h := newTestHandler(t, nil)
	rec := doRequest(h, http.MethodPost, "/mcp/weather-server-001",
		"application/json; charset=utf-8",
		`{"jsonrpc": "2.0", "method": "tools/list", "id": 1}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
