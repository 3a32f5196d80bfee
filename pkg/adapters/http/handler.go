// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package http is the transport edge of the gateway: it routes
// POST /mcp/{server} requests through authentication into the RPC pipeline
// and maps pre-protocol failures to plain HTTP statuses.
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/bettyblocks/mcp-gateway/pkg/auth"
	"github.com/bettyblocks/mcp-gateway/pkg/core/rpc"
	"github.com/bettyblocks/mcp-gateway/pkg/core/schema"
	"github.com/bettyblocks/mcp-gateway/pkg/observability/logging"
)

// maxBodySize caps inbound request bodies at 4MB.
const maxBodySize = 4 << 20

// Handler implements the HTTP adapter.
type Handler struct {
	processor *rpc.Processor
	validator auth.Validator
	logger    *logging.Logger
	mux       *http.ServeMux
}

// New creates a new HTTP handler.
func New(processor *rpc.Processor, validator auth.Validator, logger *logging.Logger) *Handler {
	h := &Handler{
		processor: processor,
		validator: validator,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("POST /mcp/{server}", h.handleMCP)
	h.mux.HandleFunc("/", h.handleNotAllowed)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// handleNotAllowed catches every unmatched route and method.
func (h *Handler) handleNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusMethodNotAllowed,
		"Method Not Allowed. Expected POST /mcp/{server-id}")
}

// handleMCP runs one JSON-RPC request through the pipeline. Failures before
// the protocol layer (bad content type, rejected credentials, unreadable
// body) are reported as plain HTTP statuses; everything after is a 200 with a
// protocol-level envelope.
func (h *Handler) handleMCP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With("request_id", requestID)

	serverID := r.PathValue("server")
	if serverID == "" {
		h.writeError(w, http.StatusBadRequest,
			"Server ID cannot be empty. Expected /mcp/{server-id}")
		return
	}

	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		h.writeError(w, http.StatusBadRequest, "Content-Type must be application/json")
		return
	}

	if err := h.validator.Validate(r.Header); err != nil {
		logger.Warn("authentication rejected", "server_id", serverID, "error", err)
		h.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		logger.Error("failed to read request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	logger.Info("processing request", "server_id", serverID, "bytes", len(body))

	resp := h.processor.Process(r.Context(), serverID, body)

	respBody, err := json.Marshal(resp)
	if err != nil {
		// The pipeline's fallback envelope is built from literals, so this
		// only triggers if that guarantee is broken.
		logger.Error("failed to serialize response", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(respBody)
}

// writeError emits a JSON-RPC-shaped error body for failures that happen
// outside the protocol envelope.
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": schema.JSONRPCVersion,
		"id":      nil,
		"error": map[string]any{
			"code":    schema.CodeServerError,
			"message": message,
		},
	})
}
