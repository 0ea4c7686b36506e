// Package gql serves GraphQL requests over HTTP.
package gql

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/abgdnv/inventory/pkg/web"
	"github.com/graph-gophers/graphql-go"
)

// Request is the JSON body of a GraphQL call.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Handler struct {
	schema       *graphql.Schema
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewHandler creates a handler executing requests against schema.
// Bodies larger than maxBodyBytes are rejected.
func NewHandler(schema *graphql.Schema, maxBodyBytes int64, log *slog.Logger) *Handler {
	return &Handler{
		schema:       schema,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.Component(log, "graphql"),
	}
}

// ServeHTTP decodes the request, executes it and responds with {data, errors}.
// Query errors are part of a 200 response; an undecodable body is a 500.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Error decoding GraphQL request body", "error", err)
		web.RespondInternalError(w, h.logger)
		return
	}
	h.logger.DebugContext(r.Context(), "Executing GraphQL request", "operation", req.OperationName)
	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		h.logger.WarnContext(r.Context(), "GraphQL request completed with errors", "operation", req.OperationName, "errors", len(resp.Errors))
	}
	web.RespondJSON(w, h.logger, http.StatusOK, resp)
}
