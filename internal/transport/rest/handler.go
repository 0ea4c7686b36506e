// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/internal/database"
	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/service"
	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/abgdnv/inventory/pkg/web"
	"github.com/go-chi/chi/v5"
)

// ReadinessChecker reports the state of the store connection.
type ReadinessChecker interface {
	State() database.State
}

type Handler struct {
	service   service.ProductService
	readiness ReadinessChecker
	logger    *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, readiness ReadinessChecker, log *slog.Logger) *Handler {
	return &Handler{
		service:   service,
		readiness: readiness,
		logger:    logger.Component(log, "rest"),
	}
}

// FindAll responds with every product.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondInternalError(w, h.logger)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

// FindByID responds with a single product.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, perrors.ErrInvalidID) {
			h.logger.WarnContext(r.Context(), "Invalid product ID", "ID", id)
			web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid product ID")
			return
		}
		h.logger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondInternalError(w, h.logger)
		return
	}
	if found == nil {
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondError(w, h.logger, http.StatusNotFound, "Product not found")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

// HealthCheck is a simple liveness endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ReadinessCheck answers 200 while the store connection is up, 503 otherwise.
func (h *Handler) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	state := h.readiness.State()
	status := http.StatusOK
	if state != database.Connected {
		status = http.StatusServiceUnavailable
	}
	web.RespondJSON(w, h.logger, status, map[string]string{"database": state.String()})
}
