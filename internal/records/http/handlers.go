// Package recordshttp exposes the record-entry endpoints.
package recordshttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
	"github.com/tradepulse/tradepulse/internal/records"
	"github.com/tradepulse/tradepulse/internal/store"
)

// Service is the record-entry contract used by the handler.
type Service interface {
	CreateProduct(ctx context.Context, in records.ProductInput) (model.Product, error)
	CreateInvestment(ctx context.Context, in records.InvestmentInput) (model.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
}

// Handler answers record-entry HTTP requests.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// NewHandler constructs the record-entry handler.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers record-entry endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Post("/products", h.handleCreateProduct)
	r.Post("/investments", h.handleCreateInvestment)
	r.Delete("/investments/{id}", h.handleDeleteInvestment)
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in records.ProductInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	created, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		h.respondWriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var in records.InvestmentInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	created, err := h.service.CreateInvestment(r.Context(), in)
	if err != nil {
		h.respondWriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteInvestment(r.Context(), id); err != nil {
		h.respondWriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, httpx.ErrValidation):
		httpx.RespondError(w, err)
	case errors.Is(err, store.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no such record")
	default:
		h.logger.Error("record write failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Write Failed", "the record could not be saved")
	}
}
