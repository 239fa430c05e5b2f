// Package inventoryhttp exposes the stock warning endpoint.
package inventoryhttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/tradepulse/internal/inventory"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
)

// Service is the inventory contract used by the handler.
type Service interface {
	Warnings(ctx context.Context) ([]inventory.Warning, error)
}

// Handler answers inventory HTTP requests.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// NewHandler constructs the inventory handler.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers inventory endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/inventory/warnings", h.handleWarnings)
}

func (h *Handler) handleWarnings(w http.ResponseWriter, r *http.Request) {
	warnings, err := h.service.Warnings(r.Context())
	if err != nil {
		h.logger.Error("inventory warnings failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Load Failed", "inventory levels could not be loaded")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}
