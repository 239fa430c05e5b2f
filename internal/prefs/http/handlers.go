// Package prefshttp exposes the UI preference endpoints. The browser
// identifies itself with the X-User header and, for dismissal scoping, the
// X-Login-At header carrying the login time as unix seconds.
package prefshttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/tradepulse/internal/platform/httpx"
	"github.com/tradepulse/tradepulse/internal/prefs"
)

// Handler answers preference HTTP requests.
type Handler struct {
	logger *slog.Logger
	store  *prefs.Store
}

// NewHandler constructs the preference handler.
func NewHandler(logger *slog.Logger, store *prefs.Store) *Handler {
	return &Handler{logger: logger, store: store}
}

// MountRoutes registers preference endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/prefs/tab", h.handleGetTab)
	r.Put("/prefs/tab", h.handleSetTab)
	r.Get("/prefs/inventory-warning", h.handleWarningState)
	r.Post("/prefs/inventory-warning/dismiss", h.handleDismissWarning)
}

type tabPayload struct {
	Tab string `json:"tab"`
}

func (h *Handler) handleGetTab(w http.ResponseWriter, r *http.Request) {
	user, err := username(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	tab, err := h.store.Tab(r.Context(), user)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tabPayload{Tab: tab})
}

func (h *Handler) handleSetTab(w http.ResponseWriter, r *http.Request) {
	user, err := username(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in tabPayload
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if !prefs.ValidTab(in.Tab) {
		httpx.RespondError(w, fmt.Errorf("%w: unknown tab %q", httpx.ErrValidation, in.Tab))
		return
	}
	if err := h.store.SetTab(r.Context(), user, in.Tab); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWarningState(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	dismissed, err := h.store.WarningDismissed(r.Context(), sess)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"dismissed": dismissed})
}

func (h *Handler) handleDismissWarning(w http.ResponseWriter, r *http.Request) {
	sess, err := session(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.store.DismissWarning(r.Context(), sess); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondStoreError(w http.ResponseWriter, err error) {
	h.logger.Error("preference store failed", slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Preferences Unavailable", "")
}

func username(r *http.Request) (string, error) {
	user := strings.TrimSpace(r.Header.Get("X-User"))
	if user == "" {
		return "", fmt.Errorf("%w: X-User header is required", httpx.ErrValidation)
	}
	return user, nil
}

func session(r *http.Request) (prefs.Session, error) {
	user, err := username(r)
	if err != nil {
		return prefs.Session{}, err
	}
	raw := strings.TrimSpace(r.Header.Get("X-Login-At"))
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return prefs.Session{}, fmt.Errorf("%w: X-Login-At must be unix seconds", httpx.ErrValidation)
	}
	return prefs.Session{Username: user, LoginAt: time.Unix(unix, 0).UTC()}, nil
}
