package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	dashhttp "github.com/tradepulse/tradepulse/internal/dashboard/http"
	inventoryhttp "github.com/tradepulse/tradepulse/internal/inventory/http"
	"github.com/tradepulse/tradepulse/internal/observability"
	prefshttp "github.com/tradepulse/tradepulse/internal/prefs/http"
	recordshttp "github.com/tradepulse/tradepulse/internal/records/http"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	DashboardHandler *dashhttp.Handler
	RecordsHandler   *recordshttp.Handler
	PrefsHandler     *prefshttp.Handler
	InventoryHandler *inventoryhttp.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(api)
		}
		if params.RecordsHandler != nil {
			params.RecordsHandler.MountRoutes(api)
		}
		if params.PrefsHandler != nil {
			params.PrefsHandler.MountRoutes(api)
		}
		if params.InventoryHandler != nil {
			params.InventoryHandler.MountRoutes(api)
		}
	})

	if params.Metrics != nil {
		r.Get("/metrics", params.Metrics.Handler().ServeHTTP)
	}

	return r
}
