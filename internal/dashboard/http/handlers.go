// Package dashhttp serves the dashboard pipeline over HTTP: the aggregated
// report as JSON, the chart views as SVG documents, and the CSV/XLSX exports.
package dashhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tradepulse/tradepulse/internal/dashboard"
	"github.com/tradepulse/tradepulse/internal/dashboard/export"
	"github.com/tradepulse/tradepulse/internal/dashboard/svg"
	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
	"github.com/tradepulse/tradepulse/internal/shared"
)

// Service is the dashboard contract used by the handler.
type Service interface {
	Refresh(ctx context.Context, q dashboard.Query) (*dashboard.Report, error)
	Current() *dashboard.Report
}

// Handler answers dashboard HTTP requests.
type Handler struct {
	logger  *slog.Logger
	service Service
	bufPool sync.Pool
	now     func() time.Time
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, service Service) *Handler {
	h := &Handler{
		logger:  logger,
		service: service,
		now:     time.Now,
	}
	h.bufPool.New = func() any { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

type reportResponse struct {
	*dashboard.Report
	Display map[string]string `json:"display"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rep, err := h.service.Refresh(r.Context(), q)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reportResponse{
		Report:  rep,
		Display: displayMetrics(rep.Metrics),
	})
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	rep := h.service.Current()
	if rep == nil {
		httpx.Problem(w, http.StatusNotFound, "No Snapshot", "no dashboard has been loaded yet")
		return
	}
	httpx.JSON(w, http.StatusOK, reportResponse{
		Report:  rep,
		Display: displayMetrics(rep.Metrics),
	})
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rep, err := h.service.Refresh(r.Context(), q)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)
	if err := export.WriteReportCSV(buf, rep); err != nil {
		h.logger.Error("csv export failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", h.attachment(q.Category, "csv"))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleXLSX(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rep, err := h.service.Refresh(r.Context(), q)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	buf := h.bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.bufPool.Put(buf)
	if err := export.WriteReportXLSX(buf, rep); err != nil {
		h.logger.Error("xlsx export failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", h.attachment(q.Category, "xlsx"))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	chart := chi.URLParam(r, "chart")
	q, err := parseQuery(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rep, err := h.service.Refresh(r.Context(), q)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}

	doc, ok := renderChart(chart, rep)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Unknown Chart", fmt.Sprintf("no chart named %q", chart))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(doc))
}

func renderChart(name string, rep *dashboard.Report) (string, bool) {
	switch name {
	case "daily":
		series := make([]float64, len(rep.DailyTrend))
		labels := make([]string, len(rep.DailyTrend))
		for i, p := range rep.DailyTrend {
			series[i] = p.Profit
			labels[i] = p.Day
		}
		return svg.Line(0, 0, series, labels, svg.Opts{
			Title:       "Daily profit",
			Description: "Profit per business day, " + shared.FormatAmount(rep.Metrics.Profit) + " total",
		}), true
	case "monthly":
		bars := make([]float64, len(rep.MonthlyTrend))
		line := make([]float64, len(rep.MonthlyTrend))
		labels := make([]string, len(rep.MonthlyTrend))
		for i, p := range rep.MonthlyTrend {
			bars[i] = p.Revenue
			line[i] = p.Profit
			labels[i] = p.Month
		}
		return svg.Combo(0, 0, bars, line, labels, svg.Opts{
			Title:        "Monthly revenue and profit",
			SeriesALabel: "Revenue",
			SeriesBLabel: "Profit",
		}), true
	case "sides":
		return breakdownChart("Revenue by side", rep.Sides), true
	case "colours":
		return breakdownChart("Revenue by colour", rep.Colours), true
	case "sizes":
		return breakdownChart("Revenue by size", rep.Sizes), true
	case "clients":
		a := make([]float64, len(rep.TopClients))
		labels := make([]string, len(rep.TopClients))
		for i, c := range rep.TopClients {
			a[i] = c.Revenue
			labels[i] = c.Name
		}
		return svg.Bars(0, 0, a, nil, labels, svg.Opts{Title: "Top clients"}), true
	case "investments":
		values := make([]float64, len(rep.Investments))
		labels := make([]string, len(rep.Investments))
		for i, inv := range rep.Investments {
			values[i] = inv.Amount
			labels[i] = inv.Contributor
		}
		return svg.Donut(0, values, labels, svg.Opts{
			Title:       "Investment split",
			Description: shared.FormatAmount(rep.Metrics.InvestmentTotal) + " contributed",
		}), true
	default:
		return "", false
	}
}

func breakdownChart(title string, rows []dashboard.BreakdownRow) string {
	a := make([]float64, len(rows))
	b := make([]float64, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		a[i] = row.Revenue
		b[i] = row.Profit
		labels[i] = row.Key
	}
	return svg.Bars(0, 0, a, b, labels, svg.Opts{
		Title:        title,
		SeriesALabel: "Revenue",
		SeriesBLabel: "Profit",
	})
}

func parseQuery(r *http.Request) (dashboard.Query, error) {
	q := dashboard.Query{
		Category:      r.URL.Query().Get("category"),
		Preset:        daterange.Preset(r.URL.Query().Get("preset")),
		CustomFrom:    r.URL.Query().Get("from"),
		CustomTo:      r.URL.Query().Get("to"),
		FocusClientID: r.URL.Query().Get("client"),
	}
	if q.Category == "" {
		q.Category = model.CategoryPackages
	}
	if !validCategory(q.Category) {
		return dashboard.Query{}, fmt.Errorf("%w: unknown category %q", httpx.ErrValidation, q.Category)
	}
	if q.Preset == "" {
		q.Preset = daterange.PresetThisMonth
	}
	if !q.Preset.Valid() {
		return dashboard.Query{}, fmt.Errorf("%w: unknown preset %q", httpx.ErrValidation, q.Preset)
	}
	return q, nil
}

func validCategory(category string) bool {
	for _, c := range model.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func displayMetrics(m dashboard.Metrics) map[string]string {
	return map[string]string{
		"revenue":          shared.FormatAmount(m.Revenue),
		"cost":             shared.FormatAmount(m.Cost),
		"profit":           shared.FormatAmount(m.Profit),
		"receivables":      shared.FormatAmount(m.Receivables),
		"vendor_payables":  shared.FormatAmount(m.VendorPayables),
		"investment_total": shared.FormatAmount(m.InvestmentTotal),
		"roi":              shared.FormatPercent(m.ROI),
		"efficiency":       shared.FormatPercent(m.Efficiency),
		"margin":           shared.FormatPercent(m.Margin),
	}
}

func (h *Handler) respondLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, httpx.ErrValidation) {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Error("dashboard load failed", slog.Any("error", err))
	httpx.Problem(w, http.StatusBadGateway, "Load Failed", "dashboard data could not be loaded")
}

func (h *Handler) attachment(category, ext string) string {
	stamp := h.now().UTC().Add(daterange.Offset).Format("20060102")
	return fmt.Sprintf(`attachment; filename="dashboard-%s-%s.%s"`, strings.ToLower(category), stamp, ext)
}
