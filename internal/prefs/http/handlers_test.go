package prefshttp

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/internal/prefs"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), prefs.NewStore(client))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestTabRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/prefs/tab", nil)
	req.Header.Set("X-User", "aman")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"tab":"overview"`)

	req = httptest.NewRequest(http.MethodPut, "/prefs/tab", strings.NewReader(`{"tab":"clients"}`))
	req.Header.Set("X-User", "aman")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/prefs/tab", nil)
	req.Header.Set("X-User", "aman")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Contains(t, rec.Body.String(), `"tab":"clients"`)
}

func TestTabRequiresUser(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/prefs/tab", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetTabRejectsUnknownTab(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/prefs/tab", strings.NewReader(`{"tab":"settings"}`))
	req.Header.Set("X-User", "aman")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWarningDismissFlow(t *testing.T) {
	r := newTestRouter(t)

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/prefs/inventory-warning", nil)
		req.Header.Set("X-User", "aman")
		req.Header.Set("X-Login-At", "1742461200")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := get()
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"dismissed":false`)

	req := httptest.NewRequest(http.MethodPost, "/prefs/inventory-warning/dismiss", nil)
	req.Header.Set("X-User", "aman")
	req.Header.Set("X-Login-At", "1742461200")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = get()
	require.Contains(t, rec.Body.String(), `"dismissed":true`)
}

func TestWarningRequiresLoginTime(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/prefs/inventory-warning", nil)
	req.Header.Set("X-User", "aman")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
