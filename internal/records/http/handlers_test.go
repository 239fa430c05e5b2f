package recordshttp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
	"github.com/tradepulse/tradepulse/internal/records"
	"github.com/tradepulse/tradepulse/internal/store"
)

type stubService struct {
	product    model.Product
	investment model.Investment
	err        error
	deletedID  string
}

func (s *stubService) CreateProduct(_ context.Context, in records.ProductInput) (model.Product, error) {
	if s.err != nil {
		return model.Product{}, s.err
	}
	return s.product, nil
}

func (s *stubService) CreateInvestment(_ context.Context, in records.InvestmentInput) (model.Investment, error) {
	if s.err != nil {
		return model.Investment{}, s.err
	}
	return s.investment, nil
}

func (s *stubService) DeleteInvestment(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func newTestRouter(svc Service) chi.Router {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestCreateProductEndpoint(t *testing.T) {
	svc := &stubService{product: model.Product{ID: "p1", Name: "Cover"}}
	r := newTestRouter(svc)

	body := `{"name":"Cover","unit":"pcs","category":"Packages","selling_price":55}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":"p1"`)
}

func TestCreateProductBadJSON(t *testing.T) {
	r := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInvestmentValidationError(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/investments", strings.NewReader(`{"contributor":"Aman","amount":-1}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "amount must be positive")
}

func TestDeleteInvestmentEndpoint(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/investments/i1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "i1", svc.deletedID)
}

func TestDeleteInvestmentNotFound(t *testing.T) {
	svc := &stubService{err: store.ErrNotFound}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/investments/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteFailureIsBadGateway(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("backend unreachable")}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/investments", strings.NewReader(`{"contributor":"Aman","amount":10}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.NotContains(t, rec.Body.String(), "backend unreachable")
}
