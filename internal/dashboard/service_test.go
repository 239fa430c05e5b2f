package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/model"
	"github.com/tradepulse/tradepulse/internal/platform/httpx"
)

// fakeStore serves canned rows and can hold sale reads open so tests can
// overlap two refresh cycles deterministically.
type fakeStore struct {
	mu           sync.Mutex
	products     []model.Product
	sales        []model.Sale
	saleItems    []model.SaleItem
	clients      []model.Client
	payments     []model.Payment
	investments  []model.Investment
	failProducts error

	salesGate chan struct{} // when set, SalesInRange blocks until a receive
	fetches   int
}

func (f *fakeStore) ActiveProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	if f.failProducts != nil {
		return nil, f.failProducts
	}
	return f.products, nil
}

func (f *fakeStore) SalesInRange(ctx context.Context, r daterange.Range) ([]model.Sale, error) {
	if f.salesGate != nil {
		select {
		case <-f.salesGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	out := make([]model.Sale, 0, len(f.sales))
	for _, s := range f.sales {
		if r.Contains(s.CreatedAt) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SaleItemsFor(ctx context.Context, saleIDs, productIDs []string) ([]model.SaleItem, error) {
	allowed := map[string]struct{}{}
	for _, id := range saleIDs {
		allowed[id] = struct{}{}
	}
	var out []model.SaleItem
	for _, item := range f.saleItems {
		if _, ok := allowed[item.SaleID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) ClientsByID(ctx context.Context, ids []string) ([]model.Client, error) {
	return f.clients, nil
}

func (f *fakeStore) PaymentsFor(ctx context.Context, kind string, refIDs []string, r daterange.Range) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range f.payments {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) PurchaseItemsForProducts(ctx context.Context, productIDs []string) ([]model.PurchaseItem, error) {
	return nil, nil
}

func (f *fakeStore) PurchasesByID(ctx context.Context, ids []string, r daterange.Range) ([]model.Purchase, error) {
	return nil, nil
}

func (f *fakeStore) VendorsByID(ctx context.Context, ids []string) ([]model.Vendor, error) {
	return nil, nil
}

func (f *fakeStore) Investments(ctx context.Context) ([]model.Investment, error) {
	return f.investments, nil
}

func (f *fakeStore) InventoryLevels(ctx context.Context) ([]model.InventoryLevel, error) {
	return nil, nil
}

func (f *fakeStore) InsertProduct(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func (f *fakeStore) InsertInvestment(ctx context.Context, inv model.Investment) (model.Investment, error) {
	return inv, nil
}

func (f *fakeStore) DeleteInvestment(ctx context.Context, id string) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededStore() *fakeStore {
	at := time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC)
	return &fakeStore{
		products: []model.Product{{ID: "p1", Name: "Cover", PurchasePrice: ptr(30), Category: model.CategoryPackages, Active: true}},
		sales:    []model.Sale{{ID: "s1", ClientID: "c1", CreatedAt: at}},
		saleItems: []model.SaleItem{
			{ID: "i1", SaleID: "s1", ProductID: "p1", Quantity: 10, UnitPrice: 50},
		},
		clients: []model.Client{{ID: "c1", Name: "Acme"}},
	}
}

func TestRefreshProducesReportAndCommits(t *testing.T) {
	svc := NewService(seededStore(), testLogger())
	rep, err := svc.Refresh(context.Background(), testQuery())
	require.NoError(t, err)
	require.Equal(t, 500.0, rep.Metrics.Revenue)
	require.Same(t, rep, svc.Current())
}

func TestRefreshEmptyCategoryShortCircuits(t *testing.T) {
	st := seededStore()
	st.products = nil
	svc := NewService(st, testLogger())

	rep, err := svc.Refresh(context.Background(), testQuery())
	require.NoError(t, err)
	require.Equal(t, 0.0, rep.Metrics.Revenue)
	require.Empty(t, rep.DailyTrend)
}

func TestRefreshAbortsOnFetchError(t *testing.T) {
	st := seededStore()
	st.failProducts = errors.New("backend down")
	svc := NewService(st, testLogger())

	_, err := svc.Refresh(context.Background(), testQuery())
	require.ErrorIs(t, err, httpx.ErrUpstream)
	require.Nil(t, svc.Current())
}

func TestRefreshInvalidCustomRange(t *testing.T) {
	svc := NewService(seededStore(), testLogger())
	q := testQuery()
	q.Preset = daterange.PresetCustom
	q.CustomFrom = "not-a-date"
	_, err := svc.Refresh(context.Background(), q)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestStaleRefreshOnlyNewestCommits(t *testing.T) {
	st := seededStore()
	st.salesGate = make(chan struct{})
	svc := NewService(st, testLogger())

	older := testQuery()
	newer := testQuery()
	newer.Preset = daterange.PresetThisYear

	type result struct {
		rep *Report
		err error
	}
	olderDone := make(chan result, 1)
	newerDone := make(chan result, 1)

	go func() {
		rep, err := svc.Refresh(context.Background(), older)
		olderDone <- result{rep, err}
	}()
	// Give the older cycle time to reach the gated sales read, then start
	// the newer cycle so it owns the top generation.
	time.Sleep(20 * time.Millisecond)
	go func() {
		rep, err := svc.Refresh(context.Background(), newer)
		newerDone <- result{rep, err}
	}()
	time.Sleep(20 * time.Millisecond)

	// Release the newer cycle first, let it commit, then release the stale one.
	st.salesGate <- struct{}{}
	st.salesGate <- struct{}{}

	newerRes := <-newerDone
	olderRes := <-olderDone
	require.NoError(t, newerRes.err)
	require.NoError(t, olderRes.err)

	// Both cycles ran to completion and returned reports, but only the
	// newest one is the committed snapshot.
	require.NotNil(t, olderRes.rep)
	require.Same(t, newerRes.rep, svc.Current())
}
