package reststore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradepulse/tradepulse/internal/daterange"
	"github.com/tradepulse/tradepulse/internal/platform/restq"
)

type recordedRequest struct {
	path  string
	query string
}

func newRecordingStore(t *testing.T, body string) (*Store, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	requests := &[]recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		*requests = append(*requests, recordedRequest{path: r.URL.Path, query: r.URL.RawQuery})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := restq.NewClient(srv.URL, "test-key", srv.Client())
	require.NoError(t, err)
	return New(client), requests
}

func TestActiveProductsQueryShape(t *testing.T) {
	st, reqs := newRecordingStore(t, `[{"id":"p1","name":"Cover","category":"Packages","active":true}]`)

	rows, err := st.ActiveProductsByCategory(context.Background(), "Packages")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "p1", rows[0].ID)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	require.Equal(t, "/rest/v1/products", got.path)
	require.Contains(t, got.query, "category=eq.Packages")
	require.Contains(t, got.query, "active=eq.true")
	require.Contains(t, got.query, "limit=50000")
}

func TestSalesInRangeAppliesBothBounds(t *testing.T) {
	st, reqs := newRecordingStore(t, `[]`)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	_, err := st.SalesInRange(context.Background(), daterange.Range{Start: &start, End: &end})
	require.NoError(t, err)

	got := (*reqs)[0]
	require.Equal(t, "/rest/v1/sales", got.path)
	require.Contains(t, got.query, "created_at=gte.2025-03-01T00%3A00%3A00.000Z")
	require.Contains(t, got.query, "created_at=lte.2025-03-31T23%3A59%3A59.000Z")
}

func TestOpenEndedRangeOmitsBounds(t *testing.T) {
	st, reqs := newRecordingStore(t, `[]`)

	_, err := st.SalesInRange(context.Background(), daterange.Range{})
	require.NoError(t, err)

	got := (*reqs)[0]
	require.NotContains(t, got.query, "gte.")
	require.NotContains(t, got.query, "lte.")
}

func TestEmptyIDListsShortCircuit(t *testing.T) {
	st, reqs := newRecordingStore(t, `[]`)
	ctx := context.Background()

	items, err := st.SaleItemsFor(ctx, nil, []string{"p1"})
	require.NoError(t, err)
	require.Empty(t, items)

	clients, err := st.ClientsByID(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, clients)

	payments, err := st.PaymentsFor(ctx, "SALE", nil, daterange.Range{})
	require.NoError(t, err)
	require.Empty(t, payments)

	vendors, err := st.VendorsByID(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, vendors)

	require.Empty(t, *reqs, "no backend call should be made for empty id lists")
}

func TestPaymentsForFiltersByKindAndRefs(t *testing.T) {
	st, reqs := newRecordingStore(t, `[]`)

	_, err := st.PaymentsFor(context.Background(), "PURCHASE", []string{"po1", "po2"}, daterange.Range{})
	require.NoError(t, err)

	got := (*reqs)[0]
	require.Equal(t, "/rest/v1/payments", got.path)
	require.Contains(t, got.query, "kind=eq.PURCHASE")
	require.Contains(t, got.query, "ref_id=in.")
	require.Contains(t, got.query, "po1")
	require.Contains(t, got.query, "po2")
}
