package restq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueryEncode(t *testing.T) {
	q := NewQuery().
		Eq("category", "Packages").
		Gte("created_at", "2025-01-01T00:00:00.000Z").
		In("id", []string{"a", "b"}).
		OrderDesc("created_at").
		Limit(50000)

	parsed, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)
	require.Equal(t, "*", parsed.Get("select"))
	require.Equal(t, "eq.Packages", parsed.Get("category"))
	require.Equal(t, "gte.2025-01-01T00:00:00.000Z", parsed.Get("created_at"))
	require.Equal(t, `in.("a","b")`, parsed.Get("id"))
	require.Equal(t, "created_at.desc", parsed.Get("order"))
	require.Equal(t, "50000", parsed.Get("limit"))
}

func TestSelectDecodesRows(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Cover"}]`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret", srv.Client())
	require.NoError(t, err)

	var rows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err = client.Select(context.Background(), "products", NewQuery().Eq("active", "true"), &rows)
	require.NoError(t, err)
	require.Equal(t, "/rest/v1/products", gotPath)
	require.Equal(t, "secret", gotKey)
	require.Len(t, rows, 1)
	require.Equal(t, "Cover", rows[0].Name)
}

func TestSelectSurfacesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret", srv.Client())
	require.NoError(t, err)

	var rows []struct{}
	err = client.Select(context.Background(), "sales", NewQuery(), &rows)
	require.Error(t, err)
	var status *StatusError
	require.ErrorAs(t, err, &status)
	require.Equal(t, http.StatusForbidden, status.Status)
	require.Equal(t, "sales", status.Table)
}

func TestInsertReturnsRepresentation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"inv-1","amount":2500}]`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret", srv.Client())
	require.NoError(t, err)

	var created struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	err = client.Insert(context.Background(), "investments", map[string]any{"amount": 2500}, &created)
	require.NoError(t, err)
	require.Equal(t, "inv-1", created.ID)
	require.Equal(t, 2500.0, created.Amount)
}

func TestDelete(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "secret", srv.Client())
	require.NoError(t, err)
	require.NoError(t, client.Delete(context.Background(), "investments", NewQuery().Eq("id", "inv-1")))
	require.Equal(t, "eq.inv-1", gotQuery.Get("id"))
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient("not a url", "k", nil)
	require.Error(t, err)
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 19, 18, 30, 0, 0, time.UTC)
	require.Equal(t, "2025-03-19T18:30:00.000Z", Timestamp(at))
}
