// Package restq is a thin client for the hosted row-query backend: a
// PostgREST-style API organised as named tables with equality/range/membership
// filters, ordering and row limits. Schema and transactional guarantees belong
// to the backend; this package only builds requests and decodes rows.
package restq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client issues table reads and single-row writes against the backend.
type Client struct {
	base   string
	apiKey string
	http   *http.Client
}

// NewClient validates the backend URL and builds a client. httpClient may be
// nil, in which case a client with a 30s timeout is used.
func NewClient(baseURL, apiKey string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("restq: invalid backend url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		apiKey: apiKey,
		http:   httpClient,
	}, nil
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Table  string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("restq: %s: backend returned %d: %s", e.Table, e.Status, e.Body)
}

// Select runs a filtered read against table and decodes the JSON rows into
// dest, which must be a pointer to a slice.
func (c *Client) Select(ctx context.Context, table string, q *Query, dest any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.base, table, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("restq: build request: %w", err)
	}
	c.authorize(req)

	body, err := c.do(req, table)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("restq: %s: decode rows: %w", table, err)
	}
	return nil
}

// Insert writes a single row and decodes the returned representation into
// dest when dest is non-nil.
func (c *Client) Insert(ctx context.Context, table string, row any, dest any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("restq: %s: encode row: %w", table, err)
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.base, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("restq: build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := c.do(req, table)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	// Representation comes back as a one-element array.
	raw := bytes.TrimSpace(body)
	if len(raw) > 0 && raw[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(raw, &rows); err != nil {
			return fmt.Errorf("restq: %s: decode representation: %w", table, err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("restq: %s: insert returned no representation", table)
		}
		raw = rows[0]
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("restq: %s: decode representation: %w", table, err)
	}
	return nil
}

// Delete removes the rows matched by q. Callers scope q down to a single id.
func (c *Client) Delete(ctx context.Context, table string, q *Query) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.base, table, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("restq: build request: %w", err)
	}
	c.authorize(req)
	_, err = c.do(req, table)
	return err
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (c *Client) do(req *http.Request, table string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("restq: %s: %w", table, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("restq: %s: read response: %w", table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 512 {
			detail = detail[:512]
		}
		return nil, &StatusError{Table: table, Status: resp.StatusCode, Body: detail}
	}
	return body, nil
}

// Timestamp formats an instant the way the backend expects filter operands.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
