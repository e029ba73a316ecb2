package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"propdash/internal/core"
	"propdash/internal/upstream"
)

// maxBodyBytes caps how much of a response we read. The webhooks return tens
// to low hundreds of records, so anything beyond this is misbehavior.
const maxBodyBytes = 8 << 20 // 8MB

// Client fetches tenant and issue records from the two webhook endpoints.
// It performs exactly one GET per call and never retries; retry policy lives
// with the caller.
type Client struct {
	httpClient *http.Client
	tenantsURL string
	issuesURL  string
}

// Ensure interface conformance
var (
	_ upstream.TenantSource = (*Client)(nil)
	_ upstream.IssueSource  = (*Client)(nil)
)

// NewClient builds a webhook client with connection pooling and the given
// overall request timeout. A zero timeout disables the deadline entirely.
func NewClient(tenantsURL, issuesURL string, timeout time.Duration) *Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		tenantsURL: tenantsURL,
		issuesURL:  issuesURL,
	}
}

// envelope is the fixed response wrapper both endpoints use. A missing "data"
// key decodes as a nil RawMessage and is treated as an empty list.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) Tenants(ctx context.Context) ([]core.Tenant, error) {
	var records []core.Tenant
	if err := c.fetch(ctx, c.tenantsURL, &records); err != nil {
		return nil, err
	}
	for i, t := range records {
		if err := t.Validate(); err != nil {
			slog.WarnContext(ctx, "Tenant record violates upstream invariant",
				"row", i, "row_number", t.RowNumber, "error", err)
		}
	}
	return records, nil
}

func (c *Client) Issues(ctx context.Context) ([]core.Issue, error) {
	var records []core.Issue
	if err := c.fetch(ctx, c.issuesURL, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &FetchError{Kind: KindHTTPStatus, URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &FetchError{Kind: KindNetwork, URL: url, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &FetchError{Kind: KindMalformed, URL: url, Err: err}
	}
	if env.Data == nil {
		// Empty-is-safe default: no "data" key means no records.
		slog.DebugContext(ctx, "Webhook response without data key", "url", url)
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return &FetchError{Kind: KindMalformed, URL: url,
			Err: fmt.Errorf("decode data array: %w", err)}
	}

	slog.DebugContext(ctx, "Webhook fetch completed",
		"url", url, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
