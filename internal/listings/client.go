// Package listings fetches rental listings from the scraping provider
// and validates them at the boundary before they enter the pipeline.
package listings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
	"github.com/aptiva-ai/rental-platform/pkg/metrics"
)

// Fetcher retrieves listings for a search URL.
type Fetcher interface {
	Fetch(ctx context.Context, req *FetchRequest) ([]model.Listing, error)
}

// FetchRequest is the actor run input.
type FetchRequest struct {
	SearchURL    string `json:"search_url"`
	MaxPages     int    `json:"max_pages"`
	FilterOption string `json:"filter_option"`
}

// Options configures the listings client.
type Options struct {
	BaseURL    string
	APIToken   string
	ActorID    string
	Timeout    time.Duration
	MaxRetries int
}

// Client calls the Apify actor that scrapes Apartments.com search pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	actorID    string
	maxRetries int
	logger     *logger.Logger
}

// NewClient creates a listings client.
func NewClient(opts Options, log *logger.Logger) (*Client, error) {
	if opts.APIToken == "" {
		return nil, fmt.Errorf("scraper API token is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		token:      opts.APIToken,
		actorID:    opts.ActorID,
		maxRetries: opts.MaxRetries,
		logger:     log,
	}, nil
}

// Fetch runs the actor synchronously and returns its dataset items as
// validated listings. Transient failures are retried with exponential
// backoff; items that fail shape validation are dropped with a warning.
func (c *Client) Fetch(ctx context.Context, req *FetchRequest) ([]model.Listing, error) {
	if req.SearchURL == "" {
		return nil, fmt.Errorf("search url is required")
	}
	if req.MaxPages <= 0 {
		req.MaxPages = 1
	}
	if req.FilterOption == "" {
		req.FilterOption = "all"
	}

	start := time.Now()

	var raw []json.RawMessage
	operation := func() error {
		items, err := c.runActor(ctx, req)
		if err != nil {
			return err
		}
		raw = items
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		metrics.RecordSearch("error", time.Since(start).Seconds())
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	out := make([]model.Listing, 0, len(raw))
	for i, item := range raw {
		var l model.Listing
		if err := json.Unmarshal(item, &l); err != nil {
			c.logger.Warn("dropping malformed listing item",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		if err := model.ValidateListing(&l); err != nil {
			c.logger.Warn("dropping invalid listing item",
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		out = append(out, l)
	}

	metrics.RecordSearch("success", time.Since(start).Seconds())
	c.logger.Info("fetched listings",
		zap.String("search_url", req.SearchURL),
		zap.Int("count", len(out)))
	return out, nil
}

func (c *Client) runActor(ctx context.Context, req *FetchRequest) ([]json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(c.actorID), url.QueryEscape(c.token))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal run input: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("actor run failed with status %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("actor run failed with status %d: %s", resp.StatusCode, truncate(data, 200)))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode dataset items: %w", err))
	}
	return items, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
