// Package fwc fetches Karenia brevis sampling results from the FWC
// HAB monitoring ArcGIS feature service.
package fwc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

// Client implements the pipeline SampleSource against the FWC ArcGIS
// query endpoint.
type Client struct {
	baseURL     string
	resultLimit int
	maxRetries  int
	httpClient  *http.Client
	logger      *slog.Logger

	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// NewClient creates an FWC feed client from the process config.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     cfg.FWCAPIURL,
		resultLimit: cfg.FWCResultLimit,
		maxRetries:  cfg.FWCMaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.FWCTimeout,
		},
		logger:         logger,
		initialBackoff: 1 * time.Second,
		maxBackoff:     30 * time.Second,
	}
}

// FetchSamples retrieves the most recent sampling results, newest first.
// Transport errors and 5xx responses are retried with exponential
// backoff; 4xx responses fail immediately.
func (c *Client) FetchSamples(ctx context.Context) ([]domain.RawSample, error) {
	params := url.Values{
		"where":             {"1=1"},
		"outFields":         {"*"},
		"outSR":             {"4326"},
		"f":                 {"json"},
		"orderByFields":     {"SAMPLE_DATE DESC"},
		"resultRecordCount": {strconv.Itoa(c.resultLimit)},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	backoff := c.initialBackoff

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("fwc fetch retrying", "attempt", attempt, "backoff", backoff, "error", lastErr)
			if !sleepWithContext(ctx, backoff) {
				return nil, ctx.Err()
			}
			backoff = nextBackoff(backoff, c.maxBackoff)
		}

		samples, retryable, err := c.fetchOnce(ctx, fullURL)
		if err == nil {
			return samples, nil
		}
		if !retryable || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fwc fetch failed after %d retries: %w", c.maxRetries, lastErr)
}

// fetchOnce performs a single query. The bool reports whether the
// failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, fullURL string) ([]domain.RawSample, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fwc request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		body, _ := io.ReadAll(resp.Body)
		return nil, true, fmt.Errorf("fwc API error: status %d: %s", resp.StatusCode, body)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("fwc API error: status %d: %s", resp.StatusCode, body)
	}

	var queryResp queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return nil, true, fmt.Errorf("decode response: %w", err)
	}

	// ArcGIS reports some failures as a 200 with an error object in the body.
	if queryResp.Error != nil {
		return nil, true, fmt.Errorf("fwc query error: code %d: %s", queryResp.Error.Code, queryResp.Error.Message)
	}

	samples := make([]domain.RawSample, 0, len(queryResp.Features))
	for _, f := range queryResp.Features {
		samples = append(samples, f.Attributes.toRawSample())
	}

	c.logger.Debug("fwc fetch complete", "samples", len(samples))
	return samples, false, nil
}

// ArcGIS query response types.

type queryResponse struct {
	Features []feature   `json:"features"`
	Error    *queryError `json:"error"`
}

type queryError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type feature struct {
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	HabID      string `json:"HAB_ID"`
	Location   string `json:"LOCATION"`
	Abundance  string `json:"Abundance"`
	SampleDate int64  `json:"SAMPLE_DATE"` // epoch milliseconds
}

func (a attributes) toRawSample() domain.RawSample {
	s := domain.RawSample{
		SiteID:    a.HabID,
		Location:  a.Location,
		Abundance: a.Abundance,
	}
	if a.SampleDate > 0 {
		s.SampleTime = time.UnixMilli(a.SampleDate).UTC()
	}
	return s
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
