// Package wordpress publishes derived status records to a WordPress site
// through its REST API, one custom post type per location level.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/domain"
)

// Sync outcomes reported by SyncRecord.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
)

// Client talks to the wp/v2 REST API with application-password auth.
// Requests are paced by a rate limiter so bulk syncs stay below the
// host's throttling limits.
type Client struct {
	siteURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a WordPress REST client from the process config.
// ValidateWordPress must have passed on cfg beforehand.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		siteURL:  strings.TrimRight(cfg.WordPressSiteURL, "/"),
		username: cfg.WordPressUsername,
		password: cfg.WordPressAppPassword,
		httpClient: &http.Client{
			Timeout: cfg.WordPressTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(cfg.WordPressRateInterval), 1),
		logger:  logger,
	}
}

// VerifyAuth confirms the credentials against the users/me endpoint and
// returns the authenticated display name.
func (c *Client) VerifyAuth(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.siteURL+"/wp-json/wp/v2/users/me", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wordpress auth check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("wordpress auth failed: status %d: %s", resp.StatusCode, body)
	}

	var user struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	return user.Name, nil
}

// SyncRecord upserts one status record as a post of the given type,
// matching on slug. Returns the post ID and whether it was created or
// updated.
func (c *Client) SyncRecord(ctx context.Context, rec domain.StatusRecord, loc domain.LocationInfo, lastUpdated string) (int, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, "", err
	}

	existing, err := c.findPostBySlug(ctx, rec.LocationType, rec.Slug)
	if err != nil {
		c.logger.Warn("existing post lookup failed, creating fresh", "slug", rec.Slug, "error", err)
	}

	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/%s", c.siteURL, rec.LocationType)
	outcome := OutcomeCreated
	if existing > 0 {
		endpoint = fmt.Sprintf("%s/%d", endpoint, existing)
		outcome = OutcomeUpdated
	}

	payload := buildPayload(rec, loc, lastUpdated)
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("sync %s %q: %w", rec.LocationType, rec.LocationName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, "", fmt.Errorf("sync %s %q: status %d: %s", rec.LocationType, rec.LocationName, resp.StatusCode, respBody)
	}

	var post struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return 0, "", fmt.Errorf("decode post: %w", err)
	}

	c.logger.Debug("post synced",
		"type", rec.LocationType, "name", rec.LocationName, "id", post.ID, "outcome", outcome)
	return post.ID, outcome, nil
}

// findPostBySlug returns the existing post ID for a slug, or 0 when no
// post matches.
func (c *Client) findPostBySlug(ctx context.Context, postType, slug string) (int, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/%s?%s", c.siteURL, postType,
		url.Values{"slug": {slug}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("search posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("search posts: status %d: %s", resp.StatusCode, body)
	}

	var posts []struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return 0, fmt.Errorf("decode posts: %w", err)
	}
	if len(posts) == 0 {
		return 0, nil
	}
	return posts[0].ID, nil
}

// SetRateInterval replaces the pacing interval. Used by tests to avoid
// real sleeps.
func (c *Client) SetRateInterval(d time.Duration) {
	c.limiter = rate.NewLimiter(rate.Every(d), 1)
}
