// Package github resolves template releases and downloads their archives
// from the GitHub API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/danglephuc/apidog-test/internal/config"
	"github.com/danglephuc/apidog-test/internal/logger"
	"github.com/danglephuc/apidog-test/internal/util/retry"
)

// Client talks to the GitHub releases API for the configured repository.
type Client struct {
	cfg        config.Config
	token      string
	httpClient *http.Client

	// notices receives user-facing retry/warning lines; defaults to
	// stderr.
	notices io.Writer
}

// NewClient creates a release client. The token may be empty; the
// effective value is resolved via Token, so GH_TOKEN and GITHUB_TOKEN
// apply when no explicit token is given.
func NewClient(cfg config.Config, token string) *Client {
	return &Client{
		cfg:   cfg,
		token: Token(token),
		httpClient: &http.Client{
			Timeout: cfg.Retry.Timeout,
		},
		notices: os.Stderr,
	}
}

// Token returns the sanitized GitHub token: the explicit value wins,
// then GH_TOKEN, then GITHUB_TOKEN.
func Token(explicit string) string {
	for _, candidate := range []string{explicit, os.Getenv("GH_TOKEN"), os.Getenv("GITHUB_TOKEN")} {
		if tok := strings.TrimSpace(candidate); tok != "" {
			return tok
		}
	}
	return ""
}

// LatestRelease fetches the latest published release, retrying transient
// failures per the configured backoff schedule. The final failure carries
// rate-limit diagnostics when GitHub provided them.
func (c *Client) LatestRelease(ctx context.Context) (*Release, error) {
	url := c.cfg.LatestReleaseURL()

	var release *Release
	err := retry.Do(ctx, func() error {
		rel, err := c.fetchRelease(ctx, url)
		if err != nil {
			return err
		}
		release = rel
		return nil
	}, c.retryOptions("fetch release")...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	return release, nil
}

// fetchRelease performs a single metadata request.
func (c *Client) fetchRelease(ctx context.Context, url string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Fatal(fmt.Errorf("failed to create request: %w", err))
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rate := parseRateLimit(resp.Header)
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url, RateLimit: rate}
	}

	if rate.lowQuota() {
		fmt.Fprintf(c.notices, "Warning: GitHub API rate limit low (%s remaining)\n", rate.Remaining)
		logger.L().Warnw("GitHub API rate limit low", "remaining", rate.Remaining)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release response: %w", err)
	}

	logger.L().Debugw("resolved latest release",
		"tag", release.TagName,
		"assets", len(release.Assets),
	)
	return &release, nil
}

// setHeaders applies the bearer token when one is configured.
func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// retryOptions builds the shared retry policy for network calls.
func (c *Client) retryOptions(what string) []retry.Option {
	return []retry.Option{
		retry.WithMaxAttempts(c.cfg.Retry.Attempts),
		retry.WithDelaySchedule(c.cfg.Retry.Delays),
		retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
			fmt.Fprintf(c.notices, "Attempt %d failed, retrying in %s...\n", attempt, delay)
			logger.L().Debugw("retrying "+what, "attempt", attempt, "delay", delay, "error", err)
		}),
	}
}
