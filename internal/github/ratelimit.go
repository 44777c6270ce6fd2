package github

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitInfo carries the rate-limit metadata GitHub attaches to API
// responses. Remaining stays a string because GitHub omits or blanks the
// header in some cases; ResetAt is zero when the header is absent.
type RateLimitInfo struct {
	Remaining string
	ResetAt   time.Time
}

// parseRateLimit extracts rate-limit metadata from response headers.
func parseRateLimit(h http.Header) RateLimitInfo {
	info := RateLimitInfo{
		Remaining: h.Get("X-RateLimit-Remaining"),
	}
	if reset := h.Get("X-RateLimit-Reset"); reset != "" {
		if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil && epoch > 0 {
			info.ResetAt = time.Unix(epoch, 0)
		}
	}
	return info
}

// lowQuota reports whether the remaining quota is numeric and below the
// warning threshold.
func (i RateLimitInfo) lowQuota() bool {
	n, err := strconv.Atoi(i.Remaining)
	return err == nil && n < 10
}

// StatusError is a non-success GitHub response, carrying the rate-limit
// diagnostics needed for a useful error message.
type StatusError struct {
	StatusCode int
	URL        string
	RateLimit  RateLimitInfo
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GitHub API returned status %d for %s", e.StatusCode, e.URL)

	if e.RateLimit.Remaining != "" || !e.RateLimit.ResetAt.IsZero() {
		b.WriteString("\n\nRate limit details:")
		if e.RateLimit.Remaining != "" {
			fmt.Fprintf(&b, "\n  Remaining: %s", e.RateLimit.Remaining)
		}
		if !e.RateLimit.ResetAt.IsZero() {
			fmt.Fprintf(&b, "\n  Resets at: %s", e.RateLimit.ResetAt.Local().Format("2006-01-02 15:04:05 MST"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTip: set GH_TOKEN or GITHUB_TOKEN to increase GitHub API limits.")
	return b.String()
}
