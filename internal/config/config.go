// Package config holds the runtime configuration for the apidog-test CLI.
//
// All values are constructed once via Default and passed explicitly down
// the call chain. Nothing here is mutated after construction; tests build
// their own Config values with shortened delays and local directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RetryConfig describes the retry policy for network operations.
type RetryConfig struct {
	// Attempts is the total number of attempts, including the first.
	Attempts int

	// Delays is the fixed backoff sequence between attempts.
	Delays []time.Duration

	// Timeout bounds each individual HTTP attempt.
	Timeout time.Duration
}

// Config is the immutable runtime configuration.
type Config struct {
	// RepoOwner and RepoName identify the GitHub repository that
	// publishes template releases.
	RepoOwner string
	RepoName  string

	// APIBaseURL is the GitHub API base (overridable in tests).
	APIBaseURL string

	// CacheRoot is the directory for downloaded archives. Empty means
	// the per-user cache directory.
	CacheRoot string

	Retry RetryConfig
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		RepoOwner:  "danglephuc",
		RepoName:   "apidog-test",
		APIBaseURL: "https://api.github.com",
		Retry: RetryConfig{
			Attempts: 3,
			Delays: []time.Duration{
				1 * time.Second,
				2 * time.Second,
				4 * time.Second,
			},
			Timeout: 60 * time.Second,
		},
	}
}

// LatestReleaseURL returns the releases/latest endpoint for the
// configured repository.
func (c Config) LatestReleaseURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.APIBaseURL, c.RepoOwner, c.RepoName)
}

// CacheDir returns the directory for downloaded archives, creating it if
// needed.
func (c Config) CacheDir() (string, error) {
	root := c.CacheRoot
	if root == "" {
		userCache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate user cache directory: %w", err)
		}
		root = filepath.Join(userCache, c.RepoName)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory %s: %w", root, err)
	}
	return root, nil
}
