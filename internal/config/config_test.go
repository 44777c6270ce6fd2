package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "danglephuc", cfg.RepoOwner)
	assert.Equal(t, "apidog-test", cfg.RepoName)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, cfg.Retry.Delays)
	assert.Equal(t, 60*time.Second, cfg.Retry.Timeout)
}

func TestLatestReleaseURL(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.APIBaseURL = "http://example.test"

	assert.Equal(t, "http://example.test/repos/danglephuc/apidog-test/releases/latest", cfg.LatestReleaseURL())
}

func TestCacheDir_UsesCacheRootOverride(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.CacheRoot = t.TempDir() + "/nested/cache"

	dir, err := cfg.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, cfg.CacheRoot, dir)
	assert.DirExists(t, dir)
}
