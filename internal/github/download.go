package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danglephuc/apidog-test/internal/checksum"
	"github.com/danglephuc/apidog-test/internal/logger"
	"github.com/danglephuc/apidog-test/internal/util/retry"
)

// downloadChunkSize bounds per-write memory while streaming archives.
const downloadChunkSize = 8 * 1024

// DownloadResult describes a downloaded template archive. The file at
// Path belongs to the caller until handed to the installer, which
// deletes it.
type DownloadResult struct {
	Path       string
	Filename   string
	Size       int64
	ReleaseTag string
	Origin     Origin
	Digest     string
}

// DownloadArchive streams the selected archive into the cache directory,
// retrying failed attempts per the configured schedule. Partially
// written files are removed before every retry and before the final
// failure propagates.
func (c *Client) DownloadArchive(ctx context.Context, sel AssetSelection, releaseTag string) (*DownloadResult, error) {
	if sel.URL == "" {
		return nil, ErrMissingAsset
	}

	cacheDir, err := c.cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	dest := filepath.Join(cacheDir, sel.Name)

	var written int64
	err = retry.Do(ctx, func() error {
		n, err := c.downloadOnce(ctx, sel.URL, dest)
		if err != nil {
			return err
		}
		written = n
		return nil
	}, c.retryOptions("download archive")...)

	if err != nil {
		return nil, fmt.Errorf("failed to download template archive: %w", err)
	}

	size := sel.Size
	if sel.Origin != OriginAsset || size == 0 {
		size = written
	}

	digest, err := checksum.File(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum downloaded archive: %w", err)
	}
	logger.L().Debugw("downloaded template archive",
		"path", dest,
		"bytes", written,
		"sha256", digest,
	)

	return &DownloadResult{
		Path:       dest,
		Filename:   sel.Name,
		Size:       size,
		ReleaseTag: releaseTag,
		Origin:     sel.Origin,
		Digest:     digest,
	}, nil
}

// downloadOnce performs one streaming attempt. On any failure the
// partial file is removed before the error is returned.
func (c *Client) downloadOnce(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, retry.Fatal(fmt.Errorf("failed to create download request: %w", err))
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{StatusCode: resp.StatusCode, URL: url, RateLimit: parseRateLimit(resp.Header)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, retry.Fatal(fmt.Errorf("failed to create %s: %w", dest, err))
	}

	buf := make([]byte, downloadChunkSize)
	written, err := io.CopyBuffer(out, resp.Body, buf)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dest)
		return 0, fmt.Errorf("download interrupted after %d bytes: %w", written, err)
	}

	return written, nil
}
