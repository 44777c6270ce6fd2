package github

import (
	"errors"
	"fmt"
	"strings"
)

// Asset is a named downloadable artifact attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// Release is the subset of the GitHub release payload the installer
// consumes.
type Release struct {
	TagName    string  `json:"tag_name"`
	Name       string  `json:"name"`
	Assets     []Asset `json:"assets"`
	ZipballURL string  `json:"zipball_url"`
}

// Origin records where a selected archive came from.
type Origin string

// Archive origins.
const (
	OriginAsset   Origin = "asset"
	OriginZipball Origin = "zipball"
)

// AssetSelection is the resolved download target for a release.
type AssetSelection struct {
	URL    string
	Name   string
	Size   int64
	Origin Origin
}

// ErrMissingAsset indicates a release with no resolvable archive.
var ErrMissingAsset = errors.New("release has no downloadable archive asset or zipball")

// archiveSuffixes lists accepted template archive extensions in
// preference order.
var archiveSuffixes = []string{".zip", ".tar.gz", ".tgz"}

// SelectAsset picks the download target for a release: the first asset
// with a recognized archive suffix (zip preferred over tar.gz), falling
// back to the source zipball with a synthesized filename.
func SelectAsset(rel *Release, repoName string) (AssetSelection, error) {
	for _, suffix := range archiveSuffixes {
		for _, a := range rel.Assets {
			if strings.HasSuffix(a.Name, suffix) {
				return AssetSelection{
					URL:    a.BrowserDownloadURL,
					Name:   a.Name,
					Size:   a.Size,
					Origin: OriginAsset,
				}, nil
			}
		}
	}

	if rel.ZipballURL != "" {
		tag := rel.TagName
		if tag == "" {
			tag = "latest"
		}
		return AssetSelection{
			URL:    rel.ZipballURL,
			Name:   fmt.Sprintf("%s-%s.zip", repoName, tag),
			Origin: OriginZipball,
		}, nil
	}

	return AssetSelection{}, ErrMissingAsset
}
