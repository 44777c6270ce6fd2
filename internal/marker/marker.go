// Package marker reads and writes the version marker inside an installed
// .apidog directory. The marker records which template release is
// installed and when; the version command consumes it read-only.
package marker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileName is the marker file name inside the .apidog directory.
const FileName = ".version"

// Record is the persisted marker content.
type Record struct {
	TemplateVersion string `json:"templateVersion"`
	InstalledAt     string `json:"installedAt"`
}

// Write stores the marker for the given template version under rootDir.
func Write(rootDir, templateVersion string, installedAt time.Time) error {
	rec := Record{
		TemplateVersion: templateVersion,
		InstalledAt:     installedAt.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode version marker: %w", err)
	}

	path := filepath.Join(rootDir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write version marker %s: %w", path, err)
	}
	return nil
}

// Read loads the marker from rootDir. A missing or malformed marker is
// reported as an error; callers treat both as "not installed".
func Read(rootDir string) (*Record, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read version marker %s: %w", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse version marker %s: %w", path, err)
	}
	return &rec, nil
}
