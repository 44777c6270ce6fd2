package installer

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	kgzip "github.com/klauspost/compress/gzip"
)

// extractArchive unpacks a template archive into destDir. The format is
// chosen by file extension: .zip, or .tar.gz/.tgz.
func extractArchive(archivePath, destDir string) error {
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		return extractTarGz(archivePath, destDir)
	case strings.HasSuffix(archivePath, ".zip"):
		return extractZip(archivePath, destDir)
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
}

// extractZip unpacks a zip archive into destDir.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		if err := extractZipEntry(file, destDir); err != nil {
			return err
		}
	}
	return nil
}

// extractZipEntry writes one zip entry below destDir.
func extractZipEntry(file *zip.File, destDir string) error {
	destPath, err := securePath(destDir, file.Name)
	if err != nil {
		return err
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0o755)
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in archive: %w", file.Name, err)
	}
	defer func() { _ = rc.Close() }()

	return writeEntry(destPath, rc, file.FileInfo().Mode())
}

// extractTarGz unpacks a gzip-compressed tarball into destDir.
func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer func() { _ = f.Close() }()

	gz, err := kgzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read gzip stream in %s: %w", archivePath, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar stream in %s: %w", archivePath, err)
		}

		destPath, err := securePath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", destPath, err)
			}
		case tar.TypeReg:
			if err := writeEntry(destPath, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		default:
			// Symlinks and special files are not part of template
			// packages; skip them rather than fail.
		}
	}
}

// writeEntry streams one archive entry to disk, creating parents.
func writeEntry(destPath string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", destPath, err)
	}

	if mode.Perm() == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return out.Close()
}

// securePath joins an archive entry name below destDir, rejecting path
// traversal.
func securePath(destDir, name string) (string, error) {
	destPath := filepath.Join(destDir, name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid path in archive: %s", name)
	}
	return destPath, nil
}
