package installer

import (
	"archive/tar"
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	kgzip "github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip builds a zip archive at path from name->content entries.
// Names ending in "/" become directory entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		if name[len(name)-1] == '/' {
			_, err := zw.Create(name)
			require.NoError(t, err)
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

// writeTarGz builds a gzip-compressed tarball at path.
func writeTarGz(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	gz := kgzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		if name[len(name)-1] == '/' {
			require.NoError(t, tw.WriteHeader(&tar.Header{
				Name: name, Typeflag: tar.TypeDir, Mode: 0o755,
			}))
			continue
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.zip")
	writeZip(t, archive, map[string]string{
		"scripts/":          "",
		"scripts/run.js":    "console.log('hi')",
		"templates/t1.yaml": "name: t1",
	})

	dest := filepath.Join(dir, "out")
	require.NoError(t, extractArchive(archive, dest))

	assert.Equal(t, "console.log('hi')", readFile(t, filepath.Join(dest, "scripts", "run.js")))
	assert.Equal(t, "name: t1", readFile(t, filepath.Join(dest, "templates", "t1.yaml")))
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"template.tar.gz", "template.tgz"} {
		archive := filepath.Join(dir, name)
		writeTarGz(t, archive, map[string]string{
			"scripts/":       "",
			"scripts/run.js": "module.exports = {}",
		})

		dest := filepath.Join(dir, "out-"+name)
		require.NoError(t, extractArchive(archive, dest))
		assert.Equal(t, "module.exports = {}", readFile(t, filepath.Join(dest, "scripts", "run.js")))
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "template.rar")
	require.NoError(t, os.WriteFile(archive, []byte("junk"), 0o644))

	err := extractArchive(archive, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive format")
}

func TestExtractRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{
		"../escape.txt": "gotcha",
	})

	err := extractArchive(archive, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid path in archive")
	assert.NoFileExists(t, filepath.Join(dir, "escape.txt"))
}
