package seg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	ctx := context.Background()

	t.Run("ShouldLoadSupportedFileWithMetadata", func(t *testing.T) {
		loader := NewLoader()
		content := "This is a test document with some content."
		path := writeTestFile(t, "doc.txt", []byte(content))

		doc, err := loader.LoadFile(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, content, doc.Content)
		assert.Equal(t, "doc.txt", doc.Metadata["filename"])
		assert.Equal(t, path, doc.Metadata["filepath"])
		assert.Equal(t, ".txt", doc.Metadata["extension"])
		assert.Equal(t, CategoryText, doc.Metadata["category"])
		assert.Equal(t, int64(len(content)), doc.Metadata["size_bytes"])
		assert.Equal(t, len(content), doc.Metadata["character_count"])
		assert.Regexp(t, "^[0-9a-f]{32}$", doc.Metadata["content_hash"])

		stats := loader.Statistics()
		assert.Equal(t, 1, stats.TotalFilesFound)
		assert.Equal(t, 1, stats.FilesProcessed)
		assert.Equal(t, 0, stats.FilesFailed)
		assert.Equal(t, int64(len(content)), stats.TotalSizeBytes)
	})

	t.Run("ShouldFailOnMissingFile", func(t *testing.T) {
		loader := NewLoader()
		_, err := loader.LoadFile(ctx, "no/such/file.txt")
		assert.Error(t, err)
		assert.Equal(t, 1, loader.Statistics().FilesFailed)
	})

	t.Run("ShouldFailOnEmptyFile", func(t *testing.T) {
		loader := NewLoader()
		path := writeTestFile(t, "empty.txt", nil)
		_, err := loader.LoadFile(ctx, path)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("ShouldFailOnWhitespaceOnlyFile", func(t *testing.T) {
		loader := NewLoader()
		path := writeTestFile(t, "blank.txt", []byte("  \n\t \n  "))
		_, err := loader.LoadFile(ctx, path)
		assert.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("ShouldFailOnDirectory", func(t *testing.T) {
		loader := NewLoader()
		_, err := loader.LoadFile(ctx, t.TempDir())
		assert.Error(t, err)
	})

	t.Run("ShouldEnforceSizeLimit", func(t *testing.T) {
		loader := NewLoader(WithMaxFileSize(10))
		path := writeTestFile(t, "big.txt", []byte("this file is larger than ten bytes"))
		_, err := loader.LoadFile(ctx, path)
		assert.ErrorContains(t, err, "size limit")
	})

	t.Run("ShouldFailOnUnsupportedFormat", func(t *testing.T) {
		loader := NewLoader()
		path := writeTestFile(t, "binary.exe", []byte{0x4D, 0x5A, 0x00, 0x01, 0xFF, 0xFE})
		_, err := loader.LoadFile(ctx, path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func writeLoaderTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":        "alpha document content",
		"b.md":         "bravo document content",
		"c.json":       `{"name": "charlie", "kind": "data"}`,
		"d.exe":        "not a document",
		"nested/e.txt": "echo document content",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	ctx := context.Background()

	t.Run("ShouldLoadSupportedFilesRecursively", func(t *testing.T) {
		loader := NewLoader()
		docs, err := loader.LoadDir(ctx, writeLoaderTree(t))
		require.NoError(t, err)
		assert.Len(t, docs, 4)

		stats := loader.Statistics()
		assert.Equal(t, 4, stats.TotalFilesFound)
		assert.Equal(t, 4, stats.FilesProcessed)
		assert.Equal(t, 0, stats.FilesFailed)
	})

	t.Run("ShouldStayAtTopLevelWhenNotRecursive", func(t *testing.T) {
		loader := NewLoader(WithRecursive(false))
		docs, err := loader.LoadDir(ctx, writeLoaderTree(t))
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("ShouldFailOnMissingDirectory", func(t *testing.T) {
		loader := NewLoader()
		_, err := loader.LoadDir(ctx, "no/such/dir")
		assert.Error(t, err)
	})
}

func TestLoadGlob(t *testing.T) {
	ctx := context.Background()

	t.Run("ShouldMatchNestedFiles", func(t *testing.T) {
		loader := NewLoader()
		dir := writeLoaderTree(t)
		docs, err := loader.LoadGlob(ctx, filepath.Join(dir, "**", "*.txt"))
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("ShouldRejectInvalidPattern", func(t *testing.T) {
		loader := NewLoader()
		_, err := loader.LoadGlob(ctx, "[")
		assert.Error(t, err)
	})
}

func TestLoadFiles(t *testing.T) {
	t.Run("ShouldKeepLoadingPastFailures", func(t *testing.T) {
		loader := NewLoader()
		good := writeTestFile(t, "good.txt", []byte("good document content"))

		docs, err := loader.LoadFiles(context.Background(), []string{good, "no/such/file.txt"})
		require.NoError(t, err)
		assert.Len(t, docs, 1)

		stats := loader.Statistics()
		assert.Equal(t, 2, stats.TotalFilesFound)
		assert.Equal(t, 1, stats.FilesProcessed)
		assert.Equal(t, 1, stats.FilesFailed)
	})

	t.Run("ShouldStopOnCancelledContext", func(t *testing.T) {
		loader := NewLoader()
		path := writeTestFile(t, "doc.txt", []byte("document content"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		docs, err := loader.LoadFiles(ctx, []string{path})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, docs)
	})
}

func TestLoadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doc.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Downloaded document content for tests."))
	}))
	defer server.Close()

	t.Run("ShouldDownloadParseAndCleanUp", func(t *testing.T) {
		tempDir := t.TempDir()
		loader := NewLoader(WithTempDir(tempDir))

		doc, err := loader.LoadURL(context.Background(), server.URL+"/doc.txt")
		require.NoError(t, err)

		assert.Equal(t, "Downloaded document content for tests.", doc.Content)
		assert.Equal(t, server.URL+"/doc.txt", doc.Metadata["source_url"])
		assert.Equal(t, "text/plain; charset=utf-8", doc.Metadata["content_type"])

		// The downloaded copy is removed once parsed.
		_, statErr := os.Stat(filepath.Join(tempDir, "doc.txt"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("ShouldFailOnHTTPError", func(t *testing.T) {
		loader := NewLoader(WithTempDir(t.TempDir()))
		_, err := loader.LoadURL(context.Background(), server.URL+"/missing.txt")
		assert.ErrorContains(t, err, "unexpected status")
	})
}

func TestLoaderResetStatistics(t *testing.T) {
	loader := NewLoader()
	path := writeTestFile(t, "doc.txt", []byte("document content here"))

	_, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.NotZero(t, loader.Statistics().FilesProcessed)

	loader.ResetStatistics()
	assert.Equal(t, LoaderStats{}, loader.Statistics())
}
