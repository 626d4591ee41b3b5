package seggo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipelineChunker(t *testing.T) Chunker {
	t.Helper()
	chunker, err := NewChunker(ChunkSize(200), ChunkOverlap(20), MinChunkSize(10))
	require.NoError(t, err)
	return chunker
}

func TestProcessText(t *testing.T) {
	pipeline, err := NewPipeline(WithPipelineChunker(newPipelineChunker(t)))
	require.NoError(t, err)

	chunks, err := pipeline.ProcessText(
		"Read https://example.com/guide then continue with the setup.",
		map[string]any{"source": "inline"},
	)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, "Read then continue with the setup.", chunks[0].Text)
	assert.Equal(t, "inline", chunks[0].Metadata["source"])
}

func TestProcessTextRejectedByCleaner(t *testing.T) {
	pipeline, err := NewPipeline(WithPipelineChunker(newPipelineChunker(t)))
	require.NoError(t, err)

	// A URL-only document cleans down to nothing and is skipped, not failed.
	chunks, err := pipeline.ProcessText("https://example.com/only", nil)
	assert.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcessTextWithoutCleaning(t *testing.T) {
	pipeline, err := NewPipeline(
		WithPipelineChunker(newPipelineChunker(t)),
		WithoutCleaning(),
	)
	require.NoError(t, err)

	chunks, err := pipeline.ProcessText(
		"Read https://example.com/guide then continue with the setup.",
		nil,
	)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Text, "https://example.com/guide")
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "fox.txt", "The quick brown fox jumps over the lazy dog near the river bank.")

	pipeline, err := NewPipeline(WithPipelineChunker(newPipelineChunker(t)))
	require.NoError(t, err)

	chunks, err := pipeline.ProcessFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Contains(t, chunks[0].Text, "quick brown fox")
	assert.Equal(t, "fox.txt", chunks[0].Metadata["filename"])
	assert.Equal(t, path, chunks[0].Metadata["filepath"])

	_, err = pipeline.ProcessFile(context.Background(), "no/such/file.txt")
	assert.Error(t, err)
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "First document body with enough text to chunk.")
	writeDoc(t, dir, "b.md", "Second document body with enough text to chunk.")

	pipeline, err := NewPipeline(WithPipelineChunker(newPipelineChunker(t)))
	require.NoError(t, err)

	chunks, err := pipeline.ProcessDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk.Metadata["filepath"])
	}
}

func TestProcessGlob(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "First document body with enough text to chunk.")
	writeDoc(t, dir, "b.md", "Second document body with enough text to chunk.")

	pipeline, err := NewPipeline(WithPipelineChunker(newPipelineChunker(t)))
	require.NoError(t, err)

	chunks, err := pipeline.ProcessGlob(context.Background(), dir+"/*.txt")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, ".txt", chunks[0].Metadata["extension"])
}

func TestProcessURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Remote document content served for pipeline testing."))
	}))
	defer server.Close()

	pipeline, err := NewPipeline(
		WithPipelineChunker(newPipelineChunker(t)),
		WithPipelineLoader(NewLoader(SetTempDir(t.TempDir()))),
	)
	require.NoError(t, err)

	chunks, err := pipeline.ProcessURL(context.Background(), server.URL+"/remote.txt")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Text, "Remote document content")
	assert.Equal(t, server.URL+"/remote.txt", chunks[0].Metadata["source_url"])
}

func TestPipelineAccessors(t *testing.T) {
	pipeline, err := NewPipeline()
	require.NoError(t, err)
	require.NotNil(t, pipeline.Chunker())
	require.NotNil(t, pipeline.Loader())

	_, err = pipeline.ProcessText("A reasonably sized piece of text that the default chunker keeps whole.", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pipeline.Chunker().Statistics().TextsProcessed)
}
