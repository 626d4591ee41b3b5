package seggo

import (
	"context"
)

// Pipeline wires the three ingestion stages together: a Loader that turns
// sources into documents, an optional Cleaner that normalizes their text,
// and a Chunker that splits the result. Every Process method returns the
// flattened chunks with each document's metadata attached.
//
// Documents rejected by the cleaner are skipped with a warning rather than
// failing the run.
type Pipeline struct {
	loader  Loader
	cleaner Cleaner
	chunker Chunker
	noClean bool
}

// PipelineOption is a function type for configuring Pipeline instances.
type PipelineOption func(*Pipeline)

// WithPipelineLoader sets the loader used to read sources. Defaults to
// NewLoader() with standard settings.
func WithPipelineLoader(loader Loader) PipelineOption {
	return func(p *Pipeline) {
		p.loader = loader
	}
}

// WithPipelineCleaner sets the cleaner applied to document text before
// chunking. Defaults to NewCleaner() with standard settings.
func WithPipelineCleaner(cleaner Cleaner) PipelineOption {
	return func(p *Pipeline) {
		p.cleaner = cleaner
	}
}

// WithPipelineChunker sets the chunker that splits cleaned text. Defaults
// to NewChunker() with standard settings.
func WithPipelineChunker(chunker Chunker) PipelineOption {
	return func(p *Pipeline) {
		p.chunker = chunker
	}
}

// WithoutCleaning disables the cleaning stage entirely. Document text goes
// to the chunker exactly as the loader produced it.
func WithoutCleaning() PipelineOption {
	return func(p *Pipeline) {
		p.noClean = true
	}
}

// NewPipeline creates a Pipeline with the given options, filling any stage
// not supplied with its default implementation.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.chunker == nil {
		chunker, err := NewChunker()
		if err != nil {
			return nil, err
		}
		p.chunker = chunker
	}
	if p.loader == nil {
		p.loader = NewLoader()
	}
	if p.cleaner == nil && !p.noClean {
		p.cleaner = NewCleaner()
	}
	return p, nil
}

// Chunker returns the pipeline's chunker, mainly to read its statistics.
func (p *Pipeline) Chunker() Chunker {
	return p.chunker
}

// Loader returns the pipeline's loader, mainly to read its statistics.
func (p *Pipeline) Loader() Loader {
	return p.loader
}

// ProcessText cleans and chunks a raw string, attaching the given metadata
// to every chunk. The error is always nil today and reserved for future
// stages; a cleaner rejection yields no chunks.
func (p *Pipeline) ProcessText(text string, metadata map[string]any) ([]Chunk, error) {
	cleaned, ok := p.cleanText(text, "inline text")
	if !ok {
		return nil, nil
	}
	return p.chunker.ChunkWithMetadata(cleaned, metadata), nil
}

// ProcessFile loads, cleans and chunks a single file.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) ([]Chunk, error) {
	doc, err := p.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.processDocuments([]Document{doc}), nil
}

// ProcessDirectory loads, cleans and chunks every supported file in a
// directory.
func (p *Pipeline) ProcessDirectory(ctx context.Context, dir string) ([]Chunk, error) {
	docs, err := p.loader.LoadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	return p.processDocuments(docs), nil
}

// ProcessGlob loads, cleans and chunks every supported file matching the
// pattern.
func (p *Pipeline) ProcessGlob(ctx context.Context, pattern string) ([]Chunk, error) {
	docs, err := p.loader.LoadGlob(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return p.processDocuments(docs), nil
}

// ProcessURL downloads, cleans and chunks a remote document.
func (p *Pipeline) ProcessURL(ctx context.Context, url string) ([]Chunk, error) {
	doc, err := p.loader.LoadURL(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.processDocuments([]Document{doc}), nil
}

func (p *Pipeline) processDocuments(docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		cleaned, ok := p.cleanText(doc.Content, docSource(doc))
		if !ok {
			continue
		}
		chunks = append(chunks, p.chunker.ChunkWithMetadata(cleaned, doc.Metadata)...)
	}
	Debug("Pipeline processing complete", "documents", len(docs), "chunks", len(chunks))
	return chunks
}

func (p *Pipeline) cleanText(text, source string) (string, bool) {
	if p.cleaner == nil {
		return text, true
	}
	cleaned, err := p.cleaner.Clean(text)
	if err != nil {
		Warn("Skipping document rejected by cleaner", "source", source, "error", err)
		return "", false
	}
	return cleaned, true
}

func docSource(doc Document) string {
	if s, ok := doc.Metadata["filepath"].(string); ok {
		return s
	}
	if s, ok := doc.Metadata["source_url"].(string); ok {
		return s
	}
	return "document"
}
