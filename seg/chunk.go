// Package seg provides text chunking capabilities for processing documents
// into pieces sized for vector embedding and retrieval.
package seg

import (
	"fmt"
	"maps"
	"strings"
	"unicode/utf8"
)

// Default chunker settings, shared with the config package and the CLI.
const (
	// DefaultChunkSize is the target chunk size in characters
	DefaultChunkSize = 500
	// DefaultChunkOverlap is the character overlap between adjacent chunks
	DefaultChunkOverlap = 50
	// DefaultMinChunkSize is the smallest chunk worth keeping
	DefaultMinChunkSize = 50
)

// ChunkStrategy selects the algorithm used to split a text into chunks.
// The set is closed: NewTextChunker rejects unknown values.
type ChunkStrategy string

const (
	// StrategyFixedSize slides a fixed character window with boundary snapping
	StrategyFixedSize ChunkStrategy = "fixed_size"
	// StrategySentence groups whole sentences up to the target size
	StrategySentence ChunkStrategy = "sentence"
	// StrategyParagraph groups whole paragraphs up to the target size
	StrategyParagraph ChunkStrategy = "paragraph"
	// StrategySemantic picks sentence or paragraph grouping from document structure
	StrategySemantic ChunkStrategy = "semantic"
	// StrategyRecursive splits hierarchically via the langchaingo recursive splitter
	StrategyRecursive ChunkStrategy = "recursive"
)

// ParseStrategy converts a strategy name into a ChunkStrategy, accepting any
// case. It returns an error for names outside the known set.
func ParseStrategy(name string) (ChunkStrategy, error) {
	switch ChunkStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case StrategyFixedSize:
		return StrategyFixedSize, nil
	case StrategySentence:
		return StrategySentence, nil
	case StrategyParagraph:
		return StrategyParagraph, nil
	case StrategySemantic:
		return StrategySemantic, nil
	case StrategyRecursive:
		return StrategyRecursive, nil
	default:
		return "", fmt.Errorf("unknown chunking strategy: %q", name)
	}
}

// valid reports whether s is one of the known strategies.
func (s ChunkStrategy) valid() bool {
	switch s {
	case StrategyFixedSize, StrategySentence, StrategyParagraph, StrategySemantic, StrategyRecursive:
		return true
	}
	return false
}

// Chunk represents one piece of a chunked text together with its position in
// the batch that produced it.
type Chunk struct {
	// Text contains the trimmed content of the chunk
	Text string `json:"text"`
	// Index is the position of this chunk within its batch, starting at 0
	Index int `json:"index"`
	// Size is the chunk length in characters (runes, not bytes)
	Size int `json:"size"`
	// TotalChunks is the number of chunks the same call produced
	TotalChunks int `json:"total_chunks"`
	// Strategy names the strategy that produced this chunk
	Strategy ChunkStrategy `json:"strategy_used"`
	// Metadata carries a copy of the caller-supplied document metadata
	Metadata map[string]any `json:"source_metadata,omitempty"`
}

// Chunker defines the interface for text chunking implementations.
type Chunker interface {
	// Chunk splits the input text into a slice of Chunks according to the
	// implementation's strategy.
	Chunk(text string) []Chunk
	// ChunkWithMetadata behaves like Chunk and attaches a copy of metadata
	// to every returned chunk.
	ChunkWithMetadata(text string, metadata map[string]any) []Chunk
	// Statistics returns a snapshot of the running statistics.
	Statistics() ChunkerStats
	// ResetStatistics zeroes the running statistics.
	ResetStatistics()
}

// TextChunker implements the Chunker interface with several selectable
// strategies. Configuration is fixed at construction; the running statistics
// are the only mutable state, so one TextChunker can serve many goroutines.
type TextChunker struct {
	// ChunkSize is the target size of each chunk in characters
	ChunkSize int
	// ChunkOverlap is the number of characters repeated between adjacent chunks.
	// It may equal or exceed ChunkSize; the window then advances without overlap.
	ChunkOverlap int
	// Strategy selects the splitting algorithm
	Strategy ChunkStrategy
	// MinChunkSize drops chunks shorter than this many characters
	MinChunkSize int
	// RespectSentenceBoundary makes the fixed-size window prefer cutting at
	// sentence ends, then word boundaries, before a hard cut
	RespectSentenceBoundary bool
	// SentenceSplitter is the function the sentence strategy uses to split
	// text into sentences
	SentenceSplitter func(string) []string

	stats statsTracker
}

// TextChunkerOption is a function type for configuring TextChunker instances.
// This follows the functional options pattern for clean and flexible configuration.
type TextChunkerOption func(*TextChunker)

// NewTextChunker creates a new TextChunker with the given options.
// It uses sensible defaults if no options are provided:
//   - ChunkSize: 500 characters
//   - ChunkOverlap: 50 characters
//   - Strategy: fixed_size
//   - MinChunkSize: 50 characters
//   - RespectSentenceBoundary: true
//   - SentenceSplitter: SplitSentences
//
// An invalid configuration is the only hard failure in this package: chunk
// size must be positive, overlap and minimum size must not be negative, and
// the strategy must be one of the known set.
func NewTextChunker(options ...TextChunkerOption) (*TextChunker, error) {
	tc := &TextChunker{
		ChunkSize:               DefaultChunkSize,
		ChunkOverlap:            DefaultChunkOverlap,
		Strategy:                StrategyFixedSize,
		MinChunkSize:            DefaultMinChunkSize,
		RespectSentenceBoundary: true,
		SentenceSplitter:        SplitSentences,
	}

	for _, option := range options {
		option(tc)
	}

	if tc.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", tc.ChunkSize)
	}
	if tc.ChunkOverlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", tc.ChunkOverlap)
	}
	if tc.MinChunkSize < 0 {
		return nil, fmt.Errorf("minimum chunk size must not be negative, got %d", tc.MinChunkSize)
	}
	if !tc.Strategy.valid() {
		return nil, fmt.Errorf("unknown chunking strategy: %q", tc.Strategy)
	}
	if tc.SentenceSplitter == nil {
		tc.SentenceSplitter = SplitSentences
	}

	return tc, nil
}

// Chunk splits the input text into chunks using the configured strategy.
// Empty input, or input shorter than MinChunkSize after trimming, yields an
// empty result; malformed input never causes a failure.
func (tc *TextChunker) Chunk(text string) []Chunk {
	return tc.ChunkWithMetadata(text, nil)
}

// ChunkWithMetadata splits the input text and attaches a copy of metadata to
// every chunk, so downstream consumers can trace each chunk back to its
// source document. The sequence of steps:
//  1. Trim the input and reject anything below MinChunkSize
//  2. Run the configured strategy
//  3. Drop segments shorter than MinChunkSize
//  4. Wrap the survivors with index, size and metadata
//  5. Fold the result into the running statistics
func (tc *TextChunker) ChunkWithMetadata(text string, metadata map[string]any) []Chunk {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || runeLen(trimmed) < tc.MinChunkSize {
		GlobalLogger.Debug("Skipping input below minimum chunk size",
			"length", runeLen(trimmed), "min", tc.MinChunkSize)
		return nil
	}

	GlobalLogger.Debug("Chunking text",
		"strategy", tc.Strategy, "length", runeLen(trimmed))

	var kept []string
	totalSize := 0
	for _, segment := range tc.split(trimmed) {
		segment = strings.TrimSpace(segment)
		size := runeLen(segment)
		if size == 0 || size < tc.MinChunkSize {
			continue
		}
		kept = append(kept, segment)
		totalSize += size
	}

	chunks := make([]Chunk, len(kept))
	for i, segment := range kept {
		chunks[i] = Chunk{
			Text:        segment,
			Index:       i,
			Size:        runeLen(segment),
			TotalChunks: len(kept),
			Strategy:    tc.Strategy,
			Metadata:    maps.Clone(metadata),
		}
	}

	tc.stats.record(len(kept), totalSize)
	GlobalLogger.Debug("Chunking complete", "chunks", len(kept))
	return chunks
}

// split dispatches to the strategy implementation. The strategy set is closed,
// so anything that passed construction lands in one of these cases.
func (tc *TextChunker) split(text string) []string {
	switch tc.Strategy {
	case StrategySentence:
		return tc.splitSentenceGroups(text)
	case StrategyParagraph:
		return tc.splitParagraphGroups(text)
	case StrategySemantic:
		return tc.splitSemantic(text)
	case StrategyRecursive:
		return tc.splitRecursive(text)
	default:
		return tc.splitFixedSize(text)
	}
}

// Statistics returns a snapshot of the statistics accumulated so far.
func (tc *TextChunker) Statistics() ChunkerStats {
	return tc.stats.snapshot()
}

// ResetStatistics zeroes the accumulated statistics.
func (tc *TextChunker) ResetStatistics() {
	tc.stats.reset()
}

// runeLen returns the length of s in characters rather than bytes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
