// Package seggo provides a high-level interface for splitting documents into
// chunks sized for embedding and retrieval pipelines.
package seggo

import (
	"github.com/seggo/seggo/seg"
)

// Chunk represents one piece of a chunked text with associated metadata.
// It tracks:
//   - The trimmed text content and its size in characters
//   - The chunk's index and the total count within its batch
//   - The strategy that produced it
//   - A copy of the source document's metadata
type Chunk = seg.Chunk

// ChunkStrategy selects the algorithm used to split text into chunks.
// The set of strategies is closed; NewChunker rejects unknown values.
type ChunkStrategy = seg.ChunkStrategy

// Available chunking strategies.
const (
	// StrategyFixedSize slides a fixed character window with boundary snapping
	StrategyFixedSize = seg.StrategyFixedSize
	// StrategySentence groups whole sentences up to the target size
	StrategySentence = seg.StrategySentence
	// StrategyParagraph groups whole paragraphs up to the target size
	StrategyParagraph = seg.StrategyParagraph
	// StrategySemantic picks sentence or paragraph grouping from structure
	StrategySemantic = seg.StrategySemantic
	// StrategyRecursive splits hierarchically via a separator hierarchy
	StrategyRecursive = seg.StrategyRecursive
)

// ChunkerStats captures running statistics across every text a Chunker has
// processed: totals, the mean chunk size and the mean chunks per text.
type ChunkerStats = seg.ChunkerStats

// Chunker defines the interface for text chunking implementations.
// Implementations split text into chunks according to a configured strategy
// while tracking running statistics.
type Chunker interface {
	// Chunk splits the input text into a slice of Chunks according to the
	// implementation's strategy. Empty or too-short input yields an empty
	// result rather than an error.
	Chunk(text string) []Chunk
	// ChunkWithMetadata behaves like Chunk and attaches a copy of metadata
	// to every returned chunk.
	ChunkWithMetadata(text string, metadata map[string]any) []Chunk
	// Statistics returns a snapshot of the running statistics.
	Statistics() ChunkerStats
	// ResetStatistics zeroes the running statistics.
	ResetStatistics()
}

// ChunkerOption is a function type for configuring Chunker instances.
// It follows the functional options pattern for clean and flexible configuration.
type ChunkerOption = seg.TextChunkerOption

// NewChunker creates a new Chunker with the given options.
// By default, it creates a chunker with:
//   - Chunk size: 500 characters
//   - Chunk overlap: 50 characters
//   - Strategy: fixed_size
//   - Minimum chunk size: 50 characters
//   - Sentence boundaries respected when cutting
//
// Use the provided option functions to customize these settings.
// Configuration problems (a non-positive size, a negative overlap or
// minimum, an unknown strategy) are the only errors it returns.
func NewChunker(options ...ChunkerOption) (Chunker, error) {
	return seg.NewTextChunker(options...)
}

// ChunkSize sets the target size of each chunk in characters.
// This determines how much text will be included in each chunk
// before starting a new one.
func ChunkSize(size int) ChunkerOption {
	return func(tc *seg.TextChunker) {
		tc.ChunkSize = size
	}
}

// ChunkOverlap sets the number of characters repeated between adjacent
// chunks. Overlap helps maintain context across chunk boundaries and
// improves retrieval quality. An overlap at or above the chunk size is
// tolerated: the window then advances without overlapping.
func ChunkOverlap(overlap int) ChunkerOption {
	return func(tc *seg.TextChunker) {
		tc.ChunkOverlap = overlap
	}
}

// MinChunkSize sets the smallest chunk worth keeping, in characters.
// Inputs and output fragments shorter than this are dropped silently.
func MinChunkSize(size int) ChunkerOption {
	return func(tc *seg.TextChunker) {
		tc.MinChunkSize = size
	}
}

// WithStrategy selects the chunking strategy:
//   - StrategyFixedSize: sliding character window with boundary snapping
//   - StrategySentence: greedy sentence grouping
//   - StrategyParagraph: paragraph grouping with fixed-size fallback
//   - StrategySemantic: structure-based choice between the two above
//   - StrategyRecursive: hierarchical splitting over separators
func WithStrategy(strategy ChunkStrategy) ChunkerOption {
	return func(tc *seg.TextChunker) {
		tc.Strategy = strategy
	}
}

// RespectSentenceBoundary controls whether the fixed-size window prefers
// cutting at sentence ends before word boundaries and hard cuts. It is
// enabled by default; disable it for byte-exact window sizes.
func RespectSentenceBoundary(respect bool) ChunkerOption {
	return func(tc *seg.TextChunker) {
		tc.RespectSentenceBoundary = respect
	}
}

// WithSentenceSplitter sets a custom sentence splitter function used by the
// sentence strategy. The function should take a string and return a slice
// of sentences. This allows for:
//   - Custom sentence boundary detection
//   - Language-specific splitting rules
//   - Special handling of abbreviations or formatting
func WithSentenceSplitter(splitter func(string) []string) ChunkerOption {
	return func(tc *seg.TextChunker) {
		tc.SentenceSplitter = splitter
	}
}

// DefaultSentenceSplitter returns the built-in sentence splitter, which cuts
// on runs of sentence-ending punctuation followed by whitespace and skips
// common abbreviations such as "Dr." and "etc.".
func DefaultSentenceSplitter() func(string) []string {
	return seg.SplitSentences
}

// ParseStrategy converts a strategy name such as "sentence" into a
// ChunkStrategy, accepting any case. Unknown names return an error.
func ParseStrategy(name string) (ChunkStrategy, error) {
	return seg.ParseStrategy(name)
}
