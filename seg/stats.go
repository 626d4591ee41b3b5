package seg

import "sync"

// ChunkerStats captures running statistics across every text processed by a
// TextChunker since construction or the last reset.
type ChunkerStats struct {
	// TextsProcessed counts chunked texts, including ones that produced no chunks
	TextsProcessed int `json:"texts_processed"`
	// TotalChunksCreated counts chunks returned across all calls
	TotalChunksCreated int `json:"total_chunks_created"`
	// AvgChunkSize is the running mean of per-text mean chunk sizes, in characters
	AvgChunkSize float64 `json:"avg_chunk_size"`
	// AvgChunksPerText is the mean number of chunks per processed text
	AvgChunksPerText float64 `json:"avg_chunks_per_text"`
}

// statsTracker guards the running statistics so a single TextChunker can be
// shared across goroutines. The chunking itself is stateless; this is the
// only mutable state a chunker carries.
type statsTracker struct {
	mu      sync.Mutex
	stats   ChunkerStats
	samples int // texts that produced at least one chunk
}

// record folds one call's result into the running statistics. AvgChunkSize is
// a mean of per-call means rather than a global mean over chunks, so a text
// yielding no chunks leaves it untouched.
func (st *statsTracker) record(chunks, totalSize int) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.stats.TextsProcessed++
	st.stats.TotalChunksCreated += chunks
	st.stats.AvgChunksPerText = float64(st.stats.TotalChunksCreated) / float64(st.stats.TextsProcessed)

	if chunks == 0 {
		return
	}
	st.samples++
	callAvg := float64(totalSize) / float64(chunks)
	st.stats.AvgChunkSize += (callAvg - st.stats.AvgChunkSize) / float64(st.samples)
}

// snapshot returns a copy of the current statistics.
func (st *statsTracker) snapshot() ChunkerStats {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.stats
}

// reset returns the statistics to their zero state.
func (st *statsTracker) reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.stats = ChunkerStats{}
	st.samples = 0
}
