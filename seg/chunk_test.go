package seg

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetGlobalLogLevel(LogLevelOff)
	os.Exit(m.Run())
}

func TestNewTextChunkerDefaults(t *testing.T) {
	tc, err := NewTextChunker()
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, tc.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, tc.ChunkOverlap)
	assert.Equal(t, StrategyFixedSize, tc.Strategy)
	assert.Equal(t, DefaultMinChunkSize, tc.MinChunkSize)
	assert.True(t, tc.RespectSentenceBoundary)
	assert.NotNil(t, tc.SentenceSplitter)
}

func TestNewTextChunkerValidation(t *testing.T) {
	cases := []struct {
		name   string
		option TextChunkerOption
	}{
		{"ZeroChunkSize", func(tc *TextChunker) { tc.ChunkSize = 0 }},
		{"NegativeChunkSize", func(tc *TextChunker) { tc.ChunkSize = -5 }},
		{"NegativeOverlap", func(tc *TextChunker) { tc.ChunkOverlap = -1 }},
		{"NegativeMinChunkSize", func(tc *TextChunker) { tc.MinChunkSize = -1 }},
		{"UnknownStrategy", func(tc *TextChunker) { tc.Strategy = ChunkStrategy("bogus") }},
	}
	for _, c := range cases {
		t.Run("ShouldReject"+c.name, func(t *testing.T) {
			_, err := NewTextChunker(c.option)
			assert.Error(t, err)
		})
	}

	t.Run("ShouldAllowOverlapBeyondChunkSize", func(t *testing.T) {
		tc, err := NewTextChunker(func(tc *TextChunker) {
			tc.ChunkSize = 100
			tc.ChunkOverlap = 250
		})
		require.NoError(t, err)
		assert.Equal(t, 250, tc.ChunkOverlap)
	})
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("SENTENCE")
	require.NoError(t, err)
	assert.Equal(t, StrategySentence, s)

	s, err = ParseStrategy(" Fixed_Size ")
	require.NoError(t, err)
	assert.Equal(t, StrategyFixedSize, s)

	_, err = ParseStrategy("unknown")
	assert.Error(t, err)
	_, err = ParseStrategy("")
	assert.Error(t, err)
}

func TestChunkSingleChunk(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 200
		tc.MinChunkSize = 10
	})
	require.NoError(t, err)

	text := "First sentence. Second sentence. Third sentence."
	chunks := tc.Chunk(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 48, chunks[0].Size)
	assert.Equal(t, 1, chunks[0].TotalChunks)
	assert.Equal(t, StrategyFixedSize, chunks[0].Strategy)
	assert.Nil(t, chunks[0].Metadata)
}

func TestChunkPrefersSentenceBoundaries(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 25
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 10
	})
	require.NoError(t, err)

	chunks := tc.Chunk("First sentence. Second sentence. Third sentence.")

	require.Len(t, chunks, 3)
	assert.Equal(t, "First sentence.", chunks[0].Text)
	assert.Equal(t, "Second sentence.", chunks[1].Text)
	assert.Equal(t, "Third sentence.", chunks[2].Text)
	for _, chunk := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(chunk.Text, "."))
	}
}

func TestChunkRejectsShortInput(t *testing.T) {
	tc, err := NewTextChunker()
	require.NoError(t, err)

	assert.Empty(t, tc.Chunk(""))
	assert.Empty(t, tc.Chunk("   \n\t  "))
	assert.Empty(t, tc.Chunk("short"))

	// Rejected input never reaches the statistics.
	assert.Equal(t, ChunkerStats{}, tc.Statistics())
}

func TestChunkRecordFields(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 50
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 1
		tc.RespectSentenceBoundary = false
	})
	require.NoError(t, err)

	chunks := tc.Chunk(strings.Repeat("0123456789", 12))

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, 3, chunk.TotalChunks)
		assert.Equal(t, runeLen(chunk.Text), chunk.Size)
		assert.Equal(t, StrategyFixedSize, chunk.Strategy)
	}
	assert.Equal(t, 50, chunks[0].Size)
	assert.Equal(t, 50, chunks[1].Size)
	assert.Equal(t, 20, chunks[2].Size)
}

func TestChunkWithMetadataCopiesPerChunk(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 10
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 1
		tc.RespectSentenceBoundary = false
	})
	require.NoError(t, err)

	metadata := map[string]any{"source": "doc.txt", "page": 3}
	chunks := tc.ChunkWithMetadata(strings.Repeat("0123456789", 2), metadata)
	require.Len(t, chunks, 2)

	assert.Equal(t, metadata, chunks[0].Metadata)
	assert.Equal(t, metadata, chunks[1].Metadata)

	// Every chunk carries its own copy.
	chunks[0].Metadata["page"] = 99
	assert.Equal(t, 3, metadata["page"])
	assert.Equal(t, 3, chunks[1].Metadata["page"])
}

func TestChunkDropsSegmentsBelowMinimum(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 10
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 10
		tc.RespectSentenceBoundary = false
	})
	require.NoError(t, err)

	// Both window segments trim down to five characters and are dropped.
	chunks := tc.Chunk("abcde     fghij     ")
	assert.Empty(t, chunks)

	stats := tc.Statistics()
	assert.Equal(t, 1, stats.TextsProcessed)
	assert.Equal(t, 0, stats.TotalChunksCreated)
	assert.Equal(t, 0.0, stats.AvgChunkSize)
	assert.Equal(t, 0.0, stats.AvgChunksPerText)
}

func TestStatisticsAccumulation(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 10
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 1
		tc.RespectSentenceBoundary = false
	})
	require.NoError(t, err)

	tc.Chunk(strings.Repeat("0123456789", 3))
	tc.Chunk(strings.Repeat("0123456789", 5))

	stats := tc.Statistics()
	assert.Equal(t, 2, stats.TextsProcessed)
	assert.Equal(t, 8, stats.TotalChunksCreated)
	assert.InDelta(t, 4.0, stats.AvgChunksPerText, 0.0001)
	assert.InDelta(t, 10.0, stats.AvgChunkSize, 0.0001)

	// A call averaging 25/3 characters shifts the running mean of means.
	tc.Chunk("0123456789012345678901234")

	stats = tc.Statistics()
	assert.Equal(t, 3, stats.TextsProcessed)
	assert.Equal(t, 11, stats.TotalChunksCreated)
	assert.InDelta(t, 11.0/3.0, stats.AvgChunksPerText, 0.0001)
	assert.InDelta(t, (10.0+10.0+25.0/3.0)/3.0, stats.AvgChunkSize, 0.0001)
}

func TestStatisticsIgnoreEmptyCallsInSizeAverage(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 10
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 10
		tc.RespectSentenceBoundary = false
	})
	require.NoError(t, err)

	tc.Chunk(strings.Repeat("0123456789", 2))
	tc.Chunk("abcde     fghij     ")

	stats := tc.Statistics()
	assert.Equal(t, 2, stats.TextsProcessed)
	assert.Equal(t, 2, stats.TotalChunksCreated)
	assert.InDelta(t, 1.0, stats.AvgChunksPerText, 0.0001)
	assert.InDelta(t, 10.0, stats.AvgChunkSize, 0.0001)
}

func TestResetStatistics(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.MinChunkSize = 10
	})
	require.NoError(t, err)

	tc.Chunk("First sentence. Second sentence. Third sentence.")
	require.Equal(t, 1, tc.Statistics().TextsProcessed)

	tc.ResetStatistics()
	assert.Equal(t, ChunkerStats{}, tc.Statistics())

	tc.Chunk("First sentence. Second sentence. Third sentence.")
	stats := tc.Statistics()
	assert.Equal(t, 1, stats.TextsProcessed)
	assert.InDelta(t, 48.0, stats.AvgChunkSize, 0.0001)
}

func TestChunkConcurrent(t *testing.T) {
	tc, err := NewTextChunker(func(tc *TextChunker) {
		tc.ChunkSize = 10
		tc.ChunkOverlap = 0
		tc.MinChunkSize = 1
		tc.RespectSentenceBoundary = false
	})
	require.NoError(t, err)

	text := strings.Repeat("0123456789", 3)
	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				chunks := tc.Chunk(text)
				assert.Len(t, chunks, 3)
			}
		}()
	}
	wg.Wait()

	stats := tc.Statistics()
	assert.Equal(t, 100, stats.TextsProcessed)
	assert.Equal(t, 300, stats.TotalChunksCreated)
	assert.InDelta(t, 3.0, stats.AvgChunksPerText, 0.0001)
	assert.InDelta(t, 10.0, stats.AvgChunkSize, 0.0001)
}

func TestChunkStrategyDispatch(t *testing.T) {
	text := "One two three. Four five six.\n\nSeven eight nine. Ten eleven twelve."

	for _, strategy := range []ChunkStrategy{
		StrategyFixedSize,
		StrategySentence,
		StrategyParagraph,
		StrategySemantic,
		StrategyRecursive,
	} {
		t.Run(string(strategy), func(t *testing.T) {
			tc, err := NewTextChunker(func(tc *TextChunker) {
				tc.ChunkSize = 30
				tc.ChunkOverlap = 5
				tc.MinChunkSize = 5
				tc.Strategy = strategy
			})
			require.NoError(t, err)

			chunks := tc.Chunk(text)
			require.NotEmpty(t, chunks)
			for _, chunk := range chunks {
				assert.Equal(t, strategy, chunk.Strategy)
				assert.Equal(t, chunk.Text, strings.TrimSpace(chunk.Text))
				assert.GreaterOrEqual(t, chunk.Size, 5)
			}
		})
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := "One two three. Four five six.\n\nSeven eight nine. Ten eleven twelve."

	for _, strategy := range []ChunkStrategy{
		StrategyFixedSize,
		StrategySentence,
		StrategyParagraph,
		StrategySemantic,
		StrategyRecursive,
	} {
		t.Run(string(strategy), func(t *testing.T) {
			tc, err := NewTextChunker(func(tc *TextChunker) {
				tc.ChunkSize = 30
				tc.ChunkOverlap = 5
				tc.MinChunkSize = 5
				tc.Strategy = strategy
			})
			require.NoError(t, err)

			first := tc.Chunk(text)
			second := tc.Chunk(text)
			assert.Equal(t, first, second)
		})
	}
}
