package seg

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// splitSentenceGroups accumulates whole sentences greedily: when joining the
// next sentence would push the buffer past ChunkSize, the buffer is flushed
// as one chunk. Sentences inside a chunk are joined by single spaces. An
// individual sentence longer than ChunkSize is never split; it simply forms
// an oversized chunk of its own.
func (tc *TextChunker) splitSentenceGroups(text string) []string {
	splitter := tc.SentenceSplitter
	if splitter == nil {
		splitter = SplitSentences
	}

	var segments []string
	var buffer []string
	bufLen := 0

	for _, sentence := range splitter(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		sLen := runeLen(sentence)

		candidate := bufLen + sLen
		if len(buffer) > 0 {
			candidate++ // joining space
		}
		if candidate > tc.ChunkSize && len(buffer) > 0 {
			segments = append(segments, strings.Join(buffer, " "))
			buffer = tc.sentenceOverlap(buffer)
			bufLen = spaceJoinedLen(buffer)
		}

		buffer = append(buffer, sentence)
		if bufLen > 0 {
			bufLen++
		}
		bufLen += sLen
	}

	if len(buffer) > 0 {
		segments = append(segments, strings.Join(buffer, " "))
	}
	return segments
}

// sentenceOverlap picks the sentences carried into the next buffer after a
// flush: the last two when they fit the overlap budget together, otherwise
// just the last one. A single-sentence buffer is never carried, since that
// would repeat the entire previous chunk.
func (tc *TextChunker) sentenceOverlap(buffer []string) []string {
	if tc.ChunkOverlap <= 0 || len(buffer) < 2 {
		return nil
	}
	lastTwo := buffer[len(buffer)-2:]
	if spaceJoinedLen(lastTwo) <= tc.ChunkOverlap {
		return []string{lastTwo[0], lastTwo[1]}
	}
	return []string{buffer[len(buffer)-1]}
}

// splitParagraphGroups accumulates whole paragraphs, joined by blank lines,
// flushing when the next paragraph would overflow ChunkSize. A paragraph
// that is itself longer than ChunkSize flushes the pending buffer and is
// handed to the fixed-size window; its pieces join the output directly
// without passing back through grouping.
func (tc *TextChunker) splitParagraphGroups(text string) []string {
	var segments []string
	var buffer []string
	bufLen := 0

	flush := func() {
		if len(buffer) > 0 {
			segments = append(segments, strings.Join(buffer, "\n\n"))
			buffer = nil
			bufLen = 0
		}
	}

	for _, paragraph := range SplitParagraphs(text) {
		pLen := runeLen(paragraph)

		if pLen > tc.ChunkSize {
			flush()
			segments = append(segments, tc.splitFixedSize(paragraph)...)
			continue
		}

		candidate := bufLen + pLen
		if len(buffer) > 0 {
			candidate += 2 // joining blank line
		}
		if candidate > tc.ChunkSize && len(buffer) > 0 {
			last := buffer[len(buffer)-1]
			segments = append(segments, strings.Join(buffer, "\n\n"))
			// Carry the most recent paragraph only when it fits the
			// overlap budget whole; paragraphs are never carried partially.
			if tc.ChunkOverlap > 0 && runeLen(last) <= tc.ChunkOverlap {
				buffer = []string{last}
				bufLen = runeLen(last)
			} else {
				buffer = nil
				bufLen = 0
			}
		}

		buffer = append(buffer, paragraph)
		if bufLen > 0 {
			bufLen += 2
		}
		bufLen += pLen
	}

	flush()
	return segments
}

// splitSemantic picks a grouping strategy from document structure:
// multi-paragraph text groups by paragraph, flatter text by sentence.
func (tc *TextChunker) splitSemantic(text string) []string {
	if len(SplitParagraphs(text)) > 1 {
		return tc.splitParagraphGroups(text)
	}
	return tc.splitSentenceGroups(text)
}

// splitRecursive delegates to langchaingo's recursive character splitter,
// which walks a separator hierarchy (paragraphs, lines, words) to fill
// chunks. The splitter requires overlap < size, so an oversized overlap is
// clamped first. A splitter error degrades to the fixed-size window rather
// than failing the call.
func (tc *TextChunker) splitRecursive(text string) []string {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(tc.ChunkSize),
		textsplitter.WithChunkOverlap(clampOverlap(tc.ChunkOverlap, tc.ChunkSize)),
	)
	segments, err := splitter.SplitText(text)
	if err != nil {
		GlobalLogger.Warn("Recursive splitter failed, falling back to fixed size", "error", err)
		return tc.splitFixedSize(text)
	}
	return segments
}

// clampOverlap keeps the overlap usable for splitters that reject
// overlap >= size.
func clampOverlap(overlap, size int) int {
	if overlap < 0 {
		return 0
	}
	if overlap >= size {
		if size <= 4 {
			return 0
		}
		return size / 4
	}
	return overlap
}

// spaceJoinedLen returns the rune length of parts joined by single spaces.
func spaceJoinedLen(parts []string) int {
	total := 0
	for i, part := range parts {
		if i > 0 {
			total++
		}
		total += runeLen(part)
	}
	return total
}
