package seg

import "strings"

// splitFixedSize slides a fixed character window across the text. When
// RespectSentenceBoundary is set, each window prefers to cut at the last
// sentence end it contains, then at the last word boundary, before falling
// back to a hard cut at the window edge. Offsets are in runes so multi-byte
// characters never split mid-character.
//
// The window advances to cut-ChunkOverlap. When the overlap is large enough
// to stall or rewind the window (including ChunkOverlap >= ChunkSize), the
// overlap is skipped for that step and the window resumes at the cut, so the
// walk always terminates.
func (tc *TextChunker) splitFixedSize(text string) []string {
	runes := []rune(text)
	n := len(runes)
	if n <= tc.ChunkSize {
		return []string{text}
	}

	var segments []string
	start := 0
	for start < n {
		end := start + tc.ChunkSize
		if end >= n {
			if segment := strings.TrimSpace(string(runes[start:])); segment != "" {
				segments = append(segments, segment)
			}
			break
		}

		cut := end
		if tc.RespectSentenceBoundary {
			if m := lastSentenceEnd(runes, start, end); m > start {
				cut = m
			} else if w := lastWordBoundary(runes, start, end); w > start {
				cut = w
			}
		}

		if segment := strings.TrimSpace(string(runes[start:cut])); segment != "" {
			segments = append(segments, segment)
		}

		next := cut - tc.ChunkOverlap
		if next <= start {
			next = cut
		}
		start = next
	}

	return segments
}
