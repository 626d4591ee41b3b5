package seg

import (
	"regexp"
	"strings"
	"unicode"
)

// abbreviations lists tokens whose trailing period does not end a sentence.
// Matching is case-sensitive. Kept as plain data so the rule set is obvious
// and easy to extend.
var abbreviations = map[string]struct{}{
	"Mr":   {},
	"Mrs":  {},
	"Ms":   {},
	"Dr":   {},
	"Prof": {},
	"Sr":   {},
	"Jr":   {},
	"vs":   {},
	"etc":  {},
	"Inc":  {},
	"Ltd":  {},
	"Co":   {},
	"Corp": {},
}

// paragraphBreak matches the blank lines that separate paragraphs.
var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// isSentenceEnder reports whether r can terminate a sentence.
func isSentenceEnder(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isAbbreviation reports whether the punctuation run starting at pos directly
// follows a known abbreviation such as "Dr" or "etc". Only period-led runs
// qualify; "Dr!" is not an abbreviation pattern.
func isAbbreviation(runes []rune, pos int) bool {
	if runes[pos] != '.' {
		return false
	}
	t := pos
	for t > 0 && unicode.IsLetter(runes[t-1]) {
		t--
	}
	if t == pos {
		return false
	}
	_, ok := abbreviations[string(runes[t:pos])]
	return ok
}

// lastSentenceEnd returns the offset just past the final sentence boundary in
// runes[start:end), or -1 when the window contains none. A boundary is a run
// of sentence-ending punctuation followed by whitespace; the returned offset
// includes the whitespace run so the next window starts on the following word.
func lastSentenceEnd(runes []rune, start, end int) int {
	last := -1
	for i := start; i < end; i++ {
		if !isSentenceEnder(runes[i]) {
			continue
		}
		j := i
		for j < end && isSentenceEnder(runes[j]) {
			j++
		}
		if j < end && unicode.IsSpace(runes[j]) && !isAbbreviation(runes, i) {
			k := j
			for k < end && unicode.IsSpace(runes[k]) {
				k++
			}
			last = k
		}
		i = j - 1
	}
	return last
}

// lastWordBoundary returns the offset of the final whitespace rune in
// runes[start:end), or -1 when the window holds a single unbroken word.
func lastWordBoundary(runes []rune, start, end int) int {
	for i := end - 1; i > start; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// SplitSentences splits text into sentences on runs of sentence-ending
// punctuation followed by whitespace, skipping abbreviation periods such as
// "Dr." and "etc.". The result never contains empty strings; text without
// any sentence boundary comes back whole as a single sentence.
func SplitSentences(text string) []string {
	runes := []rune(text)
	n := len(runes)

	var sentences []string
	segStart := 0
	i := 0
	for i < n {
		if !isSentenceEnder(runes[i]) {
			i++
			continue
		}
		j := i
		for j < n && isSentenceEnder(runes[j]) {
			j++
		}
		if j < n && unicode.IsSpace(runes[j]) && !isAbbreviation(runes, i) {
			k := j
			for k < n && unicode.IsSpace(runes[k]) {
				k++
			}
			if sentence := strings.TrimSpace(string(runes[segStart:k])); sentence != "" {
				sentences = append(sentences, sentence)
			}
			segStart = k
			i = k
			continue
		}
		i = j
	}
	if segStart < n {
		if sentence := strings.TrimSpace(string(runes[segStart:])); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	if len(sentences) == 0 {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// SplitParagraphs splits text on blank lines (two or more consecutive
// newlines). Paragraphs are trimmed and empty ones dropped.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, part := range paragraphBreak.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			paragraphs = append(paragraphs, part)
		}
	}
	return paragraphs
}
