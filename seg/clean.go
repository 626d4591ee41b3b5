package seg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMinTextLength is the smallest cleaned text considered worth keeping.
const DefaultMinTextLength = 10

// ErrTextTooShort is returned by TextCleaner.Clean when the cleaned text
// falls below the configured minimum length.
var ErrTextTooShort = errors.New("cleaned text below minimum length")

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern   = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	horizontalRun  = regexp.MustCompile(`[ \t]+`)
	newlinePadding = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	newlineRun     = regexp.MustCompile(`\n{3,}`)
)

// TextCleaner normalizes raw document text before chunking. Cleaning only
// rewrites the text; it never changes how the chunker treats the result.
type TextCleaner struct {
	// Lowercase converts the text to lower case
	Lowercase bool
	// RemoveURLs strips http, https and www links
	RemoveURLs bool
	// RemoveEmails strips email addresses
	RemoveEmails bool
	// CollapseWhitespace squeezes repeated spaces and blank lines while
	// keeping paragraph breaks intact
	CollapseWhitespace bool
	// NormalizeUnicode applies Unicode NFC normalization
	NormalizeUnicode bool
	// MinLength is the minimum character count for valid cleaned text
	MinLength int
}

// TextCleanerOption is a functional option for configuring a TextCleaner.
type TextCleanerOption func(*TextCleaner)

// NewTextCleaner creates a TextCleaner with the given options. The defaults
// remove URLs and emails, collapse whitespace, apply NFC normalization, keep
// the original case, and require at least 10 characters of cleaned text.
func NewTextCleaner(options ...TextCleanerOption) *TextCleaner {
	tc := &TextCleaner{
		RemoveURLs:         true,
		RemoveEmails:       true,
		CollapseWhitespace: true,
		NormalizeUnicode:   true,
		MinLength:          DefaultMinTextLength,
	}

	for _, option := range options {
		option(tc)
	}

	return tc
}

// Clean applies the configured normalization steps in a fixed order:
// newline normalization, NFC, URL and email removal, whitespace collapsing,
// lower-casing, and a final trim. Blank lines survive collapsing as single
// paragraph breaks so paragraph chunking still works downstream.
//
// Returns ErrTextTooShort when the result has fewer than MinLength characters.
func (tc *TextCleaner) Clean(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "\r\n", "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")

	if tc.NormalizeUnicode {
		cleaned = norm.NFC.String(cleaned)
	}
	if tc.RemoveURLs {
		cleaned = urlPattern.ReplaceAllString(cleaned, "")
	}
	if tc.RemoveEmails {
		cleaned = emailPattern.ReplaceAllString(cleaned, "")
	}
	if tc.CollapseWhitespace {
		cleaned = horizontalRun.ReplaceAllString(cleaned, " ")
		cleaned = newlinePadding.ReplaceAllString(cleaned, "\n")
		cleaned = newlineRun.ReplaceAllString(cleaned, "\n\n")
	}
	if tc.Lowercase {
		cleaned = strings.ToLower(cleaned)
	}
	cleaned = strings.TrimSpace(cleaned)

	if runeLen(cleaned) < tc.MinLength {
		return "", fmt.Errorf("%w: %d characters after cleaning", ErrTextTooShort, runeLen(cleaned))
	}
	return cleaned, nil
}
