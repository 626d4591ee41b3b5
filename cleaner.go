package seggo

import (
	"github.com/seggo/seggo/seg"
)

// ErrTextTooShort reports that cleaning left less text than the configured
// minimum. Callers can detect it with errors.Is.
var ErrTextTooShort = seg.ErrTextTooShort

// Cleaner defines the interface for text normalization ahead of chunking.
// Implementations strip noise (URLs, emails, stray whitespace) and bring
// the text into a canonical Unicode form.
type Cleaner interface {
	// Clean normalizes the text and returns the result. It fails only
	// when the cleaned text falls below the configured minimum length.
	Clean(text string) (string, error)
}

// CleanerOption is a function type for configuring Cleaner instances.
type CleanerOption = seg.TextCleanerOption

// NewCleaner creates a new Cleaner with the given options.
// By default, it:
//   - Removes URLs and email addresses
//   - Collapses whitespace runs while keeping paragraph breaks
//   - Normalizes Unicode to NFC
//   - Requires at least 10 characters after cleaning
//
// Case folding is off by default.
func NewCleaner(options ...CleanerOption) Cleaner {
	return seg.NewTextCleaner(options...)
}

// Lowercase controls whether cleaned text is folded to lower case.
func Lowercase(enabled bool) CleanerOption {
	return func(tc *seg.TextCleaner) {
		tc.Lowercase = enabled
	}
}

// RemoveURLs controls whether http(s) URLs are stripped from the text.
func RemoveURLs(enabled bool) CleanerOption {
	return func(tc *seg.TextCleaner) {
		tc.RemoveURLs = enabled
	}
}

// RemoveEmails controls whether email addresses are stripped from the text.
func RemoveEmails(enabled bool) CleanerOption {
	return func(tc *seg.TextCleaner) {
		tc.RemoveEmails = enabled
	}
}

// CollapseWhitespace controls whether runs of spaces and newlines are
// collapsed. Paragraph breaks survive as a single blank line.
func CollapseWhitespace(enabled bool) CleanerOption {
	return func(tc *seg.TextCleaner) {
		tc.CollapseWhitespace = enabled
	}
}

// NormalizeUnicode controls whether text is normalized to NFC before any
// other cleaning step.
func NormalizeUnicode(enabled bool) CleanerOption {
	return func(tc *seg.TextCleaner) {
		tc.NormalizeUnicode = enabled
	}
}

// MinTextLength sets the minimum number of characters a cleaned text must
// keep for Clean to succeed.
func MinTextLength(n int) CleanerOption {
	return func(tc *seg.TextCleaner) {
		tc.MinLength = n
	}
}
