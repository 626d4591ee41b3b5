package seggo

import (
	"github.com/seggo/seggo/seg"
)

// Document represents a parsed document
type Document = seg.Document

// ParserManager routes files to parsers by format category
type ParserManager = seg.ParserManager

// Format categories recognized by the parser
const (
	CategoryText     = seg.CategoryText
	CategoryCode     = seg.CategoryCode
	CategoryData     = seg.CategoryData
	CategoryDocument = seg.CategoryDocument
)

// Parser defines the interface for parsing documents
type Parser interface {
	Parse(filePath string) (Document, error)
}

// NewParser creates a new Parser with default settings
func NewParser() Parser {
	return seg.NewParserManager()
}

// SetFileTypeDetector sets a custom file type detector
func SetFileTypeDetector(p Parser, detector func(string) string) {
	if pm, ok := p.(*seg.ParserManager); ok {
		pm.SetFileTypeDetector(detector)
	}
}

// WithParser adds a parser for a specific format category
func WithParser(p Parser, category string, parser Parser) {
	if pm, ok := p.(*seg.ParserManager); ok {
		pm.AddParser(category, parser)
	}
}

// TextParser returns a new text parser
func TextParser() Parser {
	return seg.NewTextParser()
}

// PDFParser returns a new PDF parser
func PDFParser() Parser {
	return seg.NewPDFParser()
}

// IsSupportedFormat reports whether the file's extension is recognized
func IsSupportedFormat(path string) bool {
	return seg.IsSupportedFormat(path)
}

// SupportedExtensions returns the recognized extensions grouped by category
func SupportedExtensions() map[string][]string {
	return seg.SupportedExtensions()
}

// DetectFileCategory returns the format category for a file, consulting
// the extension first and content sniffing as a fallback
func DetectFileCategory(filePath string) string {
	return seg.DetectFileCategory(filePath)
}
