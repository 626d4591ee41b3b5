// Package seg provides document parsing for the file formats the ingestion
// pipeline understands. The parsing system is designed to be extensible,
// allowing users to register custom parsers for additional format categories
// while keeping a consistent interface.
package seg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat is returned when no parser is registered for a file's
// format category.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format categories used to route files to parsers.
const (
	CategoryText     = "text"
	CategoryCode     = "code"
	CategoryData     = "data"
	CategoryDocument = "document"
)

// supportedFormats maps file extensions to their format category.
var supportedFormats = map[string]string{
	".txt":      CategoryText,
	".md":       CategoryText,
	".markdown": CategoryText,
	".py":       CategoryCode,
	".js":       CategoryCode,
	".java":     CategoryCode,
	".cpp":      CategoryCode,
	".c":        CategoryCode,
	".html":     CategoryCode,
	".css":      CategoryCode,
	".xml":      CategoryCode,
	".json":     CategoryData,
	".csv":      CategoryData,
	".tsv":      CategoryData,
	".pdf":      CategoryDocument,
}

// FileCategory returns the format category for a path based on its extension
// and whether that extension is supported.
func FileCategory(path string) (string, bool) {
	category, ok := supportedFormats[strings.ToLower(filepath.Ext(path))]
	return category, ok
}

// IsSupportedFormat reports whether the file extension is one the default
// parsers can handle.
func IsSupportedFormat(path string) bool {
	_, ok := FileCategory(path)
	return ok
}

// SupportedExtensions returns the supported file extensions grouped by
// format category, each group sorted for stable output.
func SupportedExtensions() map[string][]string {
	grouped := make(map[string][]string)
	for ext, category := range supportedFormats {
		grouped[category] = append(grouped[category], ext)
	}
	for _, exts := range grouped {
		sort.Strings(exts)
	}
	return grouped
}

// DetectFileCategory resolves a file's format category from its extension,
// falling back to content sniffing for unknown extensions so text files with
// unusual names still load. Files that resolve to neither a known extension
// nor a text-like MIME type come back as "unknown".
func DetectFileCategory(filePath string) string {
	if category, ok := FileCategory(filePath); ok {
		return category
	}
	mime, err := mimetype.DetectFile(filePath)
	if err != nil {
		return "unknown"
	}
	switch {
	case mime.Is("application/pdf"):
		return CategoryDocument
	case mime.Is("application/json"):
		return CategoryData
	case strings.HasPrefix(mime.String(), "text/"):
		return CategoryText
	default:
		return "unknown"
	}
}

// Document represents a parsed document with its content and associated
// metadata. The Content field contains the extracted text, while Metadata
// carries details about the document such as its path, category and size.
type Document struct {
	Content  string         // The extracted text content of the document
	Metadata map[string]any // Additional details about the document
}

// Parser defines the interface for document parsing implementations.
// Any type that implements this interface can be registered with the
// ParserManager to handle specific format categories.
type Parser interface {
	// Parse processes a file at the given path and returns a Document.
	// It returns an error if the parsing operation fails.
	Parse(filePath string) (Document, error)
}

// ParserManager coordinates document parsing by managing Parser
// implementations and routing files to the right one based on their
// format category.
type ParserManager struct {
	// fileTypeDetector determines the format category for a file path.
	fileTypeDetector func(string) string
	// parsers stores the registered parsers keyed by format category.
	parsers map[string]Parser
}

// NewParserManager creates a new ParserManager initialized with default
// parsers: text, code and data files parse as text with encoding detection,
// PDF documents go through text extraction.
func NewParserManager() *ParserManager {
	pm := &ParserManager{
		fileTypeDetector: DetectFileCategory,
		parsers:          make(map[string]Parser),
	}

	text := NewTextParser()
	pm.parsers[CategoryText] = text
	pm.parsers[CategoryCode] = text
	pm.parsers[CategoryData] = text
	pm.parsers[CategoryDocument] = NewPDFParser()

	return pm
}

// Parse processes a document using the parser registered for its format
// category. Returns ErrUnsupportedFormat when no parser matches.
func (pm *ParserManager) Parse(filePath string) (Document, error) {
	GlobalLogger.Debug("Starting to parse file", "path", filePath)
	category := pm.fileTypeDetector(filePath)
	parser, ok := pm.parsers[category]
	if !ok {
		GlobalLogger.Error("No parser available for file category", "category", category, "path", filePath)
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filePath)
	}
	doc, err := parser.Parse(filePath)
	if err != nil {
		GlobalLogger.Error("Failed to parse document", "path", filePath, "error", err)
		return Document{}, err
	}
	GlobalLogger.Debug("Successfully parsed document", "path", filePath, "category", category)
	return doc, nil
}

// Detect returns the format category the manager would parse this file as.
func (pm *ParserManager) Detect(filePath string) string {
	return pm.fileTypeDetector(filePath)
}

// SetFileTypeDetector allows customization of how format categories are
// detected, beyond the default extension matching and content sniffing.
func (pm *ParserManager) SetFileTypeDetector(detector func(string) string) {
	pm.fileTypeDetector = detector
}

// AddParser registers a parser for a format category, replacing any default.
func (pm *ParserManager) AddParser(category string, parser Parser) {
	pm.parsers[category] = parser
}

// TextParser implements the Parser interface for plain-text formats: text,
// code and structured data files.
type TextParser struct{}

// NewTextParser creates a new TextParser instance.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse reads the file and decodes it to UTF-8, sniffing the character set
// for content that is not already valid UTF-8.
func (p *TextParser) Parse(filePath string) (Document, error) {
	GlobalLogger.Debug("Starting to parse text file", "path", filePath)
	data, err := os.ReadFile(filePath)
	if err != nil {
		GlobalLogger.Error("Failed to read text file", "path", filePath, "error", err)
		return Document{}, fmt.Errorf("failed to read file: %w", err)
	}
	content, err := decodeText(data)
	if err != nil {
		GlobalLogger.Error("Failed to decode text file", "path", filePath, "error", err)
		return Document{}, fmt.Errorf("failed to decode file: %w", err)
	}
	GlobalLogger.Debug("Successfully parsed text file", "path", filePath)
	return Document{
		Content: content,
		Metadata: map[string]any{
			"file_type": "text",
			"file_path": filePath,
		},
	}, nil
}

// decodeText converts raw bytes to a UTF-8 string. Valid UTF-8 passes
// through untouched; anything else goes through charset detection and
// transformation.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	encoding, name, _ := charset.DetermineEncoding(data, "")
	decoded, _, err := transform.Bytes(encoding.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s content: %w", name, err)
	}
	return string(decoded), nil
}

// PDFParser implements the Parser interface for PDF files using the
// ledongthuc/pdf library for text extraction.
type PDFParser struct{}

// NewPDFParser creates a new PDFParser instance.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Parse extracts the plain text of a PDF page by page and returns it along
// with basic metadata. Returns an error if the PDF cannot be processed.
func (p *PDFParser) Parse(filePath string) (Document, error) {
	GlobalLogger.Debug("Starting to parse PDF", "path", filePath)
	content, err := p.extractText(filePath)
	if err != nil {
		GlobalLogger.Error("Failed to extract text from PDF", "path", filePath, "error", err)
		return Document{}, fmt.Errorf("failed to extract text: %w", err)
	}
	GlobalLogger.Debug("Successfully parsed PDF", "path", filePath)
	return Document{
		Content: content,
		Metadata: map[string]any{
			"file_type": "pdf",
			"file_path": filePath,
		},
	}, nil
}

// extractText walks the PDF page by page, joining page texts with blank
// lines so page breaks read as paragraph breaks downstream.
func (p *PDFParser) extractText(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}

	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n\n"), nil
}
