// Package seggo provides a high-level interface for document loading and
// processing in text ingestion pipelines. The loader component handles
// various input sources with support for concurrent operations and
// configurable behaviors.
package seggo

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/seggo/seggo/seg"
)

// LoaderStats captures running counters across every load a Loader has
// performed: files found, processed, failed, and total bytes read.
type LoaderStats = seg.LoaderStats

// Loader represents the main interface for loading documents from various sources.
// It provides a unified API for handling:
//   - URLs: Download and process remote documents
//   - Files: Load and process local files
//   - Directories: Process directory contents, recursively by default
//   - Globs: Process every file matching a pattern
//
// The interface is designed to be thread-safe and supports concurrent operations
// with configurable timeouts and error handling.
type Loader interface {
	// LoadURL downloads and processes a document from the given URL.
	// The function handles:
	//   - HTTP/HTTPS downloads
	//   - Timeout and rate-limit management
	//   - Temporary file storage
	//
	// Returns the parsed document and any errors encountered.
	LoadURL(ctx context.Context, url string) (Document, error)

	// LoadFile processes a local file at the given path.
	// The function:
	//   - Verifies file existence and size limits
	//   - Detects the file's format category
	//   - Parses the content and attaches file metadata
	//
	// Returns the parsed document and any errors encountered.
	LoadFile(ctx context.Context, path string) (Document, error)

	// LoadDir processes all supported files in a directory.
	// The function:
	//   - Walks the directory tree
	//   - Skips unsupported formats
	//   - Handles per-file errors gracefully
	//
	// Returns every successfully parsed document and any errors encountered.
	LoadDir(ctx context.Context, dir string) ([]Document, error)

	// LoadGlob processes every supported file matching the pattern.
	// Patterns follow doublestar syntax, so "docs/**/*.md" matches
	// recursively. Unsupported and unreadable matches are skipped.
	LoadGlob(ctx context.Context, pattern string) ([]Document, error)

	// LoadFiles processes the given paths in order, continuing past
	// per-file failures. It stops early only when the context is done.
	LoadFiles(ctx context.Context, paths []string) ([]Document, error)

	// Statistics returns a snapshot of the running load counters.
	Statistics() LoaderStats

	// ResetStatistics zeroes the running load counters.
	ResetStatistics()
}

// loaderWrapper encapsulates the internal loader implementation
// providing a clean interface while maintaining all functionality.
type loaderWrapper struct {
	internal *seg.Loader
}

// LoaderOption is a functional option for configuring a Loader.
// It follows the functional options pattern to provide a clean
// and extensible configuration API.
//
// Common options include:
//   - WithHTTPClient: Custom HTTP client configuration
//   - WithLoaderTimeout: Operation timeout settings
//   - SetTempDir: Temporary storage location
type LoaderOption = seg.LoaderOption

// WithHTTPClient sets a custom HTTP client for the Loader.
// This enables customization of:
//   - Transport settings
//   - Proxy configuration
//   - Authentication mechanisms
//   - Connection pooling
//
// Example:
//
//	client := &http.Client{
//	    Timeout: 60 * time.Second,
//	    Transport: &http.Transport{
//	        MaxIdleConns: 10,
//	        IdleConnTimeout: 30 * time.Second,
//	    },
//	}
//	loader := NewLoader(WithHTTPClient(client))
func WithHTTPClient(client *http.Client) LoaderOption {
	return seg.WithHTTPClient(client)
}

// WithLoaderTimeout sets a custom timeout for URL downloads.
//
// Example:
//
//	// Allow up to two minutes per download
//	loader := NewLoader(WithLoaderTimeout(2 * time.Minute))
func WithLoaderTimeout(timeout time.Duration) LoaderOption {
	return seg.WithTimeout(timeout)
}

// SetTempDir sets the temporary directory for file operations.
// This directory is used for:
//   - Storing downloaded files
//   - Creating temporary copies
//   - Processing large documents
//
// Example:
//
//	// Use a custom temporary directory
//	loader := NewLoader(SetTempDir("/path/to/temp"))
func SetTempDir(dir string) LoaderOption {
	return seg.WithTempDir(dir)
}

// WithRecursive controls whether LoadDir descends into subdirectories.
// Traversal is recursive by default.
//
// Example:
//
//	// Only load files directly inside the directory
//	loader := NewLoader(WithRecursive(false))
func WithRecursive(recursive bool) LoaderOption {
	return seg.WithRecursive(recursive)
}

// WithMaxFileSize caps the size of files the loader will read, in bytes.
// Larger files fail with an error instead of being loaded. The default
// cap is 100 MB.
func WithMaxFileSize(size int64) LoaderOption {
	return seg.WithMaxFileSize(size)
}

// WithRateLimiter applies a rate limiter to URL downloads. Each LoadURL
// call waits for the limiter before issuing its request, which keeps
// bulk ingestion polite toward remote hosts.
//
// Example:
//
//	// At most two downloads per second
//	limiter := rate.NewLimiter(rate.Limit(2), 1)
//	loader := NewLoader(WithRateLimiter(limiter))
func WithRateLimiter(limiter *rate.Limiter) LoaderOption {
	return seg.WithRateLimiter(limiter)
}

// WithParserManager sets the parser manager used to turn raw files into
// documents. Use this to register custom parsers or detectors before
// loading.
func WithParserManager(pm *ParserManager) LoaderOption {
	return seg.WithParserManager(pm)
}

// NewLoader creates a new Loader with the specified options.
// It initializes a loader with sensible defaults and applies
// any provided configuration options.
//
// Default settings:
//   - Standard HTTP client
//   - 30-second download timeout
//   - System temporary directory
//   - Recursive directory traversal
//   - 100 MB file size cap
//
// Example:
//
//	loader := NewLoader(
//	    WithHTTPClient(customClient),
//	    WithLoaderTimeout(time.Minute),
//	    SetTempDir("/custom/temp"),
//	)
func NewLoader(opts ...LoaderOption) Loader {
	return &loaderWrapper{internal: seg.NewLoader(opts...)}
}

// LoadURL downloads and processes a document from the given URL.
// The function handles the entire download process including:
//   - Context and timeout management
//   - HTTP request execution
//   - Response processing
//   - Temporary file management
func (lw *loaderWrapper) LoadURL(ctx context.Context, url string) (Document, error) {
	return lw.internal.LoadURL(ctx, url)
}

// LoadFile processes a local file at the given path.
// The function ensures safe file handling by:
//   - Verifying file existence
//   - Enforcing the configured size cap
//   - Attaching file metadata to the document
//   - Handling processing errors
func (lw *loaderWrapper) LoadFile(ctx context.Context, path string) (Document, error) {
	return lw.internal.LoadFile(ctx, path)
}

// LoadDir processes all supported files in a directory.
// The function provides robust directory handling:
//   - Traversal honoring the recursive setting
//   - Error tolerance (continues on file errors)
//   - Progress tracking through loader statistics
func (lw *loaderWrapper) LoadDir(ctx context.Context, dir string) ([]Document, error) {
	return lw.internal.LoadDir(ctx, dir)
}

// LoadGlob processes every supported file matching the pattern.
func (lw *loaderWrapper) LoadGlob(ctx context.Context, pattern string) ([]Document, error) {
	return lw.internal.LoadGlob(ctx, pattern)
}

// LoadFiles processes the given paths in order.
func (lw *loaderWrapper) LoadFiles(ctx context.Context, paths []string) ([]Document, error) {
	return lw.internal.LoadFiles(ctx, paths)
}

// Statistics returns a snapshot of the running load counters.
func (lw *loaderWrapper) Statistics() LoaderStats {
	return lw.internal.Statistics()
}

// ResetStatistics zeroes the running load counters.
func (lw *loaderWrapper) ResetStatistics() {
	lw.internal.ResetStatistics()
}
