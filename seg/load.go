// seg/load.go
package seg

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/time/rate"
)

// DefaultMaxFileSize caps how large a single input file may be, in bytes.
const DefaultMaxFileSize = 100 << 20

// ErrEmptyDocument is returned when a file exists but yields no content.
var ErrEmptyDocument = errors.New("document has no content")

// LoaderStats tracks ingestion counters across loader operations.
type LoaderStats struct {
	// TotalFilesFound counts candidate files considered for loading
	TotalFilesFound int `json:"total_files_found"`
	// FilesProcessed counts files successfully turned into documents
	FilesProcessed int `json:"files_processed"`
	// FilesFailed counts files that could not be loaded
	FilesFailed int `json:"files_failed"`
	// TotalSizeBytes sums the on-disk size of processed files
	TotalSizeBytes int64 `json:"total_size_bytes"`
}

// Loader reads supported files from disk or URL and turns them into parsed
// Documents with ingestion metadata attached.
type Loader struct {
	client      *http.Client
	timeout     time.Duration
	tempDir     string
	recursive   bool
	maxFileSize int64
	limiter     *rate.Limiter
	parser      *ParserManager
	logger      Logger

	mu    sync.Mutex
	stats LoaderStats
}

// NewLoader creates a new Loader with the given options.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client:      http.DefaultClient,
		timeout:     30 * time.Second,
		tempDir:     os.TempDir(),
		recursive:   true,
		maxFileSize: DefaultMaxFileSize,
		parser:      NewParserManager(),
		logger:      GlobalLogger,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoaderOption is a functional option for configuring a Loader
type LoaderOption func(*Loader)

// WithHTTPClient sets a custom HTTP client for the Loader
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.client = client
	}
}

// WithTimeout sets a custom timeout for URL downloads
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// WithTempDir sets the temporary directory for downloaded files
func WithTempDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.tempDir = dir
	}
}

// WithLogger sets a custom logger for the Loader
func WithLogger(logger Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithRecursive controls whether LoadDir descends into subdirectories
func WithRecursive(recursive bool) LoaderOption {
	return func(l *Loader) {
		l.recursive = recursive
	}
}

// WithMaxFileSize caps the size of a single input file in bytes; zero
// disables the cap
func WithMaxFileSize(limit int64) LoaderOption {
	return func(l *Loader) {
		l.maxFileSize = limit
	}
}

// WithRateLimiter paces URL downloads through the given limiter
func WithRateLimiter(limiter *rate.Limiter) LoaderOption {
	return func(l *Loader) {
		l.limiter = limiter
	}
}

// WithParserManager replaces the default parser manager
func WithParserManager(pm *ParserManager) LoaderOption {
	return func(l *Loader) {
		l.parser = pm
	}
}

// LoadFile parses a single file into a Document with filename, category,
// size and content-hash metadata attached. Nonexistent, empty, oversized and
// unsupported files all return an error and count as failures.
func (l *Loader) LoadFile(ctx context.Context, path string) (Document, error) {
	l.logger.Debug("Starting LoadFile", "path", path)
	l.found(1)

	doc, err := l.loadFile(path)
	if err != nil {
		l.fail()
		l.logger.Error("Failed to load file", "path", path, "error", err)
		return Document{}, err
	}

	l.logger.Debug("Successfully loaded file", "path", path, "characters", doc.Metadata["character_count"])
	return doc, nil
}

func (l *Loader) loadFile(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}
	if l.maxFileSize > 0 && info.Size() > l.maxFileSize {
		return Document{}, fmt.Errorf("file %s exceeds size limit (%d > %d bytes)", path, info.Size(), l.maxFileSize)
	}

	doc, err := l.parser.Parse(path)
	if err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(doc.Content) == "" {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, path)
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["filename"] = info.Name()
	doc.Metadata["filepath"] = path
	doc.Metadata["extension"] = strings.ToLower(filepath.Ext(path))
	doc.Metadata["category"] = l.parser.Detect(path)
	doc.Metadata["size_bytes"] = info.Size()
	doc.Metadata["character_count"] = runeLen(doc.Content)
	doc.Metadata["content_hash"] = hashContent(doc.Content)

	l.processed(info.Size())
	return doc, nil
}

// LoadDir loads every supported file under dir, descending into
// subdirectories unless WithRecursive(false) was set. Unsupported files are
// skipped; individual load failures are counted and logged but do not stop
// the walk.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Document, error) {
	l.logger.Debug("Starting LoadDir", "dir", dir, "recursive", l.recursive)

	var documents []Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Error("Error accessing path", "path", path, "error", err)
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if !l.recursive && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !IsSupportedFormat(path) {
			l.logger.Debug("Skipping unsupported file", "path", path)
			return nil
		}
		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil // already counted and logged, continue with next file
		}
		documents = append(documents, doc)
		return nil
	})

	if err != nil {
		l.logger.Error("Error walking directory", "dir", dir, "error", err)
		return nil, err
	}

	l.logger.Debug("Successfully loaded directory", "dir", dir, "documents", len(documents))
	return documents, nil
}

// LoadGlob loads every supported file matching a doublestar pattern such as
// "docs/**/*.md".
func (l *Loader) LoadGlob(ctx context.Context, pattern string) ([]Document, error) {
	l.logger.Debug("Starting LoadGlob", "pattern", pattern)

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		l.logger.Error("Invalid glob pattern", "pattern", pattern, "error", err)
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var paths []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() || !IsSupportedFormat(match) {
			continue
		}
		paths = append(paths, match)
	}

	l.logger.Debug("Glob matched files", "pattern", pattern, "count", len(paths))
	return l.LoadFiles(ctx, paths)
}

// LoadFiles loads multiple files sequentially. Failures are counted per file
// while the rest keep loading.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]Document, error) {
	var documents []Document
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return documents, err
		}
		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			continue // already counted and logged
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

// LoadURL downloads a document into the temp dir, parses it like a local
// file, and removes the temporary copy. The optional rate limiter paces
// repeated fetches.
func (l *Loader) LoadURL(ctx context.Context, url string) (Document, error) {
	l.logger.Debug("Starting LoadURL", "url", url)
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			l.logger.Error("Rate limiter wait failed", "url", url, "error", err)
			return Document{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.logger.Error("Failed to create request", "url", url, "error", err)
		return Document{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error("Failed to execute request", "url", url, "error", err)
		return Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Error("Unexpected response status", "url", url, "status", resp.Status)
		return Document{}, fmt.Errorf("unexpected status %s fetching %s", resp.Status, url)
	}

	destPath := filepath.Join(l.tempDir, filepath.Base(url))
	out, err := os.Create(destPath)
	if err != nil {
		l.logger.Error("Failed to create file", "path", destPath, "error", err)
		return Document{}, err
	}

	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(destPath)
		l.logger.Error("Failed to write file content", "path", destPath, "error", copyErr)
		return Document{}, copyErr
	}
	defer os.Remove(destPath)

	doc, err := l.LoadFile(ctx, destPath)
	if err != nil {
		return Document{}, err
	}
	doc.Metadata["source_url"] = url
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		doc.Metadata["content_type"] = ct
	}

	l.logger.Debug("Successfully loaded URL", "url", url)
	return doc, nil
}

// Statistics returns a snapshot of the ingestion counters.
func (l *Loader) Statistics() LoaderStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// ResetStatistics zeroes the ingestion counters.
func (l *Loader) ResetStatistics() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stats = LoaderStats{}
}

func (l *Loader) found(n int) {
	l.mu.Lock()
	l.stats.TotalFilesFound += n
	l.mu.Unlock()
}

func (l *Loader) processed(size int64) {
	l.mu.Lock()
	l.stats.FilesProcessed++
	l.stats.TotalSizeBytes += size
	l.mu.Unlock()
}

func (l *Loader) fail() {
	l.mu.Lock()
	l.stats.FilesFailed++
	l.mu.Unlock()
}

// hashContent returns a short stable fingerprint of document content for
// dedup bookkeeping downstream.
func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:16])
}
