// Package seggo provides utilities for concurrent document loading and processing.
package seggo

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/seggo/seggo/seg"
)

// ConcurrentLoader extends the basic Loader interface with parallel file
// processing capabilities. It provides efficient handling of large document
// sets by:
//   - Loading files in parallel with a bounded worker count
//   - Preserving the input order in its results
//   - Continuing past per-file failures
//   - Stopping promptly when the context is cancelled
type ConcurrentLoader interface {
	// Embeds the basic Loader interface
	Loader

	// LoadConcurrent loads the given paths in parallel and returns the
	// successfully parsed documents in input order. Files that fail to
	// load are skipped and counted toward the returned error.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - paths: Files to load
	//
	// Returns:
	//   - []Document: Successfully parsed documents, in input order
	//   - error: Context error, or a summary when some files failed
	//
	// Example usage:
	//   loader := seggo.NewConcurrentLoader(8)
	//   docs, err := loader.LoadConcurrent(ctx, paths)
	LoadConcurrent(ctx context.Context, paths []string) ([]Document, error)
}

// concurrentLoaderWrapper wraps the internal loader and adds bounded
// parallel loading on top of it.
type concurrentLoaderWrapper struct {
	internal    *seg.Loader
	concurrency int
}

// NewConcurrentLoader creates a new ConcurrentLoader running up to
// concurrency loads in parallel. A concurrency of zero or less uses one
// worker per CPU. It supports all standard loader options.
//
// Example:
//
//	loader := seggo.NewConcurrentLoader(8,
//	    seggo.WithLoaderTimeout(time.Minute),
//	    seggo.SetTempDir(os.TempDir()),
//	)
func NewConcurrentLoader(concurrency int, opts ...LoaderOption) ConcurrentLoader {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &concurrentLoaderWrapper{
		internal:    seg.NewLoader(opts...),
		concurrency: concurrency,
	}
}

// LoadConcurrent implements the parallel loading strategy.
// It performs the following steps:
//  1. Starts a bounded worker group over the input paths
//  2. Loads each file through the embedded loader
//  3. Records failures without stopping the remaining workers
//  4. Compacts the results back into input order
//
// The worker group is tied to the context, so cancellation stops new work
// and surfaces the context error.
func (clw *concurrentLoaderWrapper) LoadConcurrent(ctx context.Context, paths []string) ([]Document, error) {
	results := make([]*Document, len(paths))
	var failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(clw.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := clw.internal.LoadFile(ctx, path)
			if err != nil {
				failed.Add(1)
				return nil
			}
			results[i] = &doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(paths))
	for _, doc := range results {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}

	if n := failed.Load(); n > 0 {
		return docs, fmt.Errorf("encountered %d errors during loading", n)
	}
	return docs, nil
}

// LoadURL implements the Loader interface by loading a document from a URL.
// This method is inherited from the basic Loader interface.
func (clw *concurrentLoaderWrapper) LoadURL(ctx context.Context, url string) (Document, error) {
	return clw.internal.LoadURL(ctx, url)
}

// LoadFile implements the Loader interface by loading a single file.
// This method is inherited from the basic Loader interface.
func (clw *concurrentLoaderWrapper) LoadFile(ctx context.Context, path string) (Document, error) {
	return clw.internal.LoadFile(ctx, path)
}

// LoadDir implements the Loader interface by loading all supported files
// in a directory. This method is inherited from the basic Loader interface.
func (clw *concurrentLoaderWrapper) LoadDir(ctx context.Context, dir string) ([]Document, error) {
	return clw.internal.LoadDir(ctx, dir)
}

// LoadGlob implements the Loader interface by loading every supported file
// matching the pattern.
func (clw *concurrentLoaderWrapper) LoadGlob(ctx context.Context, pattern string) ([]Document, error) {
	return clw.internal.LoadGlob(ctx, pattern)
}

// LoadFiles implements the Loader interface by loading the given paths
// sequentially. Use LoadConcurrent for parallel loading.
func (clw *concurrentLoaderWrapper) LoadFiles(ctx context.Context, paths []string) ([]Document, error) {
	return clw.internal.LoadFiles(ctx, paths)
}

// Statistics returns a snapshot of the running load counters.
func (clw *concurrentLoaderWrapper) Statistics() LoaderStats {
	return clw.internal.Statistics()
}

// ResetStatistics zeroes the running load counters.
func (clw *concurrentLoaderWrapper) ResetStatistics() {
	clw.internal.ResetStatistics()
}
