package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seggo/seggo"
	"github.com/seggo/seggo/config"
)

func isGlobPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

func applyLogLevel(name string, verbose bool) {
	if verbose {
		seggo.SetLogLevel(seggo.LogLevelDebug)
		return
	}
	var level seggo.LogLevel
	if err := level.UnmarshalText([]byte(name)); err == nil {
		seggo.SetLogLevel(level)
	}
}

func printChunks(chunks []seggo.Chunk, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(chunks)
	case "text":
		for _, chunk := range chunks {
			fmt.Printf("--- chunk %d/%d (%d chars, %s) ---\n", chunk.Index+1, chunk.TotalChunks, chunk.Size, chunk.Strategy)
			fmt.Println(chunk.Text)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or text)", format)
	}
}

func printStats(pipe *seggo.Pipeline) {
	cs := pipe.Chunker().Statistics()
	ls := pipe.Loader().Statistics()
	fmt.Fprintf(os.Stderr, "texts processed:     %d\n", cs.TextsProcessed)
	fmt.Fprintf(os.Stderr, "chunks created:      %d\n", cs.TotalChunksCreated)
	fmt.Fprintf(os.Stderr, "avg chunk size:      %.1f\n", cs.AvgChunkSize)
	fmt.Fprintf(os.Stderr, "avg chunks per text: %.1f\n", cs.AvgChunksPerText)
	fmt.Fprintf(os.Stderr, "files found:         %d\n", ls.TotalFilesFound)
	fmt.Fprintf(os.Stderr, "files processed:     %d\n", ls.FilesProcessed)
	fmt.Fprintf(os.Stderr, "files failed:        %d\n", ls.FilesFailed)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		cfg = config.DefaultConfig()
	}

	rootCmd := &cobra.Command{
		Use:   "seggo",
		Short: "Split documents into retrieval-ready chunks",
	}

	var (
		size             int
		overlap          int
		strategy         string
		minSize          int
		sentenceBoundary bool
		clean            bool
		recursive        bool
		output           string
		showStats        bool
		verbose          bool
	)

	chunkCmd := &cobra.Command{
		Use:   "chunk [paths...]",
		Short: "Chunk files, directories or glob patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyLogLevel(cfg.LogLevel, verbose)

			parsed, err := seggo.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			chunker, err := seggo.NewChunker(
				seggo.ChunkSize(size),
				seggo.ChunkOverlap(overlap),
				seggo.MinChunkSize(minSize),
				seggo.WithStrategy(parsed),
				seggo.RespectSentenceBoundary(sentenceBoundary),
			)
			if err != nil {
				return err
			}

			loader := seggo.NewLoader(
				seggo.WithRecursive(recursive),
				seggo.WithMaxFileSize(cfg.MaxFileSize),
				seggo.WithLoaderTimeout(cfg.Timeout),
			)

			opts := []seggo.PipelineOption{
				seggo.WithPipelineChunker(chunker),
				seggo.WithPipelineLoader(loader),
			}
			if clean {
				opts = append(opts, seggo.WithPipelineCleaner(seggo.NewCleaner(
					seggo.Lowercase(cfg.Lowercase),
					seggo.RemoveURLs(cfg.RemoveURLs),
					seggo.RemoveEmails(cfg.RemoveEmails),
				)))
			} else {
				opts = append(opts, seggo.WithoutCleaning())
			}
			pipe, err := seggo.NewPipeline(opts...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var chunks []seggo.Chunk
			for _, arg := range args {
				info, statErr := os.Stat(arg)
				switch {
				case statErr == nil && info.IsDir():
					batch, err := pipe.ProcessDirectory(ctx, arg)
					if err != nil {
						return err
					}
					chunks = append(chunks, batch...)
				case statErr == nil:
					batch, err := pipe.ProcessFile(ctx, arg)
					if err != nil {
						return err
					}
					chunks = append(chunks, batch...)
				case isGlobPattern(arg):
					batch, err := pipe.ProcessGlob(ctx, arg)
					if err != nil {
						return err
					}
					chunks = append(chunks, batch...)
				default:
					return fmt.Errorf("cannot read %s: %w", arg, statErr)
				}
			}

			if err := printChunks(chunks, output); err != nil {
				return err
			}
			if showStats {
				printStats(pipe)
			}
			return nil
		},
	}
	chunkCmd.Flags().IntVar(&size, "size", cfg.ChunkSize, "Target chunk size in characters")
	chunkCmd.Flags().IntVar(&overlap, "overlap", cfg.ChunkOverlap, "Characters repeated between chunks")
	chunkCmd.Flags().StringVar(&strategy, "strategy", cfg.Strategy, "Chunking strategy: fixed_size, sentence, paragraph, semantic or recursive")
	chunkCmd.Flags().IntVar(&minSize, "min-size", cfg.MinChunkSize, "Smallest chunk worth keeping")
	chunkCmd.Flags().BoolVar(&sentenceBoundary, "sentence-boundary", cfg.SentenceBoundary, "Prefer cutting at sentence ends")
	chunkCmd.Flags().BoolVar(&clean, "clean", cfg.CleanText, "Normalize text before chunking")
	chunkCmd.Flags().BoolVar(&recursive, "recursive", cfg.Recursive, "Descend into subdirectories")
	chunkCmd.Flags().StringVar(&output, "output", "text", "Output format: json or text")
	chunkCmd.Flags().BoolVar(&showStats, "stats", false, "Print chunker and loader statistics to stderr")
	chunkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported file formats by category",
		Run: func(cmd *cobra.Command, args []string) {
			groups := seggo.SupportedExtensions()
			for _, category := range slices.Sorted(maps.Keys(groups)) {
				fmt.Printf("%-10s %s\n", category, strings.Join(groups[category], " "))
			}
		},
	}

	rootCmd.AddCommand(chunkCmd, formatsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
