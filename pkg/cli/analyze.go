package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/imertcoskun/geoint/internal/analyzer"
	"github.com/imertcoskun/geoint/internal/archive"
	"github.com/imertcoskun/geoint/internal/progress"
	"github.com/imertcoskun/geoint/internal/worker"
)

var (
	analyzeJSON        bool
	analyzeConcurrency int
	analyzeArchive     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>...",
	Short: "Analyze image files and report their metadata",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit results as JSON instead of a summary")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "Number of files analyzed in parallel (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeArchive, "archive", false, "Upload images and results to the configured S3 bucket")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	concurrency := cfg.Analyze.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = analyzeConcurrency
	}

	var archiver *archive.Archiver
	if analyzeArchive || cfg.Archive.Enabled {
		a, err := archive.New(ctx, cfg.Archive)
		if err != nil {
			return err
		}
		archiver = a
	}

	var mu sync.Mutex
	results := make([]*analyzer.AnalysisResult, len(args))
	errs := make([]error, len(args))

	reporter := progress.New()
	reporter.Start(len(args))

	pool := worker.NewPool(concurrency)
	for i, path := range args {
		i, path := i, path
		pool.Submit(func() {
			result, err := analyzer.Analyze(path)
			if err == nil && archiver != nil {
				var data []byte
				if data, err = os.ReadFile(path); err == nil {
					err = archiver.Store(ctx, result, data)
				}
			}

			mu.Lock()
			results[i] = result
			errs[i] = err
			mu.Unlock()

			if err != nil {
				reporter.Error(path, err)
				return
			}
			reporter.Complete(path)
		})
	}
	pool.Wait()
	reporter.Finish()

	if analyzeJSON {
		return printJSON(results, errs, args)
	}
	return printSummaries(results, errs, args)
}

func printSummaries(results []*analyzer.AnalysisResult, errs []error, args []string) error {
	var failed int
	for i, path := range args {
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, errs[i])
			failed++
			continue
		}
		fmt.Printf("Analysis summary for %s:\n%s\n", results[i].File, results[i].Summary)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func printJSON(results []*analyzer.AnalysisResult, errs []error, args []string) error {
	out := make([]*analyzer.AnalysisResult, 0, len(results))
	var failed int
	for i, path := range args {
		if errs[i] != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, errs[i])
			failed++
			continue
		}
		out = append(out, results[i])
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Println(string(encoded))

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
