package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veritas/internal/factcheck"
	"github.com/ppiankov/veritas/internal/render"
	"github.com/ppiankov/veritas/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check many inputs from a file in parallel",
	Long: `Batch checks one input per line concurrently:
- Blank lines, # comments and duplicate lines are skipped
- Every input runs through the same cache, pipeline and session
- Results are printed in input order

Example:
  veritas batch claims.txt
  veritas batch claims.txt --concurrency 8 --output-dir ./veritas-reports
  veritas batch urls.txt --web --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write one JSON and Markdown report per input to this directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with check
	batchCmd.Flags().StringVar(&userID, "user", "", "user id recorded with the session")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache lookup and write-back")
	batchCmd.Flags().BoolVar(&webSearch, "web", false, "enable web search retrieval")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (gemini, openai, anthropic, ollama, none)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCheckFlags(cmd, cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	rt, err := factcheck.NewRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "⚙️  Checking inputs from %s with %d workers...\n", file, concurrency)

	sess := rt.Sessions.Start(ctx, userID)
	processor := worker.NewBatchProcessor(rt.Service, concurrency)
	results, err := processor.ProcessFile(ctx, sess, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
		}
	}

	if outputDir != "" {
		if err := writeBatchReports(outputDir, results); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "✓ Reports written to %s\n", outputDir)
	}

	stdout := cmd.OutOrStdout()
	if err := render.Batch(stdout, results, render.ColorEnabled(stdout)); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "✓ %d inputs, %d failed (session %s)\n", len(results), failures, sess.ID)

	if len(results) > 0 && failures == len(results) {
		return fmt.Errorf("all %d inputs failed", failures)
	}
	return nil
}

// writeBatchReports writes NNN.json and NNN.md for every successful input
func writeBatchReports(dir string, results []*worker.CheckResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		base := filepath.Join(dir, fmt.Sprintf("%03d", r.Index+1))
		if err := render.WriteJSONFile(base+".json", r.Result); err != nil {
			return fmt.Errorf("write json for input %d: %w", r.Index+1, err)
		}
		if err := render.WriteFile(base+".md", r.Result.Report); err != nil {
			return fmt.Errorf("write markdown for input %d: %w", r.Index+1, err)
		}
	}
	return nil
}
