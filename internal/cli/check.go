package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veritas/internal/factcheck"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/render"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userID      string
	noCache     bool
	webSearch   bool
	showSteps   bool
	showReport  bool
	llmProvider string
	llmModel    string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [text or url]",
	Short: "Fact-check a claim, a text or a web page",
	Long: `Check extracts the verifiable claims of the input, retrieves evidence for
each, judges every evidence item and aggregates a calibrated verdict.

The input is the joined arguments, or stdin when no argument (or "-") is
given. A single http(s) URL is fetched and its visible text is checked.

Example:
  veritas check "The Eiffel Tower is located in Paris."
  veritas check https://example.com/article --web --md report.md
  echo "Vaccines cause autism." | veritas check --json -`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the full result as JSON to this path (- for stdout)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "write the Markdown report to this path")
	checkCmd.Flags().BoolVar(&showSteps, "steps", false, "print the processing steps")
	checkCmd.Flags().BoolVar(&showReport, "report", false, "print the Markdown report instead of the summary tables")

	// Behaviour flags
	checkCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userID, "user", "", "user id recorded with the session")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache lookup and write-back")
	checkCmd.Flags().BoolVar(&webSearch, "web", false, "enable web search retrieval")

	// LLM flags
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (gemini, openai, anthropic, ollama, none)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyCheckFlags overlays explicitly set command flags on cfg
func applyCheckFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("web") {
		cfg.Retrieval.WebEnabled = webSearch
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
}

// readInput joins args, or reads stdin for no args or "-"
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	input, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("nothing to check: pass text, a URL or pipe input on stdin")
	}

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

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	rt, err := factcheck.NewRuntime(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if verbose && rt.Provider != nil && !rt.Provider.IsAvailable(ctx) {
		logger.Warn("cli", "LLM provider is not available; falling back to heuristics", map[string]interface{}{
			"provider": rt.Provider.Name(),
		})
	}

	sess := rt.Sessions.Start(ctx, userID)
	result, err := rt.Service.Check(ctx, sess, input)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	return writeCheckResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
}

// writeCheckResult renders result to stdout and the requested files
func writeCheckResult(stdout, stderr io.Writer, result *model.CheckResult) error {
	if showSteps {
		fmt.Fprint(stderr, render.ThinkingSteps(result.Steps))
	}

	if outMD != "" {
		if err := render.WriteFile(outMD, result.Report); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		fmt.Fprintf(stderr, "✓ Markdown report: %s\n", outMD)
	}

	switch outJSON {
	case "":
	case "-":
		return render.JSON(stdout, result)
	default:
		if err := render.WriteJSONFile(outJSON, result); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		fmt.Fprintf(stderr, "✓ JSON report: %s\n", outJSON)
	}

	if showReport {
		_, err := fmt.Fprintln(stdout, result.Report)
		return err
	}
	return render.Summary(stdout, result, render.ColorEnabled(stdout))
}
