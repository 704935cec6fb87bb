package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veritas/internal/extract"
	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/render"
	"github.com/ppiankov/veritas/internal/sentiment"
)

var (
	sentimentDomain string
	sentimentJSON   bool
)

// sentimentCmd represents the sentiment command
var sentimentCmd = &cobra.Command{
	Use:   "sentiment [text]",
	Short: "Analyze the sentiment of a text",
	Long: `Sentiment scores the tone of the input with the configured LLM, falling
back to keyword scoring. Confidence is capped by the text quality score.

Example:
  veritas sentiment "What a wonderful discovery!"
  cat article.txt | veritas sentiment --domain news --json`,
	RunE: runSentiment,
}

func init() {
	rootCmd.AddCommand(sentimentCmd)

	sentimentCmd.Flags().StringVar(&sentimentDomain, "domain", "", "subject-area hint for the analysis")
	sentimentCmd.Flags().BoolVar(&sentimentJSON, "json", false, "print the result as JSON")
	sentimentCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (gemini, openai, anthropic, ollama, none)")
	sentimentCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runSentiment(cmd *cobra.Command, args []string) error {
	input, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	text := extract.Preprocess(input)
	if text == "" {
		return fmt.Errorf("nothing to analyze")
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

	llmCfg := llm.ConfigFromModel(cfg)
	llmCfg.Logger = logger
	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}
	var scorer sentiment.Scorer
	if provider != nil {
		scorer = sentiment.NewOracleScorer(provider)
	}
	analyzer := sentiment.NewAnalyzer(scorer,
		sentiment.WithTimeout(cfg.LLM.CallTimeout()),
		sentiment.WithLogger(logger),
	)

	result := analyzer.Analyze(cmd.Context(), text, sentimentDomain)
	if sentimentJSON {
		return render.JSON(cmd.OutOrStdout(), result)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), render.SentimentSection(result))
	return err
}
