package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veritas/internal/render"
	"github.com/ppiankov/veritas/internal/store"
)

var statsJSON bool

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show verification history statistics",
	Long: `Stats summarizes the SQLite store: verified claims, average confidence,
sessions and the verdict distribution.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print statistics as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cmd.Context(), cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	stats, err := db.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if statsJSON {
		return render.JSON(cmd.OutOrStdout(), stats)
	}
	return render.Stats(cmd.OutOrStdout(), stats)
}
