package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
)

// Version is overridden at build time with -ldflags "-X"
var Version = "v0.1.0"

var (
	cfgFile  string
	verbose  bool
	logLevel string
	logFile  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veritas",
	Short: "Veritas - evidence-weighted claim verification",
	Long: `Veritas checks the claims in a text, a page or a URL against retrieved
evidence and reports a calibrated verdict.

Each claim is judged against local index and web evidence, weighted by
source authority, and aggregated into one of TRUE, MOSTLY_TRUE, MIXED,
MOSTLY_FALSE, FALSE or UNVERIFIED with a confidence. Verified inputs are
cached so near-duplicate questions are answered from memory.

The sentiment of the input is reported alongside, with confidence capped
by the structural quality of the text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Veritas.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "veritas %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veritas/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this rotating file")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, defaults, the config file and VERITAS_* variables
func initConfig() {
	// A missing .env is normal
	_ = godotenv.Load()

	// Seed viper with the defaults so every key is known to AutomaticEnv
	defaults, err := yaml.Marshal(model.DefaultConfig())
	if err == nil {
		viper.SetConfigType("yaml")
		_ = viper.ReadConfig(bytes.NewReader(defaults))
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VERITAS_*, e.g. VERITAS_LLM_PROVIDER
	viper.SetEnvPrefix("VERITAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("llm.api_key")
	_ = viper.BindEnv("llm.base_url")

	err = viper.MergeInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	case errors.As(err, &notFound):
	default:
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
	}
}

// configDir is $HOME/.veritas
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".veritas"), nil
}

// loadConfig merges viper state over the built-in defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the process logger; stdout stays reserved for results
func newLogger(cfg *model.Config) (*logging.ZapLogger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}
