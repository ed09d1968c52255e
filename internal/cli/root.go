package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is the release version, overridden at build time
var Version = "v0.1.0"

var (
	cfgFile   string
	configErr error // Explicit --config file that could not be read
	verbose   bool
	logger    = zap.NewNop()
)

var v = newViper()

// Alias keys contain dots ("c. gambold"), so nested keys use "::"
func newViper() *viper.Viper {
	return viper.NewWithOptions(viper.KeyDelimiter("::"))
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "creditlens",
	Short: "creditlens - developer contributions across a game series' credits",
	Long: `creditlens extracts developer credits from each game's credits file,
classifies job titles into role categories, merges name variants into one
identity per developer, and reports how the development team carried over
from game to game.

Credits say who was listed, not how much they did. Identity merging only
follows the curated alias table; it never guesses.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "creditlens %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.creditlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = v.BindPFlag("output::verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// Scalar settings that may also come from CREDITLENS_* variables
var envKeys = []string{
	"extraction::sources_dir",
	"output::dir",
	"output::artifact",
	"output::sqlite",
	"output::markdown",
	"cache::enabled",
	"cache::dir",
	"cache::ttl",
	"concurrency::workers",
	"skip_extraction",
	"replace_aliases",
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		v.AddConfigPath(filepath.Join(home, ".creditlens"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// CREDITLENS_OUTPUT_DIR -> output::dir
	v.SetEnvPrefix("CREDITLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer("::", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		configErr = fmt.Errorf("read config %s: %w", cfgFile, err)
	}
}
