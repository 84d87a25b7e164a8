// Package cli wires the cobra command tree for the veracity binary.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/report"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veracity",
	Short: "Veracity - fact-checking pipeline for natural-language text",
	Long: `Veracity extracts factual claims from text, classifies each claim into a
knowledge domain, retrieves evidence from a curated catalogue of trusted
sources, and scores every claim with a confidence and risk verdict.

The output is advisory: it measures how well claims are supported by
available evidence, it does not establish ground truth.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("veracity v%s\n", report.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veracity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and VERACITY_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.veracity")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERACITY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	registerConfigDefaults()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerConfigDefaults registers every config key with viper. Keys set
// only through VERACITY_* environment variables are invisible to
// Unmarshal unless viper already knows them.
func registerConfigDefaults() {
	defaults := model.DefaultConfig()
	viper.SetDefault("acceptance_threshold", defaults.AcceptanceThreshold)
	viper.SetDefault("risk_thresholds.critical_below", defaults.Risk.CriticalBelow)
	viper.SetDefault("risk_thresholds.high_below", defaults.Risk.HighBelow)
	viper.SetDefault("risk_thresholds.medium_below", defaults.Risk.MediumBelow)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("max_concurrent_verifications", defaults.MaxConcurrentVerifications)
	viper.SetDefault("timeout", defaults.Timeout)
}
