// Command gleaner executes extraction processors against document layouts
// from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "gleaner",
	Short: "Rule-based data extraction from positioned-text documents",
	Long: `gleaner runs declarative extraction processors against document
layouts: it locates anchors, bounds regions, extracts fields into a
structured tree, computes derived values, and validates the result.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fingerprintCmd)
}

func initConfig() {
	viper.SetEnvPrefix("GLEANER")
	viper.AutomaticEnv()
	setupZap()
}

func setupZap() {
	config := zap.NewDevelopmentConfig()
	if !viper.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	zap.ReplaceGlobals(logger)
}
