// Package cli wires configuration, storage, sources, and services into the
// talentia commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/talentia-labs/talentia/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "talentia",
	Short: "Semantic CV to job matching engine",
	Long: `Talentia extracts text from uploaded CVs, embeds it with a local or
hosted model, aggregates job postings from several providers, and ranks
postings against each CV by cosine similarity.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "talentia.toml",
		"path to the TOML config file")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}
