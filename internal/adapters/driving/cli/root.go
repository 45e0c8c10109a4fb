// Package cli implements the specsync command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/specsync/internal/config"
	"github.com/custodia-labs/specsync/internal/logger"
)

var (
	cfgPath string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "specsync",
	Short: "Track spec documents in a spreadsheet",
	Long: `specsync synchronises metadata about spec documents stored in
Google Drive into a tracker spreadsheet, and serves that metadata to the
specs web front end.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Name() == "version" {
			return nil
		}
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"path to config file (default ~/.specsync/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
