package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/specsync/internal/adapters/driving/api"
	"github.com/custodia-labs/specsync/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the spec directory API",
	Long: `Starts the HTTP API backing the specs web front end. Spec
listings and document details are read through TTL caches, so the
spreadsheet and Drive are only hit when an entry has gone stale.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		directory, err := newDirectory(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		e := api.NewServer(api.NewHandler(directory))
		logger.Info("listening on %s", cfg.Server.ListenAddr)
		return e.Start(cfg.Server.ListenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
