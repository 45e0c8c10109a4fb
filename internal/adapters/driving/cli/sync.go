package cli

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the tracker spreadsheet from the live document set",
	Long: `Scans every first-level subfolder of the configured root folder,
extracts metadata from each document (or carries the stored row forward
when the document is unchanged), and atomically replaces the canonical
sheet with the result.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		reconciler, err := newReconciler(ctx, cfg)
		if err != nil {
			return err
		}
		summary, err := reconciler.Reconcile(ctx)
		if err != nil {
			return err
		}

		cmd.Printf("run %s: %d folders, %d documents synced, %d skipped\n",
			summary.RunID, summary.FoldersScanned,
			summary.DocumentsProcessed, summary.DocumentsSkipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
