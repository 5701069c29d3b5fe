package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meysamhadeli/timekeep/constants/lipgloss"
)

// syncCmd: timekeep sync
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize timestamps between the source directory and cache",
	Long: `The 'sync' subcommand scans the source tree, compares it against the snapshot
stored in the cache directory, restores the recorded mtimes of unchanged files
and writes the fresh snapshot back as the baseline for the next run.`,
	Run: func(cmd *cobra.Command, args []string) {
		sourceDir, _ := cmd.Flags().GetString("source-dir")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		handleSyncCommand(cmd, sourceDir, cacheDir)
	},
}

func init() {
	syncCmd.Flags().String("source-dir", "", "The source directory containing files to preserve timestamps for.")
	syncCmd.Flags().String("cache-dir", "", "The cache directory storing the timestamp database; should be persistent across CI builds.")
	_ = syncCmd.MarkFlagRequired("source-dir")
	_ = syncCmd.MarkFlagRequired("cache-dir")

	rootCmd.AddCommand(syncCmd)
}

func handleSyncCommand(cmd *cobra.Command, sourceDir string, cacheDir string) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		os.Exit(1)
	}

	if _, err := rootDependencies.Engine.Sync(sourceDir, cacheDir); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Sync failed: %v", err)))
		os.Exit(1)
	}
}
