package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/meysamhadeli/timekeep/constants/lipgloss"
)

// cacheInfoCmd: timekeep cache-info
var cacheInfoCmd = &cobra.Command{
	Use:   "cache-info",
	Short: "Display information about the cache",
	Long: `The 'cache-info' subcommand loads the snapshot from the cache directory without
touching any source tree and prints its provenance metadata together with a
directory-by-directory breakdown of tracked files.`,
	Run: func(cmd *cobra.Command, args []string) {
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		handleCacheInfoCommand(cmd, cacheDir)
	},
}

func init() {
	cacheInfoCmd.Flags().String("cache-dir", "", "The cache directory containing the timekeep.db file.")
	_ = cacheInfoCmd.MarkFlagRequired("cache-dir")

	rootCmd.AddCommand(cacheInfoCmd)
}

func handleCacheInfoCommand(cmd *cobra.Command, cacheDir string) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		os.Exit(1)
	}

	report, err := rootDependencies.Engine.CacheInfo(cacheDir)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	snapshot := report.Snapshot
	fmt.Println(lipgloss.Blue.Render(fmt.Sprintf("Cache is %s, tracking %d entries (version %d)",
		humanize.Bytes(report.CacheSize), len(snapshot.Entries), snapshot.Version)))
	fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("Crawled %s (%s) on %s from source dir %s",
		humanize.Time(snapshot.CrawlTime),
		snapshot.CrawlTime.Format(time.DateTime),
		snapshot.Hostname,
		snapshot.AbsolutePath)))

	fmt.Println(lipgloss.Blue.Render("📁 Directory Structure:"))
	for _, line := range report.Root.Render() {
		fmt.Println(line)
	}
}
