package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meysamhadeli/timekeep/config"
	"github.com/meysamhadeli/timekeep/constants/lipgloss"
	"github.com/meysamhadeli/timekeep/engine"
	"github.com/meysamhadeli/timekeep/reporters"
)

// RootDependencies holds the wired services shared by all subcommands.
type RootDependencies struct {
	Config   *config.Config
	Engine   *engine.Engine
	Reporter *reporters.PtermReporter
}

// rootCmd: timekeep
var rootCmd = &cobra.Command{
	Use:   "timekeep",
	Short: "Preserve file timestamps (mtime) between CI builds, even with fresh git checkouts.",
	Long: `timekeep keeps a content-addressed snapshot of a source tree in a small binary
cache file. On each run it restores the recorded mtimes of files whose content
is unchanged, so build tools that rely on mtime-based staleness checks stop
rebuilding files that did not actually change.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and wires the engine for a subcommand.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(cmd.Root(), cwd)
	reporter := reporters.NewPtermReporter(cfg.Verbose)

	return &RootDependencies{
		Config:   cfg,
		Engine:   engine.NewEngine(cfg.Workers, cfg.SampleLimit, reporter),
		Reporter: reporter,
	}
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
