package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meysamhadeli/timekeep/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version     string `mapstructure:"version"`
	Workers     int    `mapstructure:"workers"`
	SampleLimit int    `mapstructure:"sample_limit"`
	Verbose     bool   `mapstructure:"verbose"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "1.0.0",
	Workers:     runtime.NumCPU(),
	SampleLimit: 5,
	Verbose:     false,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("timekeep-config")
		viper.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			// No config file is fine; defaults apply.
			_ = viper.ReadInConfig()
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("workers", DefaultConfig.Workers)
	viper.SetDefault("sample_limit", DefaultConfig.SampleLimit)
	viper.SetDefault("verbose", DefaultConfig.Verbose)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("workers", "TIMEKEEP_WORKERS")
	_ = viper.BindEnv("sample_limit", "TIMEKEEP_SAMPLE_LIMIT")
	_ = viper.BindEnv("verbose", "TIMEKEEP_VERBOSE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("sample_limit", rootCmd.PersistentFlags().Lookup("sample_limit"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains the settings for the application.")

	rootCmd.PersistentFlags().Int("workers", DefaultConfig.Workers, "Number of parallel workers used for scanning and timestamp restoration.")
	rootCmd.PersistentFlags().Int("sample_limit", DefaultConfig.SampleLimit, "Maximum number of per-file events printed for each of the fresh and dirty streams.")
	rootCmd.PersistentFlags().Bool("verbose", DefaultConfig.Verbose, "Print phase timings and per-file events.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
