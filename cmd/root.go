// Package cmd provides the command-line interface for tagforge with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --factory, etc.) - highest priority
//	2. TAGFORGE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (TAGFORGE_GENERATOR_FACTORY_NAME, etc.)
//	4. Configuration files (.tagforge.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tagforge",
	Short: "Transpile inline markup into factory-method calls",
	Long: `Tagforge rewrites XML-like markup embedded in host-language source text
into explicit factory-method calls, so component trees can be authored in a
readable tag syntax while the compiled artifact stays ordinary, fully-typed
procedural code.

Quick Start:
  tagforge init                   Scaffold a .tagforge.yml config
  tagforge generate               Transform all configured sources
  tagforge generate page.jsx      Transform one file
  tagforge watch                  Re-transform on file changes

Command Aliases (for faster typing):
  generate (g), watch (w)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tagforge.yml, can also use TAGFORGE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. TAGFORGE_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .tagforge.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("TAGFORGE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tagforge")
	}

	// Enable automatic environment variable binding with TAGFORGE_ prefix
	// Examples: TAGFORGE_GENERATOR_FACTORY_NAME, TAGFORGE_WATCH_DEBOUNCE_MS
	viper.SetEnvPrefix("TAGFORGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing or malformed config files degrade to defaults without failing.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
