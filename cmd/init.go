package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/tagforge/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a .tagforge.yml configuration file",
	Long: `Write a .tagforge.yml with the default configuration into the current
directory, ready to edit.

Examples:
  tagforge init                   # Create .tagforge.yml
  tagforge init --force           # Overwrite an existing config`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	const configPath = ".tagforge.yml"

	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
	}

	defaults := config.Config{
		Generator: config.GeneratorConfig{
			FactoryName:       "Document",
			CreateElementName: "CreateElement",
			CreateTextName:    "CreateText",
		},
		Files: config.FilesConfig{
			ScanPaths:       []string{"./src"},
			Extensions:      []string{".jsx"},
			ExcludePatterns: []string{"*_test.jsx", "*.bak"},
			OutputSuffix:    ".cs",
		},
		Watch: config.WatchConfig{
			DebounceMs: 300,
		},
	}

	data, err := yaml.Marshal(&defaults)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	fmt.Printf("✅ Created %s\n", configPath)
	return nil
}
