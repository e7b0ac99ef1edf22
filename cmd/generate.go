package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/tagforge/internal/config"
	"github.com/conneroisu/tagforge/internal/errors"
	"github.com/conneroisu/tagforge/internal/logging"
	"github.com/conneroisu/tagforge/internal/outfile"
	"github.com/conneroisu/tagforge/internal/scanner"
	"github.com/conneroisu/tagforge/internal/transform"
)

var generateCmd = &cobra.Command{
	Use:     "generate [files...]",
	Aliases: []string{"g"},
	Short:   "Transform markup regions in source files into factory calls",
	Long: `Transform every configured source file, or only the files given as
arguments. Each transformed file is written next to its source with the
configured output suffix appended.

Examples:
  tagforge generate                      # All configured scan paths
  tagforge generate src/page.jsx         # One file
  tagforge generate --factory App        # Override the factory class name`,
	RunE: runGenerate,
}

var generateVerbose bool

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Verbose output")
	registerGeneratorFlags(generateCmd.Flags())
}

func runGenerate(cmd *cobra.Command, args []string) error {
	bindGeneratorFlags(cmd.Flags())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.TargetFiles = args

	logger := newLogger()
	collector := errors.NewCollector()

	files, err := discoverSources(cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No source files found")
		return nil
	}

	transformed := 0
	for _, file := range files {
		if err := transformFile(file.Path, cfg, logger, collector); err != nil {
			collector.AddError(err)
			fmt.Fprintf(os.Stderr, "Failed to transform %s: %v\n", file.Path, err)
			continue
		}
		transformed++
	}

	printSummary(transformed, collector)

	if collector.HasErrors() {
		return fmt.Errorf("%d file(s) had errors", len(collector.FileErrors()))
	}
	return nil
}

// discoverSources resolves positional arguments, or falls back to the
// configured scan paths when none were given.
func discoverSources(cfg *config.Config) ([]scanner.SourceFile, error) {
	s := scanner.New(cfg.Files.Extensions, cfg.Files.ExcludePatterns)

	paths := cfg.TargetFiles
	if len(paths) == 0 {
		paths = cfg.Files.ScanPaths
	}

	files, err := s.ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("source discovery failed: %w", err)
	}
	return files, nil
}

// transformFile runs the fixpoint pipeline over one file and persists the
// result. Per-match failures are reported but never abort the file: failed
// regions keep their original text in the output.
func transformFile(path string, cfg *config.Config, logger logging.Logger, collector *errors.Collector) error {
	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewIOError("read_failed", "could not read source file", err).WithLocation(path, 0)
	}

	result := transform.Transform(string(data), cfg.RendererConfig())

	for _, outcome := range result.Report.Outcomes {
		if outcome.Success() {
			continue
		}
		collector.Add(errors.FileError{
			File:     path,
			Original: outcome.Original,
			Message:  outcome.Err.Error(),
		})
		logger.Warn(ctx, outcome.Err, "match failed", "file", path)
	}

	outPath := outfile.OutputPath(path, cfg.Files.OutputSuffix)
	if err := outfile.Write(outPath, []byte(result.Output)); err != nil {
		return err
	}

	if generateVerbose {
		fmt.Printf("   %s -> %s (%d region(s), %d failed, %d pass(es))\n",
			path, outPath, len(result.Report.Outcomes), result.Report.Failed(), result.Report.Passes)
	}

	logger.Debug(ctx, "transformed file",
		"file", path,
		"regions", len(result.Report.Outcomes),
		"failed", result.Report.Failed(),
		"passes", result.Report.Passes)

	return nil
}

func printSummary(transformed int, collector *errors.Collector) {
	if collector.HasErrors() {
		fmt.Printf("⚠️  Transformed %d file(s) with %d error(s)\n", transformed, len(collector.FileErrors()))
		for _, fe := range collector.FileErrors() {
			fmt.Fprintf(os.Stderr, "   %s: %s\n", fe.File, fe.Message)
		}
		return
	}
	fmt.Printf("✅ Transformed %d file(s)\n", transformed)
}

func newLogger() logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})
}
