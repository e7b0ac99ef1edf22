package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/tagforge/internal/config"
	"github.com/conneroisu/tagforge/internal/errors"
	"github.com/conneroisu/tagforge/internal/scanner"
	"github.com/conneroisu/tagforge/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Watch for file changes and re-transform sources",
	Long: `Watch the configured scan paths and re-run the transform pipeline on
every modified source file. Rapid bursts of changes are debounced into a
single run.

Examples:
  tagforge watch                  # Watch all configured paths
  tagforge watch --verbose        # Watch with per-file output`,
	RunE: runWatch,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Verbose output")
	registerGeneratorFlags(watchCmd.Flags())
}

func runWatch(cmd *cobra.Command, args []string) error {
	bindGeneratorFlags(cmd.Flags())

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger()
	collector := errors.NewCollector()
	sourceScanner := scanner.New(cfg.Files.Extensions, cfg.Files.ExcludePatterns)

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	fileWatcher, err := watcher.NewFileWatcher(debounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.ExtensionFilter(cfg.Files.Extensions))
	fileWatcher.AddFilter(watcher.ExcludeFilter(cfg.Files.ExcludePatterns))
	fileWatcher.AddFilter(watcher.NoVendorFilter)

	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		if watchVerbose {
			fmt.Printf("📁 File changes detected:\n")
			for _, event := range events {
				fmt.Printf("   %s: %s\n", event.Type, event.Path)
			}
		} else {
			fmt.Printf("📁 %d file(s) changed\n", len(events))
		}

		for _, event := range events {
			if event.Type == watcher.EventTypeDeleted {
				continue
			}

			// Editors fire write events without content changes;
			// the scanner's content hash filters those out.
			changed, err := sourceScanner.Changed(event.Path)
			if err != nil || !changed {
				continue
			}

			collector.Clear()
			if err := transformFile(event.Path, cfg, logger, collector); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to transform %s: %v\n", event.Path, err)
				continue
			}
			if collector.HasErrors() {
				for _, fe := range collector.FileErrors() {
					fmt.Fprintf(os.Stderr, "   %s: %s\n", fe.File, fe.Message)
				}
			} else {
				fmt.Printf("✨ %s\n", event.Path)
			}
		}

		return nil
	})

	fmt.Println("🔍 Setting up file watching...")
	for _, path := range cfg.Files.ScanPaths {
		if err := fileWatcher.AddRecursive(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to watch path %s: %v\n", path, err)
		} else {
			fmt.Printf("   - Watching: %s\n", path)
		}
	}

	// Transform everything once so the watch starts from a clean state.
	fmt.Println("📁 Performing initial transform...")
	if err := initialTransform(cfg, sourceScanner, collector); err != nil {
		fmt.Fprintf(os.Stderr, "Initial transform failed: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileWatcher.Start(ctx)

	fmt.Println("👀 Watching for changes... (Press Ctrl+C to stop)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	fmt.Println("\n🛑 Stopping file watcher...")
	cancel()

	return nil
}

func initialTransform(cfg *config.Config, s *scanner.SourceScanner, collector *errors.Collector) error {
	logger := newLogger()

	files, err := s.ScanPaths(cfg.Files.ScanPaths)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := transformFile(file.Path, cfg, logger, collector); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to transform %s: %v\n", file.Path, err)
		}
	}

	if watchVerbose {
		fmt.Printf("Found %d source file(s):\n", len(files))
		for _, file := range files {
			fmt.Printf("   - %s\n", file.Path)
		}
	} else {
		fmt.Printf("Found %d source file(s)\n", len(files))
	}

	return nil
}
