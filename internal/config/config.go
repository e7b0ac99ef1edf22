// Package config provides configuration management for tagforge using Viper
// for flexible loading from files, environment variables, and command-line
// flags.
//
// The configuration system supports YAML files, environment variable
// overrides with the TAGFORGE_ prefix, and validation. It manages the
// generator names emitted into transformed output, the source discovery
// paths, and watch-mode settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/conneroisu/tagforge/internal/renderer"
)

type Config struct {
	Generator   GeneratorConfig `yaml:"generator"`
	Files       FilesConfig     `yaml:"files"`
	Watch       WatchConfig     `yaml:"watch"`
	TargetFiles []string        `yaml:"-"` // CLI arguments, not from config file
}

// GeneratorConfig names the factory class and methods emitted into generated
// calls.
type GeneratorConfig struct {
	FactoryName       string `yaml:"factory_name"`
	CreateElementName string `yaml:"create_element_name"`
	CreateTextName    string `yaml:"create_text_name"`
}

// FilesConfig controls source discovery and output placement. A generated
// file is persisted next to its source as source path plus OutputSuffix.
type FilesConfig struct {
	ScanPaths       []string `yaml:"scan_paths"`
	Extensions      []string `yaml:"extensions"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	OutputSuffix    string   `yaml:"output_suffix"`
}

type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle generator names set via viper (workaround for viper key
	// mapping against yaml-tagged structs)
	if viper.IsSet("generator.factory_name") && config.Generator.FactoryName == "" {
		config.Generator.FactoryName = viper.GetString("generator.factory_name")
	}
	if viper.IsSet("generator.create_element_name") && config.Generator.CreateElementName == "" {
		config.Generator.CreateElementName = viper.GetString("generator.create_element_name")
	}
	if viper.IsSet("generator.create_text_name") && config.Generator.CreateTextName == "" {
		config.Generator.CreateTextName = viper.GetString("generator.create_text_name")
	}
	if viper.IsSet("files.output_suffix") && config.Files.OutputSuffix == "" {
		config.Files.OutputSuffix = viper.GetString("files.output_suffix")
	}
	if viper.IsSet("watch.debounce_ms") && config.Watch.DebounceMs == 0 {
		config.Watch.DebounceMs = viper.GetInt("watch.debounce_ms")
	}

	// Handle scan paths set via viper (workaround for viper slice handling)
	if viper.IsSet("files.scan_paths") && len(config.Files.ScanPaths) == 0 {
		config.Files.ScanPaths = viper.GetStringSlice("files.scan_paths")
	}
	if viper.IsSet("files.extensions") && len(config.Files.Extensions) == 0 {
		config.Files.Extensions = viper.GetStringSlice("files.extensions")
	}
	if viper.IsSet("files.exclude_patterns") && len(config.Files.ExcludePatterns) == 0 {
		config.Files.ExcludePatterns = viper.GetStringSlice("files.exclude_patterns")
	}

	// Apply defaults for GeneratorConfig if not set
	if config.Generator.FactoryName == "" {
		config.Generator.FactoryName = "Document"
	}
	if config.Generator.CreateElementName == "" {
		config.Generator.CreateElementName = "CreateElement"
	}
	if config.Generator.CreateTextName == "" {
		config.Generator.CreateTextName = "CreateText"
	}

	// Apply defaults for FilesConfig if not set
	if len(config.Files.ScanPaths) == 0 {
		config.Files.ScanPaths = []string{"./src"}
	}
	if len(config.Files.Extensions) == 0 {
		config.Files.Extensions = []string{".jsx"}
	}
	if len(config.Files.ExcludePatterns) == 0 {
		config.Files.ExcludePatterns = []string{"*_test.jsx", "*.bak"}
	}
	if config.Files.OutputSuffix == "" {
		config.Files.OutputSuffix = ".cs"
	}

	// Apply defaults for WatchConfig if not set
	if config.Watch.DebounceMs == 0 {
		config.Watch.DebounceMs = 300
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// RendererConfig converts the generator section into the renderer's
// read-only config value.
func (c *Config) RendererConfig() renderer.Config {
	return renderer.Config{
		FactoryName:       c.Generator.FactoryName,
		CreateElementName: c.Generator.CreateElementName,
		CreateTextName:    c.Generator.CreateTextName,
	}
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateGeneratorConfig(&config.Generator); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := validateFilesConfig(&config.Files); err != nil {
		return fmt.Errorf("files config: %w", err)
	}

	if config.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch config: debounce_ms must not be negative")
	}

	return nil
}

// validateGeneratorConfig ensures the generator names are plausible
// identifiers, since they are emitted verbatim into output.
func validateGeneratorConfig(config *GeneratorConfig) error {
	for name, value := range map[string]string{
		"factory_name":        config.FactoryName,
		"create_element_name": config.CreateElementName,
		"create_text_name":    config.CreateTextName,
	} {
		if !isIdentifier(value) {
			return fmt.Errorf("%s %q is not a valid identifier", name, value)
		}
	}

	return nil
}

// validateFilesConfig validates source discovery configuration values
func validateFilesConfig(config *FilesConfig) error {
	for _, path := range config.ScanPaths {
		if err := validatePath(path); err != nil {
			return fmt.Errorf("invalid scan path '%s': %w", path, err)
		}
	}

	for _, ext := range config.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	if !strings.HasPrefix(config.OutputSuffix, ".") {
		return fmt.Errorf("output_suffix %q must start with a dot", config.OutputSuffix)
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
