package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IgnoreFailuresEnv is the process-wide override: when set to a truthy
// value it disables failure gating for nonzero bug counts. It is read
// once per invocation and threaded into the gate as a plain value so the
// gate itself stays pure.
const IgnoreFailuresEnv = "BUILDGATE_IGNORE_FAILURES"

// HistoryConfig configures the verification history store.
type HistoryConfig struct {
	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`

	// KeepDays is the number of days to keep run records (0 = forever)
	KeepDays int `yaml:"keep_days"`
}

// Config represents buildgate configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// ReportPath is where the static-analysis report is expected
	ReportPath string `yaml:"report_path"`

	// ManifestPath is where the plugin-discovery manifest is expected
	ManifestPath string `yaml:"manifest_path"`

	// SourceRoot is the project root containing src/main/java
	SourceRoot string `yaml:"source_root"`

	// SuppressionsPath is the optional markdown suppressions file
	SuppressionsPath string `yaml:"suppressions_path"`

	// IgnoreFailures disables failure gating for nonzero bug counts
	IgnoreFailures bool `yaml:"ignore_failures"`

	// History contains history store configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		ReportPath:       "build/reports/spotbugs/main.xml",
		ManifestPath:     "src/main/resources/plugin.properties",
		SourceRoot:       ".",
		SuppressionsPath: ".buildgate/suppressions.md",
		IgnoreFailures:   false,
		History: HistoryConfig{
			DBPath:   ".buildgate/history.db",
			KeepDays: 90,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.ReportPath != "" {
		cfg.ReportPath = fileCfg.ReportPath
	}
	if fileCfg.ManifestPath != "" {
		cfg.ManifestPath = fileCfg.ManifestPath
	}
	if fileCfg.SourceRoot != "" {
		cfg.SourceRoot = fileCfg.SourceRoot
	}
	if fileCfg.SuppressionsPath != "" {
		cfg.SuppressionsPath = fileCfg.SuppressionsPath
	}
	// IgnoreFailures is explicitly set if present in YAML
	if fileCfg.IgnoreFailures {
		cfg.IgnoreFailures = fileCfg.IgnoreFailures
	}
	if fileCfg.History.DBPath != "" {
		cfg.History.DBPath = fileCfg.History.DBPath
	}
	if fileCfg.History.KeepDays != 0 {
		cfg.History.KeepDays = fileCfg.History.KeepDays
	}

	return cfg, nil
}

// IgnoreFailuresFromEnv reads the process-wide override flag from the
// environment. Recognized truthy values: 1, true, yes, on
// (case-insensitive). Unset or any other value means false.
func IgnoreFailuresFromEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(IgnoreFailuresEnv))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// ResolveIgnoreFailures combines the config file flag with the
// environment override. Either source being set enables the override.
func ResolveIgnoreFailures(cfg *Config) bool {
	return cfg.IgnoreFailures || IgnoreFailuresFromEnv()
}
