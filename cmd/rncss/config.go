package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/rncss"
)

var k = koanf.New(".")

const defaultConfigPath = ".rncss.yaml"

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	// Unset flags are skipped so their defaults never shadow config file keys.
	fs := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(fs, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (RNCSS_* prefix)
	if err := k.Load(env.Provider("RNCSS_", ".", func(s string) string {
		// RNCSS_CONVERT_FORMAT -> convert.format
		// RNCSS_WATCH_DEBOUNCE -> watch.debounce
		// RNCSS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "RNCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConvertConfig constructs the library's Config struct from koanf state.
// Positional sources take precedence over configured ones.
func buildConvertConfig(args []string) (rncss.Config, error) {
	format, err := rncss.ParseOutputFormat(getStringWithFallback("format", "convert.format", "js"))
	if err != nil {
		return rncss.Config{}, err
	}

	config := rncss.Config{
		OutputDir:        getStringWithFallback("output-dir", "convert.output-dir", "src/styles"),
		Format:           format,
		Pretty:           getBoolWithFallback("pretty", "convert.pretty", false),
		LiteralObject:    getBoolWithFallback("literal-object", "convert.literal-object", false),
		AuthorizeDisplay: getBoolWithFallback("authorize-display", "convert.authorize-display", false),
		Unsupported:      getStringsWithFallback("unsupported", "convert.unsupported", nil),
		Concurrency:      getIntWithFallback("concurrency", "convert.concurrency", 0),
		SassBinary:       getStringWithFallback("sass-binary", "convert.sass-binary", ""),
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		Includes: getStringsWithFallback("include", "convert.include", []string{
			"**/*.css",
			"**/*.scss",
			"**/*.sass",
		}),
		Excludes: getStringsWithFallback("exclude", "convert.exclude", []string{
			"**/node_modules/**",
		}),
	}

	if len(args) > 0 {
		config.Sources = args
	} else {
		config.Sources = getStringsWithFallback("source", "convert.source", []string{"styles"})
	}

	return config, nil
}

// watchDebounce returns the configured debounce delay.
func watchDebounce() (time.Duration, error) {
	raw := getStringWithFallback("debounce", "watch.debounce", "300ms")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid watch debounce %q: %w", raw, err)
	}
	return d, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
// Comma-separated strings (from env vars) are split.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		if !k.Exists(key) {
			continue
		}
		if v := splitList(k.Strings(key)); len(v) > 0 {
			return v
		}
		if s, ok := k.Get(key).(string); ok {
			if v := splitList([]string{s}); len(v) > 0 {
				return v
			}
		}
	}
	return defaultVal
}

// splitList splits comma-separated entries and drops empty ones
func splitList(values []string) []string {
	var result []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
