package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/rncss"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".rncss.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
verbose: true

convert:
  source:
    - app/styles
  output-dir: app/generated
  format: json
  pretty: true
  concurrency: 4

watch:
  debounce: 1s
`)
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"app/styles"}, k.Strings("convert.source"))
	assert.Equal(t, "app/generated", k.String("convert.output-dir"))
	assert.Equal(t, "json", k.String("convert.format"))
	assert.True(t, k.Bool("convert.pretty"))
	assert.Equal(t, 4, k.Int("convert.concurrency"))
	assert.Equal(t, "1s", k.String("watch.debounce"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.rncss.yaml"))

	config, err := buildConvertConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"styles"}, config.Sources)
	assert.Equal(t, "src/styles", config.OutputDir)
	assert.Equal(t, rncss.FormatJS, config.Format)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
verbose: false
convert:
  format: yaml
`)

	// Set env vars that should override config file
	t.Setenv("RNCSS_CONVERT_FORMAT", "json")
	t.Setenv("RNCSS_VERBOSE", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "json", k.String("convert.format"))
	assert.True(t, k.Bool("verbose"))
}

func TestBuildConvertConfig_Defaults(t *testing.T) {
	resetKoanf()

	config, err := buildConvertConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"styles"}, config.Sources)
	assert.Equal(t, "src/styles", config.OutputDir)
	assert.Equal(t, rncss.FormatJS, config.Format)
	assert.False(t, config.Pretty)
	assert.False(t, config.LiteralObject)
	assert.False(t, config.AuthorizeDisplay)
	assert.Empty(t, config.Unsupported)
	assert.Equal(t, 0, config.Concurrency)
	assert.Equal(t, []string{"**/*.css", "**/*.scss", "**/*.sass"}, config.Includes)
	assert.Equal(t, []string{"**/node_modules/**"}, config.Excludes)
}

func TestBuildConvertConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
convert:
  source: src/css
  output-dir: gen/out
  format: yaml
  literal-object: true
  authorize-display: true
  unsupported: [float, cursor]
  include:
    - "**/*.scss"
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildConvertConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/css"}, config.Sources)
	assert.Equal(t, "gen/out", config.OutputDir)
	assert.Equal(t, rncss.FormatYAML, config.Format)
	assert.True(t, config.LiteralObject)
	assert.True(t, config.AuthorizeDisplay)
	assert.Equal(t, []string{"float", "cursor"}, config.Unsupported)
	assert.Equal(t, []string{"**/*.scss"}, config.Includes)
}

func TestBuildConvertConfig_ArgsOverrideSources(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
convert:
  source: from-file
`)
	require.NoError(t, loadConfigFromPath(configPath))

	config, err := buildConvertConfig([]string{"a.css", "b.scss"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.css", "b.scss"}, config.Sources)
}

func TestBuildConvertConfig_InvalidFormat(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
convert:
  format: xml
`)
	require.NoError(t, loadConfigFromPath(configPath))

	_, err := buildConvertConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestBuildConvertConfig_EnvListIsSplit(t *testing.T) {
	resetKoanf()

	t.Setenv("RNCSS_CONVERT_UNSUPPORTED", "float, cursor,,")
	require.NoError(t, loadConfigFromPath("/nonexistent/.rncss.yaml"))

	config, err := buildConvertConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"float", "cursor"}, config.Unsupported)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	resetKoanf()

	configPath := writeConfig(t, `
convert:
  output-dir: from-file
  format: yaml
`)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", defaultConfigPath, "")
	addConvertFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", configPath, "--format", "json"}))
	require.NoError(t, loadConfig(cmd))

	config, err := buildConvertConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, rncss.FormatJSON, config.Format, "explicit flag wins")
	assert.Equal(t, "from-file", config.OutputDir, "unset flag default must not shadow the file")
}

func TestWatchDebounce(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		want    time.Duration
		wantErr bool
	}{
		{name: "default", config: "", want: 300 * time.Millisecond},
		{name: "configured", config: "watch:\n  debounce: 2s\n", want: 2 * time.Second},
		{name: "invalid", config: "watch:\n  debounce: soon\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			require.NoError(t, loadConfigFromPath(writeConfig(t, tt.config)))

			got, err := watchDebounce()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".rncss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "convert:")
	assert.Contains(t, string(data), "output-dir: src/styles")
	assert.Contains(t, string(data), "watch:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".rncss.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".rncss.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".rncss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "convert:")
}

func TestInitConfig_LoadsAsDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath(writeConfig(t, defaultConfig)))

	config, err := buildConvertConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"styles"}, config.Sources)
	assert.Equal(t, "src/styles", config.OutputDir)
	assert.Equal(t, rncss.FormatJS, config.Format)
	assert.Equal(t, []string{"**/node_modules/**"}, config.Excludes)
	assert.Empty(t, config.Unsupported)
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, []string{"a"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
