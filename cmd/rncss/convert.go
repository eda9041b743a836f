package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/rncss"
	"go.uber.org/zap"
)

var convertCmd = &cobra.Command{
	Use:     "convert [paths...]",
	Aliases: []string{"conv"},
	Short:   "Convert stylesheets into React Native style modules",
	Long: `Convert CSS and Sass files into style modules.
Each stylesheet produces one module named after the source file,
containing one style object per selector.`,
	Example: `  rncss convert styles/
  rncss convert app.scss --format json --pretty
  rncss convert --authorize-display --unsupported float,cursor`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
}

// addConvertFlags registers the conversion flags shared by root, convert and watch.
func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("source", []string{"styles"}, "Stylesheet files or directories (positional args take precedence)")
	f.String("output-dir", "src/styles", "Output directory for generated modules")
	f.StringSlice("include", nil, "Glob patterns for stylesheets to include")
	f.StringSlice("exclude", nil, "Glob patterns for stylesheets to exclude")
	f.String("format", "js", "Output format: js|json|yaml")
	f.Bool("pretty", false, "Indent generated output")
	f.Bool("literal-object", false, "Export a plain object literal instead of StyleSheet.create")
	f.Bool("authorize-display", false, "Keep display declarations")
	f.StringSlice("unsupported", nil, "Additional properties to drop")
	f.Int("concurrency", 0, "Files converted in parallel (0 = number of CPUs)")
	f.String("sass-binary", "", "Dart Sass executable (default: sass on PATH)")
	f.String("report", "text", "Report format: text|summary|json|none")
}

func runConvert(_ *cobra.Command, args []string) error {
	config, err := buildConvertConfig(args)
	if err != nil {
		return err
	}

	log, useColors := newCLILogger()
	defer func() { _ = log.Sync() }()

	result, err := rncss.Generate(context.Background(), config, log)
	if result != nil {
		printReport(result, useColors)
	}
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d files failed to convert", len(result.Errors), result.FilesScanned)
	}
	return nil
}

// newCLILogger builds the console logger from the shared verbosity settings.
func newCLILogger() (*zap.Logger, bool) {
	verbose := getBoolWithFallback("verbose", "verbose", false)
	quiet := getBoolWithFallback("quiet", "quiet", false)
	useColors := rncss.ShouldUseColors(getBoolWithFallback("color", "color", false))
	return rncss.NewLogger(verbose, quiet, useColors), useColors
}

func printReport(result *rncss.GenerateResult, useColors bool) {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	format := rncss.DetermineReportFormat(getStringWithFallback("report", "convert.report", "text"), quiet)
	rncss.WriteReport(os.Stdout, result, format, useColors)
}
