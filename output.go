package rncss

import (
	"io"
	"os"

	"github.com/yacobolo/rncss/internal/rncss"
)

// ReportFormat represents how conversion results are reported
type ReportFormat string

const (
	// ReportText shows one line per file and a summary (default)
	ReportText ReportFormat = "text"
	// ReportSummary shows only the summary line
	ReportSummary ReportFormat = "summary"
	// ReportJSON exports structured data in JSON format (tooling integration)
	ReportJSON ReportFormat = "json"
	// ReportNone prints nothing (exit code only)
	ReportNone ReportFormat = "none"
)

// DetermineReportFormat selects the report format based on flags
func DetermineReportFormat(formatFlag string, quiet bool) ReportFormat {
	// Explicit -quiet flag wins (exit code only)
	if quiet {
		return ReportNone
	}

	switch formatFlag {
	case "summary":
		return ReportSummary
	case "json":
		return ReportJSON
	case "none":
		return ReportNone
	default:
		// Unknown or empty format falls back to text
		return ReportText
	}
}

// WriteReport writes the generate result in the specified format
func WriteReport(w io.Writer, result *GenerateResult, format ReportFormat, useColors bool) {
	switch format {
	case ReportText:
		reporter := rncss.NewReporter(w, useColors)
		reporter.PrintFiles(result.Files)
		reporter.PrintSummary(*result)

	case ReportSummary:
		reporter := rncss.NewReporter(w, useColors)
		reporter.PrintSummary(*result)

	case ReportJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}
	}
}

// ShouldUseColors determines if colors should be enabled for terminal output.
func ShouldUseColors(force bool) bool {
	return rncss.ShouldUseColors(force)
}
