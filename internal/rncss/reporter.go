package rncss

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// Reporter formats conversion results for the terminal
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a new reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintFiles outputs one line per converted file, followed by error details for failed ones.
func (r *Reporter) PrintFiles(files []FileResult) {
	for _, f := range files {
		if f.Err != nil {
			fmt.Fprintf(r.w, "%s %s\n",
				RenderStyle(StyleRed, "✗", r.useColors),
				RenderStyle(StyleCyan, f.Source, r.useColors))
			for _, err := range multierr.Errors(f.Err) {
				fmt.Fprintf(r.w, "\t%s\n", describeError(err))
			}
			continue
		}

		fmt.Fprintf(r.w, "%s %s %s (%s)\n",
			RenderStyle(StyleGreen, "✓", r.useColors),
			RenderStyle(StyleCyan, f.Source, r.useColors),
			RenderStyle(StyleGray, "-> "+f.Output, r.useColors),
			pluralizeCount(f.Selectors, "selector", "selectors"))
	}
}

// describeError renders shorthand errors with their location details
func describeError(err error) string {
	var se *ShorthandError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s { %s: %s } has %s, expected 1 to 4",
			se.Selector, se.Property, se.Value, pluralizeCount(se.Count, "value", "values"))
	}
	return err.Error()
}

// PrintSummary outputs the totals line
func (r *Reporter) PrintSummary(result GenerateResult) {
	failed := len(result.Errors)

	fmt.Fprintln(r.w, "")
	summary := fmt.Sprintf("%s converted, %s generated",
		pluralizeCount(result.FilesConverted, "file", "files"),
		pluralizeCount(result.SelectorsGenerated, "selector", "selectors"))

	if failed == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, summary, r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s, %s\n", summary,
		RenderStyle(StyleRed, pluralizeCount(failed, "file", "files")+" failed", r.useColors))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
