package rncss

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"go.uber.org/multierr"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Files     []JSONFile  `json:"files"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	FilesScanned       int `json:"files_scanned"`
	FilesConverted     int `json:"files_converted"`
	FilesFailed        int `json:"files_failed"`
	SelectorsGenerated int `json:"selectors_generated"`
}

// JSONFile represents a single converted stylesheet
type JSONFile struct {
	Source    string      `json:"source"`
	Output    string      `json:"output,omitempty"`
	Selectors int         `json:"selectors"`
	Errors    []JSONIssue `json:"errors,omitempty"`
}

// JSONIssue represents a single conversion failure
type JSONIssue struct {
	Message  string `json:"message"`
	Selector string `json:"selector,omitempty"` // Set for shorthand errors
	Property string `json:"property,omitempty"`
	Value    string `json:"value,omitempty"`
}

// WriteJSON writes the generate result as JSON
func WriteJSON(w io.Writer, result *GenerateResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts GenerateResult to JSONOutput
func buildJSONOutput(result *GenerateResult) JSONOutput {
	files := make([]JSONFile, len(result.Files))
	for i, f := range result.Files {
		files[i] = JSONFile{
			Source:    f.Source,
			Selectors: f.Selectors,
		}
		if f.Err == nil {
			files[i].Output = f.Output
			continue
		}
		for _, err := range multierr.Errors(f.Err) {
			files[i].Errors = append(files[i].Errors, buildJSONIssue(err))
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			FilesScanned:       result.FilesScanned,
			FilesConverted:     result.FilesConverted,
			FilesFailed:        len(result.Errors),
			SelectorsGenerated: result.SelectorsGenerated,
		},
		Files: files,
	}
}

func buildJSONIssue(err error) JSONIssue {
	issue := JSONIssue{Message: err.Error()}
	var se *ShorthandError
	if errors.As(err, &se) {
		issue.Selector = se.Selector
		issue.Property = se.Property
		issue.Value = se.Value
	}
	return issue
}
