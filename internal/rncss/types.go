package rncss

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Declaration is a single property: value pair as written in the source
type Declaration struct {
	Property string // "margin"
	Value    string // "10px 5%"
}

// Rule is a ruleset with one or more selectors and its declarations
type Rule struct {
	Selectors    []string      // [".card", "#header"]
	Declarations []Declaration // In source order
}

// Category classifies how a property value is converted
type Category int

// Property categories
const (
	CategoryPassThrough  Category = iota // Copied verbatim, numeric strings coerced
	CategoryNumerize                     // Dimensional, pixel values become numbers
	CategoryBoxShorthand                 // margin/padding, expanded to four sides
	CategoryUnsupported                  // Dropped unless authorized
)

// String returns a readable category name
func (c Category) String() string {
	switch c {
	case CategoryNumerize:
		return "numerize"
	case CategoryBoxShorthand:
		return "box-shorthand"
	case CategoryUnsupported:
		return "unsupported"
	default:
		return "pass-through"
	}
}

// Value is either a number or a string, never both.
type Value struct {
	num   float64
	str   string
	isNum bool
}

// NumberValue wraps a numeric style value.
func NumberValue(n float64) Value {
	return Value{num: n, isNum: true}
}

// StringValue wraps a textual style value.
func StringValue(s string) Value {
	return Value{str: s}
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool { return v.isNum }

// Number returns the numeric value and whether it was set.
func (v Value) Number() (float64, bool) { return v.num, v.isNum }

// Text returns the string value and whether it was set.
func (v Value) Text() (string, bool) { return v.str, !v.isNum }

// String formats the value the way it appears in generated output.
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return strconv.Quote(v.str)
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = NumberValue(t)
	case string:
		*v = StringValue(t)
	default:
		return fmt.Errorf("style value must be a number or string, got %s", data)
	}
	return nil
}

// MarshalYAML encodes the value as a YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	if v.isNum {
		return v.num, nil
	}
	return v.str, nil
}

// UnmarshalYAML accepts a YAML number or string scalar.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("style value must be a scalar at line %d", node.Line)
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return err
		}
		*v = NumberValue(n)
		return nil
	}
	*v = StringValue(node.Value)
	return nil
}

// StyleObject maps output property names ("marginTop") to values
type StyleObject map[string]Value

// Result maps normalized selector names to their style objects
type Result map[string]StyleObject

// Options controls a single transform call
type Options struct {
	AuthorizeDisplay bool     // Keep "display" declarations
	Unsupported      []string // Extra properties to drop
}

// OutputFormat selects how a Result is serialized
type OutputFormat string

const (
	// FormatJS writes a JavaScript style module (default)
	FormatJS OutputFormat = "js"
	// FormatJSON writes the Result as a JSON object
	FormatJSON OutputFormat = "json"
	// FormatYAML writes the Result as a YAML document
	FormatYAML OutputFormat = "yaml"
)

// Config holds generator configuration
type Config struct {
	Sources          []string     // Files or directories to convert
	OutputDir        string       // "styles"
	Includes         []string     // ["**/*.css", "**/*.scss"]
	Excludes         []string     // ["vendor/**"]
	Format           OutputFormat // js | json | yaml
	Pretty           bool         // Indent generated output
	LiteralObject    bool         // Plain object literal instead of StyleSheet.create
	AuthorizeDisplay bool         // Keep "display" declarations
	Unsupported      []string     // Extra properties to drop
	Concurrency      int          // Files converted in parallel (0 = NumCPU)
	SassBinary       string       // Dart Sass executable ("" = sass on PATH)
	Verbose          bool         // Enable debug logging
}

// TransformOptions returns the per-file transform options for this config.
func (c Config) TransformOptions() Options {
	return Options{
		AuthorizeDisplay: c.AuthorizeDisplay,
		Unsupported:      c.Unsupported,
	}
}

// FileResult describes a single converted stylesheet
type FileResult struct {
	Source    string // Input path
	Output    string // Written module path
	Selectors int    // Number of style objects generated
	Err       error  // Non-nil when conversion failed
}

// GenerateResult contains generation stats
type GenerateResult struct {
	FilesScanned       int
	FilesConverted     int
	SelectorsGenerated int
	Files              []FileResult // Sorted by source path
	Errors             []error
}
