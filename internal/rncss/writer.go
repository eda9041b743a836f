package rncss

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteOptions controls how a Result is serialized
type WriteOptions struct {
	Format        OutputFormat
	Pretty        bool // Indent with two spaces
	LiteralObject bool // js only: export a plain object instead of StyleSheet.create
}

const (
	jsImport        = "import { StyleSheet } from 'react-native';\n\n"
	jsCreatePrefix  = "export default StyleSheet.create("
	jsCreateSuffix  = ");\n"
	jsLiteralPrefix = "export default "
	jsLiteralSuffix = ";\n"
)

// ParseOutputFormat validates a format name. Empty selects js.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "js", "javascript":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want js, json or yaml)", name)
	}
}

// Extension returns the file extension for generated modules.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".js"
	}
}

// WriteStyleModule serializes result to w. Keys are emitted in sorted order.
func WriteStyleModule(w io.Writer, result Result, opts WriteOptions) error {
	if result == nil {
		result = Result{}
	}

	switch opts.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case FormatJSON:
		body, err := encodeJSON(result, opts.Pretty)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", body)
		return err

	default:
		body, err := encodeJSON(result, opts.Pretty)
		if err != nil {
			return err
		}
		if opts.LiteralObject {
			_, err = fmt.Fprintf(w, "%s%s%s", jsLiteralPrefix, body, jsLiteralSuffix)
			return err
		}
		_, err = fmt.Fprintf(w, "%s%s%s%s", jsImport, jsCreatePrefix, body, jsCreateSuffix)
		return err
	}
}

// encodeJSON marshals result without HTML escaping
func encodeJSON(result Result, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// OutputPath returns where the module for input is written:
// outDir/<input base name without extension><format extension>.
func OutputPath(input, outDir string, format OutputFormat) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+format.Extension())
}

// WriteStyleFile writes result to path, creating parent directories.
func WriteStyleFile(path string, result Result, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteStyleModule(&buf, result, opts); err != nil {
		return err
	}

	// #nosec G306 - generated source files are meant to be readable
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
