package rncss

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() Result {
	return Result{
		"card": {
			"marginTop": NumberValue(10),
			"width":     StringValue("50%"),
		},
		"title": {
			"fontSize":   NumberValue(1.5),
			"fontWeight": StringValue("400"),
		},
	}
}

func TestWriteStyleModule_JS(t *testing.T) {
	tests := []struct {
		name     string
		opts     WriteOptions
		expected string
	}{
		{
			name: "named construct",
			opts: WriteOptions{Format: FormatJS},
			expected: "import { StyleSheet } from 'react-native';\n\n" +
				`export default StyleSheet.create({"card":{"marginTop":10,"width":"50%"},"title":{"fontSize":1.5,"fontWeight":"400"}});` + "\n",
		},
		{
			name: "literal object",
			opts: WriteOptions{Format: FormatJS, LiteralObject: true},
			expected: `export default {"card":{"marginTop":10,"width":"50%"},"title":{"fontSize":1.5,"fontWeight":"400"}};` + "\n",
		},
		{
			name: "pretty literal object",
			opts: WriteOptions{Format: FormatJS, LiteralObject: true, Pretty: true},
			expected: `export default {
  "card": {
    "marginTop": 10,
    "width": "50%"
  },
  "title": {
    "fontSize": 1.5,
    "fontWeight": "400"
  }
};
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteStyleModule(&buf, sampleResult(), tt.opts))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteStyleModule_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStyleModule(&buf, sampleResult(), WriteOptions{Format: FormatJSON, Pretty: true}))

	var decoded Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(sampleResult(), decoded, valueComparer); diff != "" {
		t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("}\n")))
}

func TestWriteStyleModule_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStyleModule(&buf, sampleResult(), WriteOptions{Format: FormatYAML}))
	assert.Contains(t, buf.String(), "card:\n  marginTop: 10\n")
	assert.Contains(t, buf.String(), `fontWeight: "400"`)

	var decoded Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(sampleResult(), decoded, valueComparer); diff != "" {
		t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteStyleModule_NilResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStyleModule(&buf, nil, WriteOptions{Format: FormatJSON}))
	assert.Equal(t, "{}\n", buf.String())
}

func TestWriteStyleModule_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	result := Result{"a": {"fontFamily": StringValue("Tom & Jerry <Sans>")}}
	require.NoError(t, WriteStyleModule(&buf, result, WriteOptions{Format: FormatJSON}))
	assert.Contains(t, buf.String(), "Tom & Jerry <Sans>")
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected OutputFormat
		wantErr  bool
	}{
		{"", FormatJS, false},
		{"js", FormatJS, false},
		{"JavaScript", FormatJS, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		format   OutputFormat
		expected string
	}{
		{"styles/card.css", FormatJS, filepath.Join("out", "card.js")},
		{"styles/theme.scss", FormatJS, filepath.Join("out", "theme.js")},
		{"styles/theme.sass", FormatJSON, filepath.Join("out", "theme.json")},
		{"button.module.css", FormatYAML, filepath.Join("out", "button.module.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputPath(tt.input, "out", tt.format))
		})
	}
}

func TestWriteStyleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "card.js")
	require.NoError(t, WriteStyleFile(path, sampleResult(), WriteOptions{Format: FormatJS}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "StyleSheet.create(")
}

func TestValue(t *testing.T) {
	n := NumberValue(12.5)
	assert.True(t, n.IsNumber())
	assert.Equal(t, "12.5", n.String())
	got, ok := n.Number()
	assert.True(t, ok)
	assert.InDelta(t, 12.5, got, 0.0001)

	s := StringValue("auto")
	assert.False(t, s.IsNumber())
	assert.Equal(t, `"auto"`, s.String())
	text, ok := s.Text()
	assert.True(t, ok)
	assert.Equal(t, "auto", text)

	var v Value
	require.Error(t, json.Unmarshal([]byte(`true`), &v))
}
