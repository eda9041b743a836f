// Package rncss converts CSS and Sass stylesheets into style objects for
// React Native style sheets.
//
// The target styling API has no box-model shorthands, takes numbers instead
// of pixel strings and camelCase keys instead of CSS property names. rncss
// maps each stylesheet to one object per selector:
//
//	.card { margin: 10px 5px; font-size: 14px; display: flex }
//
// becomes
//
//	{"card": {"marginTop": 10, "marginRight": 5, "marginBottom": 10,
//	          "marginLeft": 5, "fontSize": 14}}
//
// # Transforming a string
//
//	result, err := rncss.Transform(src, rncss.Options{AuthorizeDisplay: true})
//
// # Converting files
//
//	result, err := rncss.Generate(ctx, rncss.Config{
//		Sources:   []string{"styles"},
//		OutputDir: "src/styles",
//		Format:    rncss.FormatJS,
//	}, logger)
//
// # CLI Tool
//
//	go install github.com/yacobolo/rncss/cmd/rncss@latest
package rncss

import (
	"github.com/yacobolo/rncss/internal/rncss"
	"go.uber.org/zap"
)

// Core types, re-exported from the internal package.
type (
	Options        = rncss.Options
	Config         = rncss.Config
	Result         = rncss.Result
	StyleObject    = rncss.StyleObject
	Value          = rncss.Value
	OutputFormat   = rncss.OutputFormat
	FileResult     = rncss.FileResult
	GenerateResult = rncss.GenerateResult
	ShorthandError = rncss.ShorthandError
	ParseError     = rncss.ParseError
	SassCompiler   = rncss.SassCompiler
)

// Output formats for generated modules.
const (
	FormatJS   = rncss.FormatJS
	FormatJSON = rncss.FormatJSON
	FormatYAML = rncss.FormatYAML
)

// Transform converts CSS source text into style objects keyed by selector.
// It performs no I/O and is safe to call concurrently.
func Transform(src string, opts Options) (Result, error) {
	return rncss.Transform(src, opts)
}

// ParseOutputFormat validates an output format name. Empty selects js.
func ParseOutputFormat(name string) (OutputFormat, error) {
	return rncss.ParseOutputFormat(name)
}

// NewLogger returns the console logger used by the CLI: debug output when
// verbose, errors only when quiet.
func NewLogger(verbose, quiet, useColors bool) *zap.Logger {
	return rncss.NewLogger(verbose, quiet, useColors)
}
