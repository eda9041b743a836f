package rncss

import "fmt"

// ShorthandError reports a margin/padding value that does not have 1 to 4 components.
type ShorthandError struct {
	Selector string // Normalized selector name
	Property string // "margin" or "padding"
	Value    string // Raw declaration value
	Count    int    // Number of components found
}

func (e *ShorthandError) Error() string {
	return fmt.Sprintf("selector %q: %s: expected 1 to 4 values, got %d in %q",
		e.Selector, e.Property, e.Count, e.Value)
}

// ParseError wraps a failure to read a stylesheet as CSS (or to compile it from Sass).
type ParseError struct {
	File string // Empty when parsing a string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parse stylesheet: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
