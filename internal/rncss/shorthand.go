package rncss

import (
	"regexp"
	"strings"
)

// componentSeparator splits shorthand values on whitespace and commas
var componentSeparator = regexp.MustCompile(`[\s,]+`)

// boxComponentIndex maps a component count to the component used for
// top, right, bottom and left.
var boxComponentIndex = map[int][4]int{
	1: {0, 0, 0, 0},
	2: {0, 1, 0, 1},
	3: {0, 1, 2, 1},
	4: {0, 1, 2, 3},
}

// splitBoxComponents removes px and splits a shorthand value into its components.
// Pixel-like components become integers (truncated), others stay strings.
func splitBoxComponents(value string) []Value {
	cleaned := strings.ReplaceAll(value, "px", "")
	var values []Value
	for _, part := range componentSeparator.Split(cleaned, -1) {
		if part == "" {
			continue
		}
		if IsPixelLike(part) {
			if n, ok := parseIntPrefix(part); ok {
				values = append(values, NumberValue(float64(n)))
				continue
			}
		}
		values = append(values, StringValue(part))
	}
	return values
}

// ExpandBox expands a margin or padding declaration into its four
// directional keys. Values with other than 1 to 4 components are rejected.
func ExpandBox(selector, property, value string) (StyleObject, error) {
	components := splitBoxComponents(value)

	index, ok := boxComponentIndex[len(components)]
	if !ok {
		return nil, &ShorthandError{
			Selector: selector,
			Property: property,
			Value:    value,
			Count:    len(components),
		}
	}

	keys := BoxKeys(CamelCase(property))
	expanded := make(StyleObject, len(keys))
	for i, key := range keys {
		expanded[key] = components[index[i]]
	}
	return expanded, nil
}
