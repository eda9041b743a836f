package rncss

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	// nonPixelPattern matches units and keywords that keep a value textual
	nonPixelPattern = regexp.MustCompile(`em|rem|%|vh|vw|vmin|vmax|auto`)

	// floatPrefixPattern matches the leading number of a value, like parseFloat
	floatPrefixPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

	// intPrefixPattern matches the leading integer of a value, like parseInt
	intPrefixPattern = regexp.MustCompile(`^[+-]?\d+`)

	// pxOrSpacePattern matches the px unit and any whitespace
	pxOrSpacePattern = regexp.MustCompile(`px|\s+`)
)

// IsPixelLike reports whether v carries no unit or keyword other than px,
// meaning it can be treated as a bare number.
func IsPixelLike(v string) bool {
	return !nonPixelPattern.MatchString(v)
}

// NumerizeValue converts the value of a dimensional property. Pixel values
// lose their unit and whitespace and become numbers; everything else stays
// the original string.
func NumerizeValue(v string) Value {
	if !IsPixelLike(v) {
		return StringValue(v)
	}
	stripped := pxOrSpacePattern.ReplaceAllString(v, "")
	if n, ok := parseFloatPrefix(stripped); ok {
		return NumberValue(n)
	}
	return StringValue(v)
}

// CoerceValue converts a pass-through value: a value that is entirely a
// finite number becomes a number, anything else is kept verbatim.
// font-weight is never coerced so "400" and "bold" keep the same type.
func CoerceValue(property, v string) Value {
	if strings.EqualFold(property, "font-weight") {
		return StringValue(v)
	}
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return StringValue(v)
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return StringValue(v)
	}
	return NumberValue(n)
}

// parseFloatPrefix parses the longest numeric prefix of s.
func parseFloatPrefix(s string) (float64, bool) {
	m := floatPrefixPattern.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIntPrefix parses the leading integer of s, truncating any fraction.
func parseIntPrefix(s string) (int64, bool) {
	m := intPrefixPattern.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CamelCase converts a CSS property name to the style-object key format:
// "font-size" -> "fontSize", "-webkit-box-shadow" -> "webkitBoxShadow".
func CamelCase(property string) string {
	parts := strings.FieldsFunc(property, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	if len(parts) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(property))
	for i, part := range parts {
		part = strings.ToLower(part)
		if i == 0 {
			b.WriteString(part)
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
